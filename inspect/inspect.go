// This file is part of Zwalker.
//
// Zwalker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zwalker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zwalker.  If not, see <https://www.gnu.org/licenses/>.

package inspect

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/objects"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// objects are only searched up to this number. large Inform games have more
// objects than this but rooms and the player are always in the first few
// hundred
const maxSearch = 255

// the player object is one of the first objects defined
const maxPlayerSearch = 30

// attribute used by Infocom stories to mark objects that can be taken
const AttrTakeable = 17

// Object is a numbered object and its short name.
type Object struct {
	Number uint16
	Name   string
}

func (o Object) String() string {
	return fmt.Sprintf("%d %s", o.Number, o.Name)
}

// Inspector views the state of an engine.
type Inspector struct {
	eng     *zmachine.Engine
	objects *objects.Store
	codec   *zstring.Codec
}

// NewInspector is the preferred method of initialisation for the Inspector
// type.
func NewInspector(eng *zmachine.Engine) *Inspector {
	return &Inspector{
		eng:     eng,
		objects: eng.CPU.Objects(),
		codec:   eng.CPU.Codec(),
	}
}

// Name returns the short name of the object. Returns the empty string for an
// invalid object.
func (in *Inspector) Name(obj uint16) string {
	addr, words := in.objects.ShortName(obj)
	if addr == 0 || words == 0 {
		return ""
	}
	s, _ := in.codec.Decode(addr)
	return s
}

// Object returns the object with its name.
func (in *Inspector) Object(obj uint16) Object {
	return Object{Number: obj, Name: in.Name(obj)}
}

func (in *Inspector) searchLimit(limit int) uint16 {
	return uint16(min(in.objects.Count(), limit))
}

// collect the named objects for which the filter returns true
func (in *Inspector) collect(filter func(obj uint16) bool) []Object {
	var objs []Object
	for obj := range in.searchLimit(maxSearch) {
		obj++
		if !filter(obj) {
			continue
		}
		if o := in.Object(obj); o.Name != "" {
			objs = append(objs, o)
		}
	}
	return objs
}

// RoomsContainer returns the object that is the parent of all the rooms.
// This is the object with the most children that have three or more
// properties. Returns zero if no container can be found.
func (in *Inspector) RoomsContainer() uint16 {
	counts := make(map[uint16]int)
	for obj := range in.searchLimit(maxSearch) {
		obj++
		parent := in.objects.Parent(obj)
		if parent != 0 && len(in.objects.Properties(obj)) >= 3 {
			counts[parent]++
		}
	}

	var container uint16
	var most int
	for parent, n := range counts {
		if n > most || (n == most && parent < container) {
			container = parent
			most = n
		}
	}
	return container
}

// IsRoom returns true if the object is a room.
func (in *Inspector) IsRoom(obj uint16) bool {
	c := in.RoomsContainer()
	return c != 0 && obj != 0 && in.objects.Parent(obj) == c
}

// Rooms returns every room in the story.
func (in *Inspector) Rooms() []Object {
	c := in.RoomsContainer()
	if c == 0 {
		return nil
	}
	return in.collect(func(obj uint16) bool {
		return in.objects.Parent(obj) == c
	})
}

// the names given to the player object by common libraries
var playerNames = []string{"player", "adventurer", "you", "cretin", "protagonist"}

// Player returns the object that represents the player. This is the first
// of the low numbered objects that is in a room, preferring one with a name
// that is commonly given to the player. Returns zero if no player can be
// found.
func (in *Inspector) Player() uint16 {
	c := in.RoomsContainer()
	if c == 0 {
		return 0
	}

	var first uint16
	for obj := range in.searchLimit(maxPlayerSearch) {
		obj++
		parent := in.objects.Parent(obj)
		if parent == 0 || in.objects.Parent(parent) != c {
			continue
		}
		if first == 0 {
			first = obj
		}
		if containsAny(in.Name(obj), playerNames) {
			return obj
		}
	}
	return first
}

// CurrentRoom returns the room the player is in. Infocom stories keep the
// room in global variable zero. Inform stories keep the player in the room.
// Returns zero if the room can not be found.
func (in *Inspector) CurrentRoom() uint16 {
	room := in.eng.Mem.ReadWord(uint32(in.eng.Header.Globals))
	if in.Name(room) != "" {
		return room
	}

	if p := in.Player(); p != 0 {
		room = in.objects.Parent(p)
		if in.Name(room) != "" {
			return room
		}
	}

	return 0
}

// ObjectsIn returns the named objects in a room, excluding other rooms.
func (in *Inspector) ObjectsIn(room uint16) []Object {
	if room == 0 || room == in.RoomsContainer() {
		return nil
	}
	return in.collect(func(obj uint16) bool {
		return in.objects.Parent(obj) == room
	})
}

// Takeable returns true if the object has the takeable attribute.
func (in *Inspector) Takeable(obj uint16) bool {
	ok, err := in.objects.TestAttr(obj, AttrTakeable)
	return err == nil && ok
}

// TakeableIn returns the objects in a room that can be taken.
func (in *Inspector) TakeableIn(room uint16) []Object {
	var objs []Object
	for _, o := range in.ObjectsIn(room) {
		if in.Takeable(o.Number) {
			objs = append(objs, o)
		}
	}
	return objs
}

// Inventory returns the objects carried by the player.
func (in *Inspector) Inventory() []Object {
	p := in.Player()
	if p == 0 {
		return nil
	}
	return in.collect(func(obj uint16) bool {
		return in.objects.Parent(obj) == p
	})
}
