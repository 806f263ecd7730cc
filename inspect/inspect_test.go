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

package inspect_test

import (
	"strings"
	"testing"

	"github.com/avwohl/zwalker-sub001/inspect"
	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
	"github.com/avwohl/zwalker-sub001/zmachine/storytest"
)

// properties that make an object look like a room
var exits = []storytest.Property{
	{Number: 20, Data: []byte{0, 3}},
	{Number: 19, Data: []byte{0, 2}},
	{Number: 18, Data: []byte{0, 1}},
}

// worldStory has two rooms in a rooms container. the player is in the
// kitchen carrying a lamp
func worldStory() *storytest.Story {
	s := storytest.New(3)
	s.Object(1, "Rooms", 0, 0, 2)
	s.Object(2, "Kitchen", 1, 3, 4, exits...)
	s.Object(3, "Garden", 1, 0, 0, exits...)
	s.Object(4, "yourself", 2, 6, 5)
	s.Object(5, "brass lamp", 4, 0, 0)
	s.Object(6, "knife", 2, 0, 0)
	s.Attribute(5, inspect.AttrTakeable)
	s.Attribute(6, inspect.AttrTakeable)
	s.SetGlobal(storytest.G00, 2)

	s.OpVar(4, storytest.Large(storytest.TextBuffer), storytest.Large(storytest.ParseBuffer))
	return s
}

func load(t *testing.T, s *storytest.Story) *inspect.Inspector {
	t.Helper()
	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	eng, err := zmachine.Load(s.Image(), prefs)
	test.DemandSuccess(t, err)
	_, err = eng.Run()
	test.DemandSuccess(t, err)
	return inspect.NewInspector(eng)
}

func TestNames(t *testing.T) {
	in := load(t, worldStory())
	test.ExpectEquality(t, in.Name(2), "Kitchen")
	test.ExpectEquality(t, in.Name(5), "brass lamp")
	test.ExpectEquality(t, in.Name(0), "")
	test.ExpectEquality(t, in.Name(7), "")
	test.ExpectEquality(t, in.Name(1000), "")
	test.ExpectEquality(t, in.Object(6).String(), "6 knife")
}

func TestRooms(t *testing.T) {
	in := load(t, worldStory())
	test.ExpectEquality(t, in.RoomsContainer(), 1)
	test.ExpectSuccess(t, in.IsRoom(3))
	test.ExpectFailure(t, in.IsRoom(5))
	test.ExpectEquality(t, len(in.Rooms()), 2)
	test.ExpectEquality(t, in.Rooms()[1].Name, "Garden")
	test.ExpectEquality(t, in.Player(), 4)
	test.ExpectEquality(t, in.CurrentRoom(), 2)
}

func TestObjects(t *testing.T) {
	in := load(t, worldStory())

	objs := in.ObjectsIn(2)
	test.DemandEquality(t, len(objs), 2)
	test.ExpectEquality(t, objs[0].Name, "yourself")
	test.ExpectEquality(t, objs[1].Name, "knife")

	take := in.TakeableIn(2)
	test.DemandEquality(t, len(take), 1)
	test.ExpectEquality(t, take[0].Number, 6)

	inv := in.Inventory()
	test.DemandEquality(t, len(inv), 1)
	test.ExpectEquality(t, inv[0].Name, "brass lamp")

	test.ExpectEquality(t, len(in.ObjectsIn(1)), 0)
	test.ExpectEquality(t, len(in.ObjectsIn(0)), 0)
}

func TestCurrentRoomFromPlayer(t *testing.T) {
	s := worldStory()
	s.SetGlobal(storytest.G00, 0)
	in := load(t, s)
	test.ExpectEquality(t, in.CurrentRoom(), 2)
}

func TestNoRooms(t *testing.T) {
	s := storytest.New(3)
	s.OpVar(4, storytest.Large(storytest.TextBuffer), storytest.Large(storytest.ParseBuffer))
	in := load(t, s)
	test.ExpectEquality(t, in.RoomsContainer(), 0)
	test.ExpectEquality(t, in.Player(), 0)
	test.ExpectEquality(t, in.CurrentRoom(), 0)
	test.ExpectEquality(t, len(in.Inventory()), 0)
	test.ExpectEquality(t, len(in.Tree()), 0)
}

func TestTree(t *testing.T) {
	in := load(t, worldStory())

	w := &strings.Builder{}
	test.ExpectSuccess(t, in.WriteTree(w))
	test.ExpectEquality(t, w.String(), `[1] Rooms
  [2] Kitchen
    [4] yourself
      [5] brass lamp
    [6] knife
  [3] Garden
`)

	g := &strings.Builder{}
	in.Graph(g)
	test.ExpectSuccess(t, strings.Contains(g.String(), "digraph"))

	g.Reset()
	test.ExpectSuccess(t, in.GraphState(g))
	test.ExpectSuccess(t, strings.Contains(g.String(), "digraph"))
}

func TestCategoriseFromData(t *testing.T) {
	s := worldStory()
	s.DictionaryWithData(
		[]string{"take", "lamp", "north", "with", "brass", "xyzzy"},
		map[string][3]byte{
			"take":  {0x41},
			"lamp":  {0x80},
			"north": {0x13},
			"with":  {0x08},
			"brass": {0x22},
		}, ",")
	in := load(t, s)

	c := in.Categorise()
	test.ExpectSuccess(t, c.FromData)
	test.ExpectSliceEquality(t, c.Verbs, []string{"take"})
	test.ExpectSliceEquality(t, c.Nouns, []string{"lamp"})
	test.ExpectSliceEquality(t, c.Directions, []string{"north"})
	test.ExpectSliceEquality(t, c.Prepositions, []string{"with"})
	test.ExpectSliceEquality(t, c.Adjectives, []string{"brass"})
	test.ExpectSliceEquality(t, c.Other, []string{"xyzzy"})
}

func TestCategoriseWords(t *testing.T) {
	c := inspect.CategoriseWords([]string{"north", "examin", "take", "with", "the", "lamp", "up"})
	test.ExpectSliceEquality(t, c.Directions, []string{"north", "up"})
	test.ExpectSliceEquality(t, c.Verbs, []string{"examin", "take"})
	test.ExpectSliceEquality(t, c.Prepositions, []string{"with"})
	test.ExpectSliceEquality(t, c.Other, []string{"the"})
	test.ExpectSliceEquality(t, c.Nouns, []string{"lamp"})
	test.ExpectFailure(t, c.FromData)
}

func TestWords(t *testing.T) {
	s := worldStory()
	s.Dictionary([]string{"north", "lamp", "take"}, ",")
	in := load(t, s)

	// words are stored in encoded order
	test.ExpectSliceEquality(t, in.Words(), []string{"lamp", "north", "take"})

	c := in.Categorise()
	test.ExpectFailure(t, c.FromData)
	test.ExpectSliceEquality(t, c.Verbs, []string{"take"})
}
