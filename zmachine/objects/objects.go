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

// Package objects is the Z-machine object tree and property tables. The
// Store is a view over story memory and keeps no state of its own beyond the
// addresses of the tables.
//
// Objects are referred to by number only. Object zero means "no object" and
// reading from it is logged and returns zero. The forest invariant (every
// object has at most one parent and the child/sibling chains have no cycles)
// is maintained by Insert() and Remove(), the only functions that change the
// tree.
package objects

import (
	"errors"
	"fmt"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/memory"
)

// Sentinel errors. Both indicate a defect in the story or in the interpreter
// and are not recoverable.
var (
	ErrAttribute = errors.New("attribute out of range")
	ErrProperty  = errors.New("property not present")
)

// Store gives access to the object table of a story.
type Store struct {
	mem     *memory.Memory
	version uint8

	// address of the property defaults table. the object entries follow
	// immediately afterwards
	table   uint32
	entries uint32

	entrySize  uint32
	defaults   int
	attributes int

	// number of objects. determined heuristically because the story does not
	// record it
	count int
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore(mem *memory.Memory, version uint8, table uint32) *Store {
	s := &Store{
		mem:     mem,
		version: version,
		table:   table,
	}

	if version <= 3 {
		s.entrySize = 9
		s.defaults = 31
		s.attributes = 32
	} else {
		s.entrySize = 14
		s.defaults = 63
		s.attributes = 48
	}
	s.entries = table + uint32(s.defaults)*2

	s.count = s.countObjects()

	return s
}

func (s *Store) String() string {
	return fmt.Sprintf("%d objects at %#04x", s.count, s.entries)
}

// the property tables of the objects normally follow the object entries so
// the lowest property table address marks the end of the objects
func (s *Store) countObjects() int {
	max := 255
	if s.version > 3 {
		max = 65535
	}

	end := uint32(s.mem.Len())
	n := 0
	for n < max {
		addr := s.entries + uint32(n)*s.entrySize
		if addr+s.entrySize > end {
			break
		}
		n++
		p := s.propertyTable(uint16(n))
		if p != 0 && p < end {
			end = p
		}
	}
	return n
}

// Count returns the number of objects in the story. This is a best guess
// based on the layout of the object table.
func (s *Store) Count() int {
	return s.count
}

// Valid returns true if the object number refers to an object.
func (s *Store) Valid(obj uint16) bool {
	return obj != 0 && int(obj) <= s.count
}

func (s *Store) check(obj uint16, op string) bool {
	if s.Valid(obj) {
		return true
	}
	logger.Logf(s.mem.Log, s.mem.Log.Tag("objects"), "%s: invalid object %d", op, obj)
	return false
}

func (s *Store) entry(obj uint16) uint32 {
	return s.entries + uint32(obj-1)*s.entrySize
}

// offsets of the link fields and property table address in an entry
func (s *Store) offsets() (parent, sibling, child, props uint32) {
	if s.version <= 3 {
		return 4, 5, 6, 7
	}
	return 6, 8, 10, 12
}

func (s *Store) link(obj uint16, offset uint32) uint16 {
	if s.version <= 3 {
		return uint16(s.mem.Read(s.entry(obj) + offset))
	}
	return s.mem.ReadWord(s.entry(obj) + offset)
}

func (s *Store) setLink(obj uint16, offset uint32, v uint16) error {
	if s.version <= 3 {
		return s.mem.Write(s.entry(obj)+offset, uint8(v))
	}
	return s.mem.WriteWord(s.entry(obj)+offset, v)
}

// Parent of the object. Returns zero for an invalid object.
func (s *Store) Parent(obj uint16) uint16 {
	if !s.check(obj, "parent") {
		return 0
	}
	p, _, _, _ := s.offsets()
	return s.link(obj, p)
}

// Sibling of the object. Returns zero for an invalid object.
func (s *Store) Sibling(obj uint16) uint16 {
	if !s.check(obj, "sibling") {
		return 0
	}
	_, b, _, _ := s.offsets()
	return s.link(obj, b)
}

// Child of the object. Returns zero for an invalid object.
func (s *Store) Child(obj uint16) uint16 {
	if !s.check(obj, "child") {
		return 0
	}
	_, _, c, _ := s.offsets()
	return s.link(obj, c)
}

// Children returns the children of the object in order.
func (s *Store) Children(obj uint16) []uint16 {
	var c []uint16
	seen := make(map[uint16]bool)
	for o := s.Child(obj); o != 0 && !seen[o]; o = s.Sibling(o) {
		seen[o] = true
		c = append(c, o)
	}
	return c
}

// Remove detaches the object from its parent. The object keeps its children.
func (s *Store) Remove(obj uint16) error {
	if !s.check(obj, "remove") {
		return nil
	}

	pOff, bOff, cOff, _ := s.offsets()

	parent := s.link(obj, pOff)
	if parent == 0 {
		return nil
	}

	sibling := s.link(obj, bOff)

	if s.Valid(parent) {
		first := s.link(parent, cOff)
		if first == obj {
			if err := s.setLink(parent, cOff, sibling); err != nil {
				return err
			}
		} else {
			// find the preceding sibling. the chain length is bounded in case
			// the tree has been corrupted by the story
			prev := first
			for n := 0; prev != 0 && n < s.count; n++ {
				if !s.Valid(prev) {
					break
				}
				next := s.link(prev, bOff)
				if next == obj {
					if err := s.setLink(prev, bOff, sibling); err != nil {
						return err
					}
					break
				}
				prev = next
			}
		}
	}

	if err := s.setLink(obj, pOff, 0); err != nil {
		return err
	}
	return s.setLink(obj, bOff, 0)
}

// Insert makes the object the first child of dest, removing it from its
// current parent first. An insertion that would make an object its own
// ancestor is logged and ignored.
func (s *Store) Insert(obj uint16, dest uint16) error {
	if !s.check(obj, "insert") || !s.check(dest, "insert") {
		return nil
	}

	pOff, bOff, cOff, _ := s.offsets()

	for a, n := dest, 0; a != 0 && n <= s.count; n++ {
		if a == obj {
			logger.Logf(s.mem.Log, s.mem.Log.Tag("objects"), "insert %d into %d would create a cycle", obj, dest)
			return nil
		}
		if !s.Valid(a) {
			break
		}
		a = s.link(a, pOff)
	}

	if err := s.Remove(obj); err != nil {
		return err
	}

	if err := s.setLink(obj, bOff, s.link(dest, cOff)); err != nil {
		return err
	}
	if err := s.setLink(obj, pOff, dest); err != nil {
		return err
	}
	return s.setLink(dest, cOff, obj)
}

func (s *Store) attribute(obj uint16, attr uint16) (uint32, uint8, error) {
	if int(attr) >= s.attributes {
		return 0, 0, fmt.Errorf("objects: attribute %d of object %d: %w", attr, obj, ErrAttribute)
	}
	return s.entry(obj) + uint32(attr/8), 0x80 >> (attr % 8), nil
}

// TestAttr returns the state of the attribute. An invalid object has no
// attributes set.
func (s *Store) TestAttr(obj uint16, attr uint16) (bool, error) {
	addr, mask, err := s.attribute(obj, attr)
	if err != nil {
		return false, err
	}
	if !s.check(obj, "test_attr") {
		return false, nil
	}
	return s.mem.Read(addr)&mask == mask, nil
}

// SetAttr sets the attribute.
func (s *Store) SetAttr(obj uint16, attr uint16) error {
	addr, mask, err := s.attribute(obj, attr)
	if err != nil {
		return err
	}
	if !s.check(obj, "set_attr") {
		return nil
	}
	return s.mem.Write(addr, s.mem.Read(addr)|mask)
}

// ClearAttr clears the attribute.
func (s *Store) ClearAttr(obj uint16, attr uint16) error {
	addr, mask, err := s.attribute(obj, attr)
	if err != nil {
		return err
	}
	if !s.check(obj, "clear_attr") {
		return nil
	}
	return s.mem.Write(addr, s.mem.Read(addr)&^mask)
}

// Attributes returns the numbers of all attributes that are set.
func (s *Store) Attributes(obj uint16) []uint16 {
	var a []uint16
	if !s.Valid(obj) {
		return a
	}
	for i := range s.attributes {
		if set, _ := s.TestAttr(obj, uint16(i)); set {
			a = append(a, uint16(i))
		}
	}
	return a
}
