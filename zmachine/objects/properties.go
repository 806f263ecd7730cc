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

package objects

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/logger"
)

// Property is a single entry in an object's property table.
type Property struct {
	Number uint8

	// address of the property data and the data length in bytes
	Addr uint32
	Len  int
}

func (p Property) String() string {
	return fmt.Sprintf("[%d] %d bytes at %#04x", p.Number, p.Len, p.Addr)
}

func (s *Store) propertyTable(obj uint16) uint32 {
	_, _, _, props := s.offsets()
	return uint32(s.mem.ReadWord(s.entry(obj) + props))
}

// ShortName returns the address of the object's encoded short name and its
// length in words. The address is zero for an invalid object or for an object
// without a property table.
func (s *Store) ShortName(obj uint16) (uint32, int) {
	if !s.Valid(obj) {
		return 0, 0
	}
	t := s.propertyTable(obj)
	if t == 0 {
		return 0, 0
	}
	return t + 1, int(s.mem.Read(t))
}

// property reads the size byte(s) at addr. a number of zero marks the end of
// the property list
func (s *Store) property(addr uint32) (Property, uint32) {
	b := s.mem.Read(addr)
	if b == 0 {
		return Property{}, addr
	}

	if s.version <= 3 {
		return Property{
			Number: b & 0x1f,
			Addr:   addr + 1,
			Len:    int(b>>5) + 1,
		}, addr + 1 + uint32(b>>5) + 1
	}

	p := Property{Number: b & 0x3f}
	if b&0x80 == 0x80 {
		l := int(s.mem.Read(addr+1) & 0x3f)
		if l == 0 {
			l = 64
		}
		p.Addr = addr + 2
		p.Len = l
	} else {
		p.Addr = addr + 1
		if b&0x40 == 0x40 {
			p.Len = 2
		} else {
			p.Len = 1
		}
	}
	return p, p.Addr + uint32(p.Len)
}

// Properties returns the object's properties in the order they are stored.
func (s *Store) Properties(obj uint16) []Property {
	var props []Property
	if !s.Valid(obj) {
		return props
	}

	t := s.propertyTable(obj)
	if t == 0 {
		return props
	}
	addr := t + 1 + 2*uint32(s.mem.Read(t))
	end := uint32(s.mem.Len())

	// a property list can not be longer than the number of property numbers
	for len(props) <= s.defaults && addr < end {
		p, next := s.property(addr)
		if p.Number == 0 {
			break
		}
		props = append(props, p)
		addr = next
	}
	return props
}

func (s *Store) find(obj uint16, prop uint8) (Property, bool) {
	for _, p := range s.Properties(obj) {
		if p.Number == prop {
			return p, true
		}
	}
	return Property{}, false
}

// Default returns the default value of the property.
func (s *Store) Default(prop uint8) uint16 {
	if prop == 0 || int(prop) > s.defaults {
		logger.Logf(s.mem.Log, s.mem.Log.Tag("objects"), "no default for property %d", prop)
		return 0
	}
	return s.mem.ReadWord(s.table + 2*uint32(prop-1))
}

// GetProp returns the value of the property. If the object does not have the
// property then the default value is returned.
func (s *Store) GetProp(obj uint16, prop uint8) uint16 {
	if !s.check(obj, "get_prop") {
		return 0
	}

	p, ok := s.find(obj, prop)
	if !ok {
		return s.Default(prop)
	}

	switch p.Len {
	case 1:
		return uint16(s.mem.Read(p.Addr))
	case 2:
	default:
		logger.Logf(s.mem.Log, s.mem.Log.Tag("objects"), "get_prop: property %d of object %d is %d bytes", prop, obj, p.Len)
	}
	return s.mem.ReadWord(p.Addr)
}

// PutProp changes the value of the property. The object must have the
// property.
func (s *Store) PutProp(obj uint16, prop uint8, value uint16) error {
	if !s.check(obj, "put_prop") {
		return nil
	}

	p, ok := s.find(obj, prop)
	if !ok {
		return fmt.Errorf("objects: put_prop %d on object %d: %w", prop, obj, ErrProperty)
	}

	if p.Len == 1 {
		return s.mem.Write(p.Addr, uint8(value))
	}
	return s.mem.WriteWord(p.Addr, value)
}

// GetPropAddr returns the address of the property data. Returns zero if the
// object does not have the property.
func (s *Store) GetPropAddr(obj uint16, prop uint8) uint32 {
	if !s.check(obj, "get_prop_addr") {
		return 0
	}
	p, ok := s.find(obj, prop)
	if !ok {
		return 0
	}
	return p.Addr
}

// GetPropLen returns the length of the property data at addr, which should be
// a value returned by GetPropAddr(). An address of zero has length zero.
func (s *Store) GetPropLen(addr uint32) int {
	if addr == 0 {
		return 0
	}

	b := s.mem.Read(addr - 1)
	if s.version <= 3 {
		return int(b>>5) + 1
	}

	// the second size byte has the top bit set
	if b&0x80 == 0x80 {
		l := int(b & 0x3f)
		if l == 0 {
			l = 64
		}
		return l
	}
	if b&0x40 == 0x40 {
		return 2
	}
	return 1
}

// GetNextProp returns the number of the property after prop in the object's
// property list. A prop value of zero returns the first property. Zero is
// returned when there are no more properties.
func (s *Store) GetNextProp(obj uint16, prop uint8) (uint8, error) {
	if !s.check(obj, "get_next_prop") {
		return 0, nil
	}

	props := s.Properties(obj)
	if prop == 0 {
		if len(props) == 0 {
			return 0, nil
		}
		return props[0].Number, nil
	}

	for i, p := range props {
		if p.Number == prop {
			if i+1 < len(props) {
				return props[i+1].Number, nil
			}
			return 0, nil
		}
	}

	return 0, fmt.Errorf("objects: get_next_prop %d on object %d: %w", prop, obj, ErrProperty)
}
