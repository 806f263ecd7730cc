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

// Package storytest builds small story files in memory. It is used by tests
// throughout the module so that no binary story files are needed.
//
// The layout of a story is fixed. Code is assembled at CodeBase by the Op*()
// functions, which write the opcode and operand bytes. Store and branch bytes
// and inline text follow with Store(), Branch() and Text():
//
//	s := storytest.New(3)
//	s.Op2(20, storytest.Small(13), storytest.Large(0xfffb)).Store(storytest.G00)
//	s.Op0(10)
//	data := s.Image()
package storytest

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/avwohl/zwalker-sub001/zmachine/execution"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// Layout of a story.
const (
	ObjectTable    = 0x0100
	PropertyTables = 0x0200
	Globals        = 0x0400
	Dictionary     = 0x0600
	TextBuffer     = 0x0700
	ParseBuffer    = 0x0760
	Table          = 0x07c0
	StaticBase     = 0x0800
	CodeBase       = 0x1000
	Size           = 0x2000

	// space allocated to the property table of each object
	propertyTableSize = 0x40
)

// Serial number of every story.
const Serial = "261018"

// Variable numbers.
const (
	SP  = 0x00
	L00 = 0x01
	L01 = 0x02
	L02 = 0x03
	G00 = 0x10
	G01 = 0x11
	G02 = 0x12
	G03 = 0x13
	G04 = 0x14
)

// Operand for an assembled instruction.
type Operand struct {
	Type  execution.OperandType
	Value uint16
}

// Small constant operand.
func Small(v uint8) Operand {
	return Operand{Type: execution.Small, Value: uint16(v)}
}

// Large constant operand.
func Large(v uint16) Operand {
	return Operand{Type: execution.Large, Value: v}
}

// Variable operand.
func Variable(v uint8) Operand {
	return Operand{Type: execution.Variable, Value: uint16(v)}
}

// Story is a story file under construction.
type Story struct {
	Version uint8
	Data    []byte

	// assembly address
	PC uint32
}

// New creates an empty story with an empty dictionary and a single
// instruction-less main routine at CodeBase.
func New(version uint8) *Story {
	s := &Story{
		Version: version,
		Data:    make([]byte, Size),
		PC:      CodeBase,
	}
	s.Data[header.AddrVersion] = version
	s.SetWord(header.AddrRelease, 1)
	s.SetWord(header.AddrHighBase, CodeBase)
	s.SetWord(header.AddrInitialPC, CodeBase)
	s.SetWord(header.AddrDictionary, Dictionary)
	s.SetWord(header.AddrObjectTable, ObjectTable)
	s.SetWord(header.AddrGlobals, Globals)
	s.SetWord(header.AddrStaticBase, StaticBase)
	copy(s.Data[header.AddrSerial:], Serial)

	s.Dictionary(nil, ",")

	s.Data[TextBuffer] = 40
	s.Data[ParseBuffer] = 8

	return s
}

// SetWord writes a big-endian word.
func (s *Story) SetWord(addr uint32, v uint16) {
	binary.BigEndian.PutUint16(s.Data[addr:], v)
}

// SetGlobal sets the initial value of a global variable.
func (s *Story) SetGlobal(g uint8, v uint16) {
	s.SetWord(Globals+2*uint32(g-G00), v)
}

// Codec for the story. There are no abbreviations and no custom tables.
func (s *Story) Codec() *zstring.Codec {
	return zstring.NewCodec(s.Version, zstring.Bytes(s.Data), 0, 0, 0)
}

// Dictionary replaces the dictionary. Every entry has three bytes of data,
// which are zero.
func (s *Story) Dictionary(words []string, separators string) {
	s.DictionaryWithData(words, nil, separators)
}

// DictionaryWithData replaces the dictionary. The data for each word is
// taken from the map, keyed by word.
func (s *Story) DictionaryWithData(words []string, data map[string][3]byte, separators string) {
	c := s.Codec()

	wordLen := 4
	if s.Version > 3 {
		wordLen = 6
	}

	type entry struct {
		encoded []byte
		data    [3]byte
	}
	entries := make([]entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, entry{encoded: c.Encode(w), data: data[w]})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].encoded, entries[j].encoded) < 0
	})

	a := uint32(Dictionary)
	s.Data[a] = uint8(len(separators))
	a++
	for _, r := range separators {
		s.Data[a] = uint8(r)
		a++
	}
	s.Data[a] = uint8(wordLen + 3)
	s.SetWord(a+1, uint16(len(entries)))
	a += 3
	for _, e := range entries {
		copy(s.Data[a:], e.encoded)
		copy(s.Data[a+uint32(wordLen):], e.data[:])
		a += uint32(wordLen + 3)
	}
}

func (s *Story) objectEntry(n uint16) uint32 {
	if s.Version <= 3 {
		return ObjectTable + 31*2 + uint32(n-1)*9
	}
	return ObjectTable + 63*2 + uint32(n-1)*14
}

// Property is a single property for Object().
type Property struct {
	Number uint8
	Data   []byte
}

// Object sets the links, short name and properties of an object. Properties
// must be given in descending order of number.
func (s *Story) Object(n uint16, name string, parent, sibling, child uint16, props ...Property) {
	e := s.objectEntry(n)
	var pt uint32
	if s.Version <= 3 {
		s.Data[e+4] = uint8(parent)
		s.Data[e+5] = uint8(sibling)
		s.Data[e+6] = uint8(child)
		pt = e + 7
	} else {
		s.SetWord(e+6, parent)
		s.SetWord(e+8, sibling)
		s.SetWord(e+10, child)
		pt = e + 12
	}

	a := PropertyTables + uint32(n-1)*propertyTableSize
	s.SetWord(pt, uint16(a))

	packed := []byte{}
	if name != "" {
		packed = s.Codec().Pack(name)
	}
	s.Data[a] = uint8(len(packed) / 2)
	a++
	copy(s.Data[a:], packed)
	a += uint32(len(packed))

	for _, p := range props {
		switch {
		case s.Version <= 3:
			s.Data[a] = uint8(32*(len(p.Data)-1)) + p.Number
			a++
		case len(p.Data) > 2:
			s.Data[a] = 0x80 | p.Number
			s.Data[a+1] = 0x80 | uint8(len(p.Data))
			a += 2
		case len(p.Data) == 2:
			s.Data[a] = 0x40 | p.Number
			a++
		default:
			s.Data[a] = p.Number
			a++
		}
		copy(s.Data[a:], p.Data)
		a += uint32(len(p.Data))
	}
	s.Data[a] = 0
}

// Attribute sets an attribute of an object.
func (s *Story) Attribute(n uint16, attr int) {
	e := s.objectEntry(n)
	s.Data[e+uint32(attr/8)] |= 0x80 >> (attr % 8)
}

// PropertyDefault sets the default value of a property.
func (s *Story) PropertyDefault(prop uint8, v uint16) {
	s.SetWord(ObjectTable+2*uint32(prop-1), v)
}

// Emit bytes at the assembly address.
func (s *Story) Emit(b ...uint8) *Story {
	copy(s.Data[s.PC:], b)
	s.PC += uint32(len(b))
	return s
}

func (s *Story) operands(ops []Operand) {
	for _, o := range ops {
		if o.Type == execution.Large {
			s.Emit(uint8(o.Value>>8), uint8(o.Value))
		} else {
			s.Emit(uint8(o.Value))
		}
	}
}

func typeByte(ops []Operand) uint8 {
	b := uint8(0)
	for i := range 4 {
		t := execution.Omitted
		if i < len(ops) {
			t = ops[i].Type
		}
		b = b<<2 | uint8(t)
	}
	return b
}

// Op2 assembles a 2OP instruction. The long form is used when possible.
func (s *Story) Op2(number uint8, ops ...Operand) *Story {
	if len(ops) == 2 && ops[0].Type != execution.Large && ops[1].Type != execution.Large {
		b := number
		if ops[0].Type == execution.Variable {
			b |= 0x40
		}
		if ops[1].Type == execution.Variable {
			b |= 0x20
		}
		s.Emit(b)
	} else {
		s.Emit(0xc0|number, typeByte(ops))
	}
	s.operands(ops)
	return s
}

// Op1 assembles a 1OP instruction.
func (s *Story) Op1(number uint8, o Operand) *Story {
	s.Emit(0x80 | uint8(o.Type)<<4 | number)
	s.operands([]Operand{o})
	return s
}

// Op0 assembles a 0OP instruction.
func (s *Story) Op0(number uint8) *Story {
	return s.Emit(0xb0 | number)
}

// OpVar assembles a VAR instruction with up to four operands.
func (s *Story) OpVar(number uint8, ops ...Operand) *Story {
	s.Emit(0xe0|number, typeByte(ops))
	s.operands(ops)
	return s
}

// OpExt assembles an EXT instruction.
func (s *Story) OpExt(number uint8, ops ...Operand) *Story {
	s.Emit(0xbe, number, typeByte(ops))
	s.operands(ops)
	return s
}

// Store byte.
func (s *Story) Store(v uint8) *Story {
	return s.Emit(v)
}

// Branch byte with a short offset. Offsets zero and one return false and true
// from the routine.
func (s *Story) Branch(on bool, offset uint8) *Story {
	b := 0x40 | offset&0x3f
	if on {
		b |= 0x80
	}
	return s.Emit(b)
}

// Text assembles inline text.
func (s *Story) Text(t string) *Story {
	return s.Emit(s.Codec().Pack(t)...)
}

// Routine starts a routine at the next suitably aligned address and returns
// its packed address. Initial values for the locals are only written for
// versions 1 to 4.
func (s *Story) Routine(locals ...uint16) uint16 {
	align := uint32(2)
	if s.Version >= 4 {
		align = 4
	}
	for s.PC%align != 0 {
		s.PC++
	}
	packed := uint16(s.PC / align)

	s.Emit(uint8(len(locals)))
	if s.Version <= 4 {
		for _, l := range locals {
			s.Emit(uint8(l>>8), uint8(l))
		}
	}
	return packed
}

// JumpTo assembles a jump to an absolute address.
func (s *Story) JumpTo(addr uint32) *Story {
	offset := int(addr) - int(s.PC+3) + 2
	return s.Op1(12, Large(uint16(int16(offset))))
}

// Image returns a copy of the story file with the file length and checksum
// set.
func (s *Story) Image() []byte {
	d := append([]byte(nil), s.Data...)
	div := uint32(2)
	switch {
	case s.Version >= 8:
		div = 8
	case s.Version >= 4:
		div = 4
	}
	binary.BigEndian.PutUint16(d[header.AddrFileLength:], uint16(uint32(len(d))/div))
	binary.BigEndian.PutUint16(d[header.AddrChecksum:], header.Checksum(d, uint32(len(d))))
	return d
}
