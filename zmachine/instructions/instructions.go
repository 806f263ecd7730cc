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

// Package instructions defines the Z-machine's instruction set. Definitions
// are keyed by operand class and opcode number. Several opcodes change their
// meaning, or gain or lose a store or branch byte, between versions. A
// definition table is therefore built once for the version of the loaded
// story.
package instructions

import (
	"fmt"
	"strings"
)

// Class is the operand count class of an instruction.
type Class int

// List of valid Class values.
const (
	OP0 Class = iota
	OP1
	OP2
	VAR
	EXT
	numClasses
)

func (c Class) String() string {
	switch c {
	case OP0:
		return "0OP"
	case OP1:
		return "1OP"
	case OP2:
		return "2OP"
	case VAR:
		return "VAR"
	case EXT:
		return "EXT"
	}
	return "unknown class"
}

// Effect categorises instructions by the way they affect the engine. The cpu
// treats some effects specially.
type Effect int

// List of valid Effect values.
const (
	Compute Effect = iota
	Flow
	Subroutine
	Return
	Output
	Input
	SaveRestore
)

// Definition of a single instruction.
type Definition struct {
	Class    Class
	Number   uint8
	Mnemonic string
	Operator Operator
	Effect   Effect

	// the instruction is followed by a store byte, branch bytes or inline
	// text, in that order
	Store  bool
	Branch bool
	Text   bool

	// the instruction has two operand type bytes. only call_vs2 and call_vn2
	DoubleTypes bool
}

func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s:%d %s", defn.Class, defn.Number, defn.Mnemonic))
	if defn.Store {
		s.WriteString(" [store]")
	}
	if defn.Branch {
		s.WriteString(" [branch]")
	}
	if defn.Text {
		s.WriteString(" [text]")
	}
	return s.String()
}

// Table of instruction definitions for a single version.
type Table struct {
	version uint8
	defns   [numClasses][]*Definition
}

// NewTable creates the definition table for the story version.
func NewTable(version uint8) *Table {
	t := &Table{version: version}
	for c := range t.defns {
		t.defns[c] = make([]*Definition, 32)
	}

	for _, e := range definitions {
		if version < e.min || version > e.max {
			continue
		}
		d := e.defn
		t.defns[d.Class][d.Number] = &d
	}

	return t
}

// Version returns the story version the table was created for.
func (t *Table) Version() uint8 {
	return t.version
}

// Lookup the definition for the class and opcode number. Returns false if
// there is no such instruction in this version.
func (t *Table) Lookup(class Class, number uint8) (*Definition, bool) {
	if class < 0 || class >= numClasses || int(number) >= len(t.defns[class]) {
		return nil, false
	}
	d := t.defns[class][number]
	return d, d != nil
}

// Count returns the number of instructions defined for the version.
func (t *Table) Count() int {
	n := 0
	for _, c := range t.defns {
		for _, d := range c {
			if d != nil {
				n++
			}
		}
	}
	return n
}
