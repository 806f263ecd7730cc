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

package execution

import (
	"fmt"
	"strings"

	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
)

// OperandType is the encoding of a single operand.
type OperandType uint8

// List of valid OperandType values. The values are the same as the two-bit
// fields in the instruction encoding.
const (
	Large    OperandType = 0x00
	Small    OperandType = 0x01
	Variable OperandType = 0x02
	Omitted  OperandType = 0x03
)

// Result of decoding and executing an instruction.
type Result struct {
	// address of the first byte of the instruction
	Address uint32

	// first byte of the instruction. for extended instructions this is the
	// second byte
	Opcode uint8

	Defn *instructions.Definition

	// the operand types and the values as they appear in the instruction. for
	// Variable operands the raw value is the variable number
	Types []OperandType
	Raw   []uint16

	// the operand values after variables have been read
	Operands []uint16

	// the number of values popped from the stack while reading operands
	Pops int

	// variable number for the result. only valid if Defn.Store is true
	Store uint8

	// branch polarity and offset. only valid if Defn.Branch is true
	BranchOn     bool
	BranchOffset int16

	// address of inline text. only valid if Defn.Text is true
	TextAddr uint32

	// number of bytes in the instruction (including inline text)
	Length int

	// whether the branch was taken
	BranchSuccess bool

	// the instruction has been fully decoded and executed
	Final bool
}

// Reset the result ready for decoding a new instruction. The operand slices
// are reused.
func (r *Result) Reset() {
	r.Address = 0
	r.Opcode = 0
	r.Defn = nil
	r.Types = r.Types[:0]
	r.Raw = r.Raw[:0]
	r.Operands = r.Operands[:0]
	r.Pops = 0
	r.Store = 0
	r.BranchOn = false
	r.BranchOffset = 0
	r.TextAddr = 0
	r.Length = 0
	r.BranchSuccess = false
	r.Final = false
}

// VariableName returns the conventional name of a variable number. The stack
// is "sp", locals are L00 to L0e and globals are G00 to Gef.
func VariableName(v uint8) string {
	switch {
	case v == 0:
		return "sp"
	case v < 16:
		return fmt.Sprintf("L%02x", v-1)
	}
	return fmt.Sprintf("G%02x", v-16)
}

func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%#05x ???", r.Address)
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%#05x %s", r.Address, strings.ToUpper(r.Defn.Mnemonic)))

	for i, t := range r.Types {
		switch t {
		case Variable:
			s.WriteString(" " + VariableName(uint8(r.Raw[i])))
		case Small:
			s.WriteString(fmt.Sprintf(" #%02x", r.Raw[i]))
		default:
			s.WriteString(fmt.Sprintf(" #%04x", r.Raw[i]))
		}
	}

	if r.Defn.Store {
		s.WriteString(" -> " + VariableName(r.Store))
	}

	if r.Defn.Branch {
		if r.BranchOn {
			s.WriteString(" [TRUE]")
		} else {
			s.WriteString(" [FALSE]")
		}
		switch r.BranchOffset {
		case 0:
			s.WriteString(" RFALSE")
		case 1:
			s.WriteString(" RTRUE")
		default:
			s.WriteString(fmt.Sprintf(" %#05x", int64(r.Address)+int64(r.Length)+int64(r.BranchOffset)-2))
		}
	}

	return s.String()
}
