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

package cpu

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/zmachine/execution"
	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
)

// the first byte of an extended instruction in version 5 and later
const extendedOpcode = 0xbe

func (mc *CPU) read8() uint8 {
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v
}

func (mc *CPU) read16() uint16 {
	v := mc.mem.ReadWord(mc.PC)
	mc.PC += 2
	return v
}

// decode the instruction at the PC into LastResult. Operands are read and any
// stack pops are performed.
func (mc *CPU) decode() error {
	mc.popped = mc.popped[:0]
	if err := mc.decodeInto(&mc.LastResult, true); err != nil {
		return err
	}
	mc.LastResult.Pops = len(mc.popped)
	return nil
}

// Disassemble decodes the instruction at the address without executing it.
// Variable operands are not read and so the Operands field of the result is
// zero for those operands.
func (mc *CPU) Disassemble(addr uint32) (execution.Result, error) {
	pc := mc.PC
	defer func() {
		mc.PC = pc
	}()

	mc.PC = addr
	var r execution.Result
	err := mc.decodeInto(&r, false)
	return r, err
}

// decodeInto decodes the instruction at the PC. Variable operands are only
// read if exec is true.
func (mc *CPU) decodeInto(r *execution.Result, exec bool) error {
	r.Reset()

	r.Address = mc.PC
	r.Opcode = mc.read8()

	var class instructions.Class
	var number uint8
	var types []execution.OperandType
	var typeBytes int

	switch {
	case r.Opcode < 0x80:
		// long form
		class = instructions.OP2
		number = r.Opcode & 0x1f
		types = append(types, longType(r.Opcode&0x40), longType(r.Opcode&0x20))

	case r.Opcode == extendedOpcode && mc.hdr.Version >= 5:
		class = instructions.EXT
		number = mc.read8()
		r.Opcode = number
		typeBytes = 1

	case r.Opcode < 0xc0:
		// short form
		t := execution.OperandType((r.Opcode >> 4) & 0x03)
		number = r.Opcode & 0x0f
		if t == execution.Omitted {
			class = instructions.OP0
		} else {
			class = instructions.OP1
			types = append(types, t)
		}

	default:
		// variable form
		if r.Opcode&0x20 == 0x00 {
			class = instructions.OP2
		} else {
			class = instructions.VAR
		}
		number = r.Opcode & 0x1f
		typeBytes = 1
	}

	defn, ok := mc.instructions.Lookup(class, number)
	if !ok {
		return fmt.Errorf("cpu: %s:%d in version %d at %#05x: %w", class, number, mc.hdr.Version, r.Address, ErrUnknownOpcode)
	}
	r.Defn = defn

	if typeBytes > 0 {
		if defn.DoubleTypes {
			typeBytes = 2
		}
		var b [2]uint8
		for i := range typeBytes {
			b[i] = mc.read8()
		}

		// types are read until the first omitted operand. anything after that
		// is ignored
	done:
		for i := range typeBytes {
			for shift := 6; shift >= 0; shift -= 2 {
				t := execution.OperandType((b[i] >> shift) & 0x03)
				if t == execution.Omitted {
					break done
				}
				types = append(types, t)
			}
		}
	}

	for _, t := range types {
		var raw, value uint16
		switch t {
		case execution.Large:
			raw = mc.read16()
			value = raw
		case execution.Small:
			raw = uint16(mc.read8())
			value = raw
		case execution.Variable:
			raw = uint16(mc.read8())
			if !exec {
				break
			}
			before := len(mc.stack)
			value = mc.readVar(uint8(raw))
			if raw == 0 && len(mc.stack) < before {
				mc.popped = append(mc.popped, value)
			}
		}
		r.Types = append(r.Types, t)
		r.Raw = append(r.Raw, raw)
		r.Operands = append(r.Operands, value)
	}
	if exec {
		mc.resultAddr = mc.PC
	}

	if defn.Store {
		r.Store = mc.read8()
	}

	if defn.Branch {
		r.BranchOn, r.BranchOffset = mc.readBranch()
	}

	if defn.Text {
		r.TextAddr = mc.PC
		_, mc.PC = mc.codec.ZChars(mc.PC)
	}

	r.Length = int(mc.PC - r.Address)

	return nil
}

func longType(bit uint8) execution.OperandType {
	if bit == 0 {
		return execution.Small
	}
	return execution.Variable
}

// readBranch reads the branch bytes at the PC. Offsets are either six bits
// unsigned or fourteen bits signed.
func (mc *CPU) readBranch() (bool, int16) {
	b := mc.read8()
	on := b&0x80 == 0x80
	if b&0x40 == 0x40 {
		return on, int16(b & 0x3f)
	}
	off := int16(b&0x3f)<<8 | int16(mc.read8())
	if off&0x2000 == 0x2000 {
		off -= 0x4000
	}
	return on, off
}
