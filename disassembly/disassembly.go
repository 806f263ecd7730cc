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

package disassembly

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/execution"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
)

// the most instructions disassembled in one go
const maxEntries = 10000

// Entry is a single disassembled instruction.
type Entry struct {
	execution.Result

	// the decoded inline text of print and print_ret
	Text string

	// the instruction bytes
	Bytecode []uint8
}

func (e Entry) String() string {
	if e.Defn != nil && e.Defn.Text {
		return fmt.Sprintf("%s %q", e.Result, e.Text)
	}
	return e.Result.String()
}

// Disassembly of a routine or of a run of code.
type Disassembly struct {
	// address of the routine header. zero if the code is not a routine
	Routine uint32

	// number of local variables and their initial values. initial values
	// are only present in versions 1 to 4
	Locals  int
	Initial []uint16

	Entries []Entry
}

// FromStart disassembles the code that runs when the story starts. In
// version 6 this is the main routine.
func FromStart(eng *zmachine.Engine) (*Disassembly, error) {
	if eng.Header.StartIsRoutine() {
		return FromRoutine(eng, eng.Header.PackedAddress(eng.Header.InitialPC, header.Routine))
	}
	return FromCode(eng, uint32(eng.Header.InitialPC))
}

// FromPacked disassembles the routine at the packed address.
func FromPacked(eng *zmachine.Engine, packed uint16) (*Disassembly, error) {
	return FromRoutine(eng, eng.Header.PackedAddress(packed, header.Routine))
}

// FromRoutine disassembles the routine with the header at the address.
func FromRoutine(eng *zmachine.Engine, addr uint32) (*Disassembly, error) {
	if addr == 0 || addr >= uint32(eng.Mem.Len()) {
		return nil, fmt.Errorf("disassembly: no routine at %#05x", addr)
	}

	dsm := &Disassembly{
		Routine: addr,
		Locals:  int(eng.Mem.Read(addr)),
	}
	if dsm.Locals > eng.Header.MaxLocals() {
		return nil, fmt.Errorf("disassembly: no routine at %#05x: %d locals", addr, dsm.Locals)
	}

	pc := addr + 1
	if eng.Header.Version <= 4 {
		for range dsm.Locals {
			dsm.Initial = append(dsm.Initial, eng.Mem.ReadWord(pc))
			pc += 2
		}
	}

	return dsm, dsm.linear(eng, pc)
}

// FromCode disassembles code that is not preceded by a routine header.
func FromCode(eng *zmachine.Engine, addr uint32) (*Disassembly, error) {
	dsm := &Disassembly{}
	return dsm, dsm.linear(eng, addr)
}

func (dsm *Disassembly) linear(eng *zmachine.Engine, pc uint32) error {
	codec := eng.CPU.Codec()
	furthest := pc

	for range maxEntries {
		r, err := eng.CPU.Disassemble(pc)
		if err != nil {
			return fmt.Errorf("disassembly: %w", err)
		}

		e := Entry{Result: r}
		if r.Defn.Text {
			e.Text, _ = codec.Decode(r.TextAddr)
		}
		for i := range uint32(r.Length) {
			e.Bytecode = append(e.Bytecode, eng.Mem.Read(pc+i))
		}
		dsm.Entries = append(dsm.Entries, e)

		next := pc + uint32(r.Length)
		if t, ok := target(r, next); ok {
			furthest = max(furthest, t)
		}
		pc = next

		if terminates(r) && pc > furthest {
			return nil
		}
	}

	return nil
}

// target returns the destination of a branch or jump.
func target(r execution.Result, next uint32) (uint32, bool) {
	switch {
	case r.Defn.Branch:
		if r.BranchOffset == 0 || r.BranchOffset == 1 {
			return 0, false
		}
		return uint32(int64(next) + int64(r.BranchOffset) - 2), true
	case r.Defn.Class == instructions.OP1 && r.Defn.Mnemonic == "jump":
		if r.Types[0] == execution.Variable {
			return 0, false
		}
		return uint32(int64(next) + int64(int16(r.Raw[0])) - 2), true
	}
	return 0, false
}

// terminates returns true if execution cannot continue to the next
// instruction.
func terminates(r execution.Result) bool {
	if r.Defn.Effect == instructions.Return {
		return true
	}
	switch r.Defn.Mnemonic {
	case "jump", "quit", "restart":
		return true
	}
	return false
}
