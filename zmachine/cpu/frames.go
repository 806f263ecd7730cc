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

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
)

// frame is a single routine call.
type frame struct {
	returnPC  uint32
	locals    [15]uint16
	numLocals int

	// where the result of the routine goes
	store   uint8
	discard bool

	argCount int

	// index into the value stack where this frame's values begin
	stackBase int

	// interrupt routines return their value to the interpreter rather than
	// to a variable
	interrupt bool
}

func (mc *CPU) top() *frame {
	return &mc.frames[len(mc.frames)-1]
}

func (mc *CPU) push(v uint16) {
	mc.stack = append(mc.stack, v)
}

func (mc *CPU) pop() uint16 {
	if len(mc.stack) <= mc.top().stackBase {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "stack underflow at %#05x", mc.LastResult.Address)
		return 0
	}
	v := mc.stack[len(mc.stack)-1]
	mc.stack = mc.stack[:len(mc.stack)-1]
	return v
}

func (mc *CPU) peek() uint16 {
	if len(mc.stack) <= mc.top().stackBase {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "stack underflow at %#05x", mc.LastResult.Address)
		return 0
	}
	return mc.stack[len(mc.stack)-1]
}

func (mc *CPU) globalAddr(v uint8) uint32 {
	return uint32(mc.hdr.Globals) + 2*uint32(v-16)
}

func (mc *CPU) local(v uint8) (*uint16, bool) {
	f := mc.top()
	if int(v) > f.numLocals {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "local %d of %d at %#05x", v, f.numLocals, mc.LastResult.Address)
		return nil, false
	}
	return &f.locals[v-1], true
}

// readVar reads a variable. Reading variable zero pops the stack.
func (mc *CPU) readVar(v uint8) uint16 {
	switch {
	case v == 0:
		return mc.pop()
	case v < 16:
		if l, ok := mc.local(v); ok {
			return *l
		}
		return 0
	}
	return mc.mem.ReadWord(mc.globalAddr(v))
}

// writeVar writes a variable. Writing variable zero pushes to the stack.
func (mc *CPU) writeVar(v uint8, value uint16) error {
	switch {
	case v == 0:
		mc.push(value)
		return nil
	case v < 16:
		if l, ok := mc.local(v); ok {
			*l = value
		}
		return nil
	}
	return mc.mem.WriteWord(mc.globalAddr(v), value)
}

// peekVar is used by instructions that take a variable number as an operand.
// For those instructions variable zero is the top of the stack in place.
func (mc *CPU) peekVar(v uint8) uint16 {
	if v == 0 {
		return mc.peek()
	}
	return mc.readVar(v)
}

// replaceVar is the counterpart to peekVar().
func (mc *CPU) replaceVar(v uint8, value uint16) error {
	if v == 0 {
		if len(mc.stack) <= mc.top().stackBase {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "stack underflow at %#05x", mc.LastResult.Address)
			mc.push(value)
			return nil
		}
		mc.stack[len(mc.stack)-1] = value
		return nil
	}
	return mc.writeVar(v, value)
}

// store the result of the current instruction.
func (mc *CPU) store(value uint16) error {
	return mc.writeVar(mc.LastResult.Store, value)
}

// branch completes a branch instruction.
func (mc *CPU) branch(condition bool) error {
	r := &mc.LastResult
	if condition != r.BranchOn {
		return nil
	}
	r.BranchSuccess = true

	switch r.BranchOffset {
	case 0:
		return mc.ret(0)
	case 1:
		return mc.ret(1)
	}

	mc.PC = uint32(int64(mc.PC) + int64(r.BranchOffset) - 2)
	return nil
}

// call a routine. The result of the routine is stored in the store variable
// unless discard is true.
func (mc *CPU) call(packed uint16, args []uint16, store uint8, discard bool) error {
	if packed == 0 {
		if discard {
			return nil
		}
		return mc.writeVar(store, 0)
	}

	addr := mc.hdr.PackedAddress(packed, header.Routine)
	if int(addr) >= mc.mem.Len() {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "call to %#05x is outside of the story", addr)
		if discard {
			return nil
		}
		return mc.writeVar(store, 0)
	}

	n := int(mc.mem.Read(addr))
	if n > mc.hdr.MaxLocals() {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "routine at %#05x has %d locals", addr, n)
		if discard {
			return nil
		}
		return mc.writeVar(store, 0)
	}
	addr++

	f := frame{
		returnPC:  mc.PC,
		numLocals: n,
		store:     store,
		discard:   discard,
		argCount:  len(args),
		stackBase: len(mc.stack),
	}

	// initial values of locals are in the routine header in early versions
	if mc.hdr.Version <= 4 {
		for i := range n {
			f.locals[i] = mc.mem.ReadWord(addr)
			addr += 2
		}
	}

	for i, a := range args {
		if i >= n {
			break
		}
		f.locals[i] = a
	}

	if len(mc.frames) >= maxFrames {
		return fmt.Errorf("cpu: %d frames: %w", maxFrames, ErrCallStack)
	}

	mc.frames = append(mc.frames, f)
	mc.PC = addr
	return nil
}

// maximum call depth. a story that recurses this deeply is broken
const maxFrames = 1024

// ret returns from the current routine.
func (mc *CPU) ret(value uint16) error {
	if len(mc.frames) <= 1 {
		if len(mc.frames) == 1 && !mc.hdr.StartIsRoutine() {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "return from main routine at %#05x", mc.LastResult.Address)
		}
		mc.state = Halted
		return nil
	}

	f := mc.frames[len(mc.frames)-1]
	mc.stack = mc.stack[:f.stackBase]
	mc.frames = mc.frames[:len(mc.frames)-1]
	mc.PC = f.returnPC

	if f.interrupt {
		mc.interruptResult = value
		mc.interruptDone = true
		return nil
	}

	if f.discard {
		return nil
	}
	return mc.writeVar(f.store, value)
}
