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
	"errors"
	"fmt"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/dictionary"
	"github.com/avwohl/zwalker-sub001/zmachine/execution"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/instance"
	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
	"github.com/avwohl/zwalker-sub001/zmachine/memory"
	"github.com/avwohl/zwalker-sub001/zmachine/objects"
	"github.com/avwohl/zwalker-sub001/zmachine/snapshot"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// Sentinel errors returned by the cpu.
var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrCallStack     = errors.New("call stack corrupted")
	ErrHalted        = errors.New("engine has halted")
	ErrNotWaiting    = errors.New("engine is not waiting for that")
	ErrStepLimit     = errors.New("instruction limit reached")
	ErrInterrupt     = errors.New("input requested by interrupt routine")
)

// State of the engine.
type State int

// List of valid State values.
const (
	Running State = iota
	AwaitingInput
	AwaitingSave
	AwaitingRestore
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingInput:
		return "awaiting input"
	case AwaitingSave:
		return "awaiting save"
	case AwaitingRestore:
		return "awaiting restore"
	case Halted:
		return "halted"
	}
	return "unknown state"
}

// CPU implements the Z-machine.
type CPU struct {
	instance *instance.Instance

	hdr          *header.Header
	mem          *memory.Memory
	codec        *zstring.Codec
	objects      *objects.Store
	dict         *dictionary.Dictionary
	instructions *instructions.Table

	PC uint32

	// the value stack is shared by all frames. each frame records where its
	// part of the stack begins
	stack  []uint16
	frames []frame

	state State

	// the result of the most recent instruction
	LastResult execution.Result

	// values popped from the stack while decoding the operands of the current
	// instruction, in the order they were popped
	popped []uint16

	// address of the store or branch byte of the current instruction
	resultAddr uint32

	// the read instruction that is waiting for input
	pending *pendingRead

	// save image waiting to be written by the driver
	pendingSave []byte

	// save_undo states
	history *snapshot.History

	out outputStreams

	// the number of instructions executed since the engine was created
	count int

	// set when an interrupt routine returns
	interruptResult uint16
	interruptDone   bool

	// Trace is called after every instruction if it is not nil
	Trace func(r execution.Result)
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// header must have been parsed from the data in memory.
func NewCPU(ins *instance.Instance, hdr *header.Header, mem *memory.Memory) (*CPU, error) {
	if hdr.Version < 1 || hdr.Version > 8 {
		return nil, fmt.Errorf("cpu: version %d: %w", hdr.Version, header.ErrVersion)
	}

	mc := &CPU{
		instance:     ins,
		hdr:          hdr,
		mem:          mem,
		instructions: instructions.NewTable(hdr.Version),
		history:      snapshot.NewHistory(ins.Prefs.UndoSlots.Value()),
	}

	var alphabet uint32
	if hdr.Version >= 5 {
		alphabet = uint32(hdr.AlphabetTable)
	}
	mem.Log = ins
	mc.codec = zstring.NewCodec(hdr.Version, mem, uint32(hdr.Abbreviations), alphabet, hdr.UnicodeTable(mem))
	mc.codec.Log = ins
	mc.objects = objects.NewStore(mem, hdr.Version, uint32(hdr.ObjectTable))
	mc.dict = dictionary.NewDictionary(mem, mc.codec, uint32(hdr.Dictionary))

	mem.Strict = ins.Prefs.StrictWrites.Get().(bool)

	mc.configure()
	mc.out.reset(ins.Prefs.ScreenWidth.Value())

	if err := mc.start(); err != nil {
		return nil, err
	}

	return mc, nil
}

func (mc *CPU) String() string {
	return fmt.Sprintf("pc=%#05x state=%s frames=%d stack=%d", mc.PC, mc.state, len(mc.frames), len(mc.stack))
}

// write interpreter capabilities into the header
func (mc *CPU) configure() {
	p := mc.instance.Prefs

	c := header.Capabilities{
		InterpreterNumber: uint8(p.InterpreterNumber.Value()),
		ScreenWidth:       uint8(p.ScreenWidth.Value()),
		ScreenHeight:      uint8(p.ScreenHeight.Value()),
		Undo:              p.UndoSlots.Value() > 0,
	}
	if v := p.InterpreterVersion.String(); v != "" {
		c.InterpreterVersion = v[0]
	}

	mc.hdr.Configure(mc.mem, c)
}

// start execution from the beginning of the story
func (mc *CPU) start() error {
	mc.stack = mc.stack[:0]
	mc.frames = mc.frames[:0]
	mc.pending = nil
	mc.pendingSave = nil
	mc.state = Running

	// the main routine of a version 6 story is an ordinary routine that must
	// never return. other versions start with a dummy frame
	if mc.hdr.StartIsRoutine() {
		mc.PC = 0
		if err := mc.call(mc.hdr.InitialPC, nil, 0, true); err != nil {
			return err
		}
		if len(mc.frames) == 0 {
			return fmt.Errorf("cpu: main routine at %#04x: %w", mc.hdr.InitialPC, ErrCallStack)
		}
		return nil
	}

	mc.frames = append(mc.frames, frame{})
	mc.PC = uint32(mc.hdr.InitialPC)
	return nil
}

// State returns the current state of the engine.
func (mc *CPU) State() State {
	return mc.state
}

// Header returns the story header.
func (mc *CPU) Header() *header.Header {
	return mc.hdr
}

// Memory returns the story memory.
func (mc *CPU) Memory() *memory.Memory {
	return mc.mem
}

// Codec returns the text codec for the story.
func (mc *CPU) Codec() *zstring.Codec {
	return mc.codec
}

// Objects returns the object store for the story.
func (mc *CPU) Objects() *objects.Store {
	return mc.objects
}

// Dictionary returns the story's main dictionary.
func (mc *CPU) Dictionary() *dictionary.Dictionary {
	return mc.dict
}

// Count returns the number of instructions executed since the engine was
// created.
func (mc *CPU) Count() int {
	return mc.count
}

// Run executes instructions until the engine needs input, the story ends or
// an error occurs. An error other than ErrStepLimit halts the engine.
func (mc *CPU) Run() error {
	switch mc.state {
	case Halted:
		return ErrHalted
	case AwaitingInput, AwaitingSave, AwaitingRestore:
		return nil
	}

	limit := mc.instance.Prefs.MaxInstructions.Value()

	for n := 0; mc.state == Running; n++ {
		if limit > 0 && n >= limit {
			return fmt.Errorf("cpu: %d instructions at %#05x: %w", limit, mc.PC, ErrStepLimit)
		}
		if err := mc.ExecuteInstruction(); err != nil {
			mc.state = Halted
			return err
		}
	}

	return nil
}

// ExecuteInstruction steps the engine forward by one instruction. The basic
// process is:
//
//  1. read the opcode and find the definition
//  2. read the operands, store byte, branch bytes and inline text as required
//  3. perform the operation
func (mc *CPU) ExecuteInstruction() error {
	switch mc.state {
	case Halted:
		return ErrHalted
	case Running:
	default:
		return fmt.Errorf("cpu: execute while %s: %w", mc.state, ErrNotWaiting)
	}

	if err := mc.decode(); err != nil {
		return err
	}

	if err := mc.execute(); err != nil {
		return fmt.Errorf("cpu: %s: %w", mc.LastResult.String(), err)
	}

	mc.LastResult.Final = true
	mc.count++

	if mc.Trace != nil {
		mc.Trace(mc.LastResult)
	}

	return nil
}

// Restart the story. This has the same effect as the restart instruction.
func (mc *CPU) Restart() error {
	preserved := header.PreservedFlags2(mc.mem)
	mc.mem.Reset()
	header.RestoreFlags2(mc.mem, preserved)
	mc.configure()
	mc.out.reset(mc.instance.Prefs.ScreenWidth.Value())
	mc.history.Clear()
	logger.Log(mc.instance, mc.instance.Tag("cpu"), "restart")
	return mc.start()
}
