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
	"github.com/avwohl/zwalker-sub001/zmachine/snapshot"
)

// capture the state of the engine. pc is the address execution continues
// from when the state is restored
func (mc *CPU) capture(resume snapshot.Resume, pc uint32, popped []uint16) (*snapshot.State, error) {
	s := &snapshot.State{
		Release:  mc.hdr.Release,
		Serial:   mc.hdr.Serial,
		Checksum: mc.hdr.Checksum,
		PC:       pc,
		Resume:   resume,
		Dynamic:  mc.mem.Dynamic(),
		Frames:   make([]snapshot.Frame, 0, len(mc.frames)),
	}

	for i, f := range mc.frames {
		if f.interrupt {
			return nil, fmt.Errorf("cpu: state captured during interrupt routine: %w", ErrCallStack)
		}

		end := len(mc.stack)
		if i+1 < len(mc.frames) {
			end = mc.frames[i+1].stackBase
		}

		s.Frames = append(s.Frames, snapshot.Frame{
			ReturnPC: f.returnPC,
			Locals:   append([]uint16(nil), f.locals[:f.numLocals]...),
			Store:    f.store,
			Discard:  f.discard,
			ArgCount: f.argCount,
			Stack:    append([]uint16(nil), mc.stack[f.stackBase:end]...),
		})
	}

	// values popped by the operands of an input instruction are put back so
	// that the instruction can be executed again
	if len(s.Frames) > 0 {
		last := &s.Frames[len(s.Frames)-1]
		for i := len(popped) - 1; i >= 0; i-- {
			last.Stack = append(last.Stack, popped[i])
		}
	}

	var err error
	s.Random, err = mc.instance.Random.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	return s, nil
}

// apply a state to the engine. the state is not retained
func (mc *CPU) apply(s *snapshot.State) error {
	if err := s.Matches(mc.hdr.Release, mc.hdr.Serial, mc.hdr.Checksum); err != nil {
		return err
	}
	if len(s.Frames) == 0 {
		return fmt.Errorf("cpu: state has no frames: %w", snapshot.ErrFormat)
	}
	for _, f := range s.Frames {
		if len(f.Locals) > mc.hdr.MaxLocals() {
			return fmt.Errorf("cpu: frame with %d locals: %w", len(f.Locals), snapshot.ErrFormat)
		}
	}
	if len(s.Dynamic) != int(mc.mem.StaticBase()) {
		return fmt.Errorf("cpu: state has %d bytes of dynamic memory: %w", len(s.Dynamic), snapshot.ErrFormat)
	}

	preserved := header.PreservedFlags2(mc.mem)
	if err := mc.mem.SetDynamic(s.Dynamic); err != nil {
		return err
	}
	header.RestoreFlags2(mc.mem, preserved)
	mc.configure()

	mc.stack = mc.stack[:0]
	mc.frames = mc.frames[:0]
	for _, sf := range s.Frames {
		f := frame{
			returnPC:  sf.ReturnPC,
			numLocals: len(sf.Locals),
			store:     sf.Store,
			discard:   sf.Discard,
			argCount:  sf.ArgCount,
			stackBase: len(mc.stack),
		}
		copy(f.locals[:], sf.Locals)
		mc.frames = append(mc.frames, f)
		mc.stack = append(mc.stack, sf.Stack...)
	}

	if len(s.Random) > 0 {
		if err := mc.instance.Random.UnmarshalBinary(s.Random); err != nil {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "random state not restored: %v", err)
		}
	}

	mc.pending = nil
	mc.pendingSave = nil
	mc.out.memory = mc.out.memory[:0]
	mc.PC = s.PC
	mc.state = Running

	if s.Resume == snapshot.ResumeSave {
		return mc.resumeSave()
	}
	return nil
}

// complete a save instruction with the "restored" result. the PC points to
// the store or branch byte of the instruction
func (mc *CPU) resumeSave() error {
	r := &mc.LastResult
	r.Reset()
	r.Address = mc.PC

	if mc.hdr.Version <= 3 {
		r.BranchOn, r.BranchOffset = mc.readBranch()
		return mc.branch(true)
	}
	r.Store = mc.read8()
	return mc.store(2)
}

// Snapshot captures the state of the engine. The engine must be waiting for
// input or be between instructions.
func (mc *CPU) Snapshot() (*snapshot.State, error) {
	switch mc.state {
	case Running:
		return mc.capture(snapshot.ResumeInput, mc.PC, nil)
	case AwaitingInput:
		return mc.capture(snapshot.ResumeInput, mc.pending.addr, mc.pending.popped)
	}
	return nil, fmt.Errorf("cpu: snapshot while %s: %w", mc.state, ErrNotWaiting)
}

// Restore a state created by Snapshot() or decoded from a save file. Output
// already buffered is not affected. The engine is left in the Running state.
func (mc *CPU) Restore(s *snapshot.State) error {
	if s == nil {
		return fmt.Errorf("cpu: nil state: %w", snapshot.ErrFormat)
	}
	return mc.apply(s)
}

// save with no operands. auxiliary saves (with operands) are not supported
func (mc *CPU) save() error {
	if mc.args() > 0 {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "auxiliary save at %#05x not supported", mc.LastResult.Address)
		return mc.store(0)
	}

	s, err := mc.capture(snapshot.ResumeSave, mc.resultAddr, nil)
	if err != nil {
		return err
	}
	mc.pendingSave = s.Encode(mc.mem.OriginalDynamic())
	mc.state = AwaitingSave
	return nil
}

func (mc *CPU) restore() error {
	if mc.args() > 0 {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "auxiliary restore at %#05x not supported", mc.LastResult.Address)
		return mc.store(0)
	}
	mc.state = AwaitingRestore
	return nil
}

// PendingSave returns the Quetzal encoded save file created by the save
// instruction. Returns nil if the engine is not waiting for a save.
func (mc *CPU) PendingSave() []byte {
	if mc.state != AwaitingSave {
		return nil
	}
	return mc.pendingSave
}

// CompleteSave tells the engine whether the save file was written
// successfully.
func (mc *CPU) CompleteSave(ok bool) error {
	if mc.state != AwaitingSave {
		return fmt.Errorf("cpu: save completed while %s: %w", mc.state, ErrNotWaiting)
	}
	mc.pendingSave = nil
	mc.state = Running

	if mc.hdr.Version <= 3 {
		return mc.branch(ok)
	}
	return mc.store(boolToWord(ok))
}

// CompleteRestore supplies the save file for a pending restore. A nil data
// slice means no file could be read. If the restore fails the story is told
// and the error is returned. The engine is left in the Running state in both
// cases.
func (mc *CPU) CompleteRestore(data []byte) error {
	if mc.state != AwaitingRestore {
		return fmt.Errorf("cpu: restore completed while %s: %w", mc.state, ErrNotWaiting)
	}
	mc.state = Running

	var err error
	if data == nil {
		err = fmt.Errorf("cpu: no save data: %w", snapshot.ErrFormat)
	} else {
		var s *snapshot.State
		s, err = snapshot.Decode(data, mc.mem.OriginalDynamic())
		if err == nil {
			err = mc.apply(s)
		}
	}

	if err == nil {
		return nil
	}

	logger.Logf(mc.instance, mc.instance.Tag("cpu"), "restore failed: %v", err)

	var ferr error
	if mc.hdr.Version <= 3 {
		ferr = mc.branch(false)
	} else {
		ferr = mc.store(0)
	}
	if ferr != nil {
		return ferr
	}
	return err
}

func (mc *CPU) saveUndo() error {
	if mc.history.Size() == 0 {
		return mc.store(0xffff)
	}
	s, err := mc.capture(snapshot.ResumeSave, mc.resultAddr, nil)
	if err != nil {
		return err
	}
	mc.history.Push(s)
	return mc.store(1)
}

func (mc *CPU) restoreUndo() error {
	s := mc.history.Pop()
	if s == nil {
		return mc.store(0)
	}
	return mc.apply(s)
}
