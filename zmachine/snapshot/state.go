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

// Package snapshot holds copies of the mutable state of a running story.
// States are used for the save and restore opcodes, for undo and by drivers
// that want to try a command and then go back.
//
// A State can be encoded in the Quetzal format, the common save file format
// for Z-machine interpreters. Quetzal has no way of recording an engine that
// is waiting for input so a private chunk records how execution should
// resume.
package snapshot

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrFormat   = errors.New("snapshot format")
	ErrMismatch = errors.New("snapshot is for a different story")
)

// Resume describes how execution continues after a state is restored.
type Resume int

// List of valid Resume values.
const (
	// the PC points to the start of an input instruction. the instruction is
	// executed again when the state is restored
	ResumeInput Resume = iota

	// the PC points to the store or branch byte of a save (or save_undo)
	// instruction. the instruction completes with the "restored" result
	ResumeSave
)

func (r Resume) String() string {
	switch r {
	case ResumeInput:
		return "input"
	case ResumeSave:
		return "save"
	}
	return "unknown resume"
}

// Frame is the state of a single routine call.
type Frame struct {
	ReturnPC uint32

	// the local variables of the routine. the length is the number of locals
	Locals []uint16

	// the variable the result is stored in. Discard is true if the result is
	// thrown away
	Store   uint8
	Discard bool

	// the number of arguments supplied by the caller
	ArgCount int

	// the part of the value stack belonging to this frame
	Stack []uint16

	// the frame was created by the interpreter to call a timed input routine
	// or sound effect routine. not recorded by Quetzal
	Interrupt bool
}

func (f Frame) String() string {
	return fmt.Sprintf("ret=%#05x locals=%d args=%d stack=%d", f.ReturnPC, len(f.Locals), f.ArgCount, len(f.Stack))
}

// State is a snapshot of a running story.
type State struct {
	// identifies the story the state belongs to
	Release  uint16
	Serial   string
	Checksum uint16

	PC     uint32
	Resume Resume

	// contents of dynamic memory
	Dynamic []byte

	// call frames from the outermost to the innermost. the first frame is the
	// root frame, which is a dummy frame except in version 6 stories
	Frames []Frame

	// random number generator state
	Random []byte
}

func (s *State) String() string {
	return fmt.Sprintf("pc=%#05x resume=%s frames=%d dynamic=%d bytes", s.PC, s.Resume, len(s.Frames), len(s.Dynamic))
}

// Copy returns a deep copy of the state.
func (s *State) Copy() *State {
	n := *s
	n.Dynamic = append([]byte(nil), s.Dynamic...)
	n.Random = append([]byte(nil), s.Random...)
	n.Frames = make([]Frame, len(s.Frames))
	for i, f := range s.Frames {
		n.Frames[i] = f
		n.Frames[i].Locals = append([]uint16(nil), f.Locals...)
		n.Frames[i].Stack = append([]uint16(nil), f.Stack...)
	}
	return &n
}

// Matches returns an error wrapping ErrMismatch if the state does not belong
// to the story identified by the arguments.
func (s *State) Matches(release uint16, serial string, checksum uint16) error {
	if s.Release != release || s.Serial != serial || s.Checksum != checksum {
		return fmt.Errorf("snapshot: release %d serial %s checksum %#04x: %w", s.Release, s.Serial, s.Checksum, ErrMismatch)
	}
	return nil
}
