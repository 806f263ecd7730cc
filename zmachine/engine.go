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

package zmachine

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/cpu"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/instance"
	"github.com/avwohl/zwalker-sub001/zmachine/memory"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
	"github.com/avwohl/zwalker-sub001/zmachine/snapshot"
)

// Engine is the main container for the emulated components of the Z-machine.
type Engine struct {
	Instance *instance.Instance

	Header *header.Header
	Mem    *memory.Memory
	CPU    *cpu.CPU
}

// Load creates a new engine for the story file. If prefs is nil then the
// preferences are loaded from disk.
//
// The data is copied so the caller is free to reuse it. A checksum mismatch is
// logged but does not prevent the story from loading.
func Load(data []byte, prefs *preferences.Preferences) (*Engine, error) {
	ins, err := instance.NewInstance(prefs)
	if err != nil {
		return nil, fmt.Errorf("zmachine: %w", err)
	}
	return LoadInstance(data, ins)
}

// LoadInstance is the same as Load() but with an existing instance.
func LoadInstance(data []byte, ins *instance.Instance) (*Engine, error) {
	eng := &Engine{Instance: ins}

	var err error

	eng.Header, err = header.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("zmachine: %w", err)
	}

	eng.Mem, err = memory.NewMemory(append([]byte(nil), data...), uint32(eng.Header.StaticBase), uint32(eng.Header.HighBase))
	if err != nil {
		return nil, fmt.Errorf("zmachine: %w", err)
	}

	if sum := header.Checksum(eng.Mem.Original(), eng.Header.FileLength); eng.Header.Checksum != 0 && sum != eng.Header.Checksum {
		logger.Logf(eng.Instance, eng.Instance.Tag("zmachine"), "checksum mismatch: header says %#04x, calculated %#04x", eng.Header.Checksum, sum)
	}

	eng.CPU, err = cpu.NewCPU(ins, eng.Header, eng.Mem)
	if err != nil {
		return nil, fmt.Errorf("zmachine: %w", err)
	}

	logger.Logf(eng.Instance, eng.Instance.Tag("zmachine"), "loaded version %d release %d serial %s", eng.Header.Version, eng.Header.Release, eng.Header.Serial)

	return eng, nil
}

func (eng *Engine) String() string {
	return fmt.Sprintf("v%d r%d %s [%s]", eng.Header.Version, eng.Header.Release, eng.Header.Serial, eng.CPU.State())
}

// State of the engine.
func (eng *Engine) State() cpu.State {
	return eng.CPU.State()
}

// WaitingForInput returns true if the engine is suspended on a read or
// read_char instruction.
func (eng *Engine) WaitingForInput() bool {
	return eng.CPU.State() == cpu.AwaitingInput
}

// Halted returns true if the story has ended or a fatal error has occurred.
func (eng *Engine) Halted() bool {
	return eng.CPU.State() == cpu.Halted
}

// Run executes the story until it needs input or halts. The output produced
// since the last call to any output returning function is returned. The
// output is returned even if there is an error.
func (eng *Engine) Run() (string, error) {
	err := eng.CPU.Run()
	return eng.CPU.Output(), err
}

// SendInput supplies a line of text for a pending read and resumes execution.
func (eng *Engine) SendInput(text string) (string, error) {
	if err := eng.CPU.Input(text); err != nil {
		return eng.CPU.Output(), err
	}
	return eng.Run()
}

// SendKey supplies a single key for a pending read_char and resumes
// execution.
func (eng *Engine) SendKey(r rune) (string, error) {
	if err := eng.CPU.Key(r); err != nil {
		return eng.CPU.Output(), err
	}
	return eng.Run()
}

// SendKeyCode supplies a ZSCII input code for a pending read_char and resumes
// execution.
func (eng *Engine) SendKeyCode(z uint16) (string, error) {
	if err := eng.CPU.KeyCode(z); err != nil {
		return eng.CPU.Output(), err
	}
	return eng.Run()
}

// Tick counts one interval of a timed read. If the read is terminated by the
// interrupt routine or by the number of waits then execution resumes.
func (eng *Engine) Tick() (string, error) {
	done, err := eng.CPU.Tick()
	if err != nil || !done {
		return eng.CPU.Output(), err
	}
	return eng.Run()
}

// GetOutput drains the output buffer. Output is normally returned by Run()
// and the input functions so this is only needed after an error.
func (eng *Engine) GetOutput() string {
	return eng.CPU.Output()
}

// Transcript drains the transcript buffer.
func (eng *Engine) Transcript() string {
	return eng.CPU.Transcript()
}

// Status returns the most recent status line and the contents of the upper
// window.
func (eng *Engine) Status() cpu.Status {
	return eng.CPU.Status()
}

// Snapshot of the engine. The engine should be waiting for input.
func (eng *Engine) Snapshot() (*snapshot.State, error) {
	return eng.CPU.Snapshot()
}

// Restore a snapshot and run forward until the engine is waiting for input
// again. The output produced by running forward is discarded because it is
// output the driver has already seen. Output buffered before the call is
// kept.
func (eng *Engine) Restore(s *snapshot.State) error {
	held := eng.CPU.Output()
	defer eng.CPU.ReplaceOutput(held)

	if err := eng.CPU.Restore(s); err != nil {
		return err
	}
	return eng.CPU.Run()
}

// Encode a snapshot to the Quetzal format.
func (eng *Engine) Encode(s *snapshot.State) []byte {
	return s.Encode(eng.Mem.OriginalDynamic())
}

// Decode a Quetzal file created by Encode() or by the save instruction.
func (eng *Engine) Decode(data []byte) (*snapshot.State, error) {
	return snapshot.Decode(data, eng.Mem.OriginalDynamic())
}

// PendingSave returns the save file the story wants written. The driver
// should write the file and then call CompleteSave().
func (eng *Engine) PendingSave() []byte {
	return eng.CPU.PendingSave()
}

// CompleteSave tells the story whether the save succeeded and resumes
// execution.
func (eng *Engine) CompleteSave(ok bool) (string, error) {
	if err := eng.CPU.CompleteSave(ok); err != nil {
		return eng.CPU.Output(), err
	}
	return eng.Run()
}

// CompleteRestore supplies the save file for a pending restore and resumes
// execution. A nil slice means no file could be read. If the file could not
// be used the story is told and execution resumes, with the error returned
// alongside the output.
func (eng *Engine) CompleteRestore(data []byte) (string, error) {
	rerr := eng.CPU.CompleteRestore(data)
	out, err := eng.Run()
	if err != nil {
		return out, err
	}
	return out, rerr
}

// Restart the story from the beginning.
func (eng *Engine) Restart() (string, error) {
	if err := eng.CPU.Restart(); err != nil {
		return eng.CPU.Output(), err
	}
	return eng.Run()
}
