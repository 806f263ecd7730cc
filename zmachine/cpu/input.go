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
	"strings"
	"unicode"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// pendingRead is a read or read_char instruction waiting for input.
type pendingRead struct {
	char bool

	// text and parse buffers. parse is zero if the input is not to be
	// tokenised
	text  uint32
	parse uint32

	// timed input. the routine is called every time tenths of a second
	time    uint16
	routine uint16
	waits   int

	hasStore bool
	store    uint8

	// address of the read instruction and the address of the next
	// instruction
	addr uint32
	next uint32

	// values popped from the stack by the operands of the read instruction
	popped []uint16
}

// Pending describes the input the engine is waiting for.
type Pending struct {
	Char bool

	// timed input
	Time    int
	Routine uint16
}

func (mc *CPU) inInterrupt() bool {
	for _, f := range mc.frames {
		if f.interrupt {
			return true
		}
	}
	return false
}

func (mc *CPU) suspend(p *pendingRead) error {
	if mc.inInterrupt() {
		return fmt.Errorf("cpu: %s: %w", mc.LastResult.Defn.Mnemonic, ErrInterrupt)
	}

	r := &mc.LastResult
	p.hasStore = r.Defn.Store
	p.store = r.Store
	p.addr = r.Address
	p.next = mc.PC
	p.popped = append([]uint16(nil), mc.popped...)

	mc.pending = p
	mc.state = AwaitingInput
	return nil
}

// sread/aread text parse [time routine]
func (mc *CPU) read() error {
	if mc.hdr.Version <= 3 {
		mc.updateStatus()
	}
	return mc.suspend(&pendingRead{
		text:    uint32(mc.arg(0)),
		parse:   uint32(mc.arg(1)),
		time:    mc.arg(2),
		routine: mc.arg(3),
	})
}

// read_char 1 [time routine]
func (mc *CPU) readChar() error {
	return mc.suspend(&pendingRead{
		char:    true,
		time:    mc.arg(1),
		routine: mc.arg(2),
	})
}

// Pending returns details of the input the engine is waiting for. The boolean
// is false if the engine is not waiting for input.
func (mc *CPU) Pending() (Pending, bool) {
	if mc.state != AwaitingInput {
		return Pending{}, false
	}
	return Pending{
		Char:    mc.pending.char,
		Time:    int(mc.pending.time),
		Routine: mc.pending.routine,
	}, true
}

// convert a line of input to the ZSCII the story sees. characters without a
// ZSCII equivalent become question marks
func (mc *CPU) inputZSCII(text string) []uint16 {
	text = strings.TrimRight(text, "\r\n")
	zscii := make([]uint16, 0, len(text))
	for _, r := range strings.ToLower(text) {
		z, ok := mc.codec.RuneToZSCII(unicode.ToLower(r))
		if !ok {
			z = '?'
		}
		if (z >= 32 && z <= 126) || (z >= 155 && z <= 251) {
			zscii = append(zscii, z)
		}
	}
	return zscii
}

// Input completes a pending read with a line of text. If the story is waiting
// for a single key then the first character of the text is used, or newline if
// the text is empty.
func (mc *CPU) Input(text string) error {
	if mc.state != AwaitingInput {
		return fmt.Errorf("cpu: input while %s: %w", mc.state, ErrNotWaiting)
	}

	p := mc.pending
	zscii := mc.inputZSCII(text)

	if p.char {
		z := uint16(zstring.ZSCIINewline)
		if len(zscii) > 0 {
			z = zscii[0]
		}
		return mc.finishRead(z)
	}

	if err := mc.storeInput(zscii); err != nil {
		return err
	}

	if mc.transcripting() {
		mc.out.transcript.WriteString(text)
		mc.out.transcript.WriteRune('\n')
	}

	return mc.finishRead(zstring.ZSCIINewline)
}

// Key completes a pending read_char with a single character.
func (mc *CPU) Key(r rune) error {
	if mc.state != AwaitingInput || !mc.pending.char {
		return fmt.Errorf("cpu: key while %s: %w", mc.state, ErrNotWaiting)
	}
	z, ok := mc.codec.RuneToZSCII(r)
	if !ok {
		z = '?'
	}
	return mc.finishRead(z)
}

// KeyCode completes a pending read_char with a ZSCII input code. Used for keys
// that have no printable equivalent, such as the cursor keys.
func (mc *CPU) KeyCode(z uint16) error {
	if mc.state != AwaitingInput || !mc.pending.char {
		return fmt.Errorf("cpu: key while %s: %w", mc.state, ErrNotWaiting)
	}
	switch {
	case z == zstring.ZSCIIDelete, z == zstring.ZSCIINewline, z == zstring.ZSCIIEscape:
	case z >= 32 && z <= 126:
	case z >= zstring.ZSCIICursorUp && z <= 154:
	case z >= 155 && z <= 251:
	default:
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "input code %d is not valid for read_char", z)
		z = '?'
	}
	return mc.finishRead(z)
}

// write input into the text buffer and tokenise it if required
func (mc *CPU) storeInput(zscii []uint16) error {
	p := mc.pending

	if mc.hdr.Version <= 4 {
		limit := int(mc.mem.Read(p.text)) - 1
		if len(zscii) > limit {
			zscii = zscii[:max(limit, 0)]
		}
		for i, z := range zscii {
			if err := mc.mem.Write(p.text+1+uint32(i), uint8(z)); err != nil {
				return err
			}
		}
		if err := mc.mem.Write(p.text+1+uint32(len(zscii)), 0); err != nil {
			return err
		}
	} else {
		limit := int(mc.mem.Read(p.text))
		existing := int(mc.mem.Read(p.text + 1))
		if existing > limit {
			existing = 0
		}
		if len(zscii) > limit-existing {
			zscii = zscii[:limit-existing]
		}
		for i, z := range zscii {
			if err := mc.mem.Write(p.text+2+uint32(existing+i), uint8(z)); err != nil {
				return err
			}
		}
		if err := mc.mem.Write(p.text+1, uint8(existing+len(zscii))); err != nil {
			return err
		}
	}

	if p.parse == 0 {
		return nil
	}
	return mc.tokenise(p.text, p.parse, mc.dict, false)
}

// finishRead stores the terminating character (for instructions that have a
// store) and resumes execution at the next instruction.
func (mc *CPU) finishRead(terminator uint16) error {
	p := mc.pending
	mc.pending = nil
	mc.PC = p.next
	mc.state = Running

	if p.hasStore {
		return mc.writeVar(p.store, terminator)
	}
	return nil
}

// Tick counts one interval of a timed read. The story's timer routine is
// called and if it returns true the read is terminated. The read is also
// terminated once the maximum number of timed waits has been reached. Returns
// true if the read has been terminated, in which case Run() should be called.
//
// Reads without a timer are unaffected.
func (mc *CPU) Tick() (bool, error) {
	if mc.state != AwaitingInput {
		return false, fmt.Errorf("cpu: tick while %s: %w", mc.state, ErrNotWaiting)
	}

	p := mc.pending
	if p.time == 0 || p.routine == 0 {
		return false, nil
	}
	p.waits++

	v, err := mc.interrupt(p.routine)
	if err != nil {
		mc.state = Halted
		return false, err
	}

	if mc.state == Halted {
		return true, nil
	}

	terminate := v != 0
	if limit := mc.instance.Prefs.MaxTimedWaits.Value(); limit > 0 && p.waits >= limit {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "timed input abandoned after %d waits", p.waits)
		terminate = true
	}

	if !terminate {
		return false, nil
	}

	if !p.char {
		if err := mc.storeInput(nil); err != nil {
			return false, err
		}
	}
	return true, mc.finishRead(0)
}

// interrupt calls a routine from outside of the normal flow of execution and
// runs it to completion. The state of the engine is restored afterwards.
func (mc *CPU) interrupt(packed uint16) (uint16, error) {
	state := mc.state
	pc := mc.PC

	depth := len(mc.frames)
	mc.state = Running
	mc.interruptDone = false

	if err := mc.call(packed, nil, 0, true); err != nil {
		mc.state = state
		return 0, err
	}
	if len(mc.frames) == depth {
		mc.state = state
		return 0, nil
	}
	mc.top().interrupt = true

	limit := mc.instance.Prefs.MaxInstructions.Value()
	for n := 0; !mc.interruptDone; n++ {
		if mc.state == Halted {
			return 0, nil
		}
		if limit > 0 && n >= limit {
			return 0, fmt.Errorf("cpu: interrupt routine %#04x: %w", packed, ErrStepLimit)
		}
		if err := mc.ExecuteInstruction(); err != nil {
			return 0, err
		}
	}

	mc.PC = pc
	mc.state = state
	return mc.interruptResult, nil
}
