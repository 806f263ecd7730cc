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
	"strconv"
	"strings"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
)

// maximum nesting of output stream 3
const maxMemoryStreams = 16

// Status is the information shown on a status line. Nothing is rendered by
// the engine.
type Status struct {
	// short name of the object in global zero
	Location string

	// when Timed is true the story is showing the time rather than score and
	// moves
	Timed   bool
	Score   int
	Moves   int
	Hours   int
	Minutes int

	// the contents of the upper window. version 4 and later stories draw
	// their own status line here
	Upper string
}

func (s Status) String() string {
	if s.Timed {
		return fmt.Sprintf("%s  %d:%02d", s.Location, s.Hours, s.Minutes)
	}
	return fmt.Sprintf("%s  %d/%d", s.Location, s.Score, s.Moves)
}

type memoryStream struct {
	table uint32
	data  []uint8
}

// upperWindow is a grid of characters addressed by a one-based cursor.
type upperWindow struct {
	lines        [][]rune
	width        int
	line, column int
}

func (w *upperWindow) resize(n int) {
	for len(w.lines) < n {
		w.lines = append(w.lines, blankLine(w.width))
	}
	w.lines = w.lines[:n]
	if w.line > n {
		w.line, w.column = 1, 1
	}
}

func blankLine(width int) []rune {
	l := make([]rune, width)
	for i := range l {
		l[i] = ' '
	}
	return l
}

func (w *upperWindow) erase() {
	for i := range w.lines {
		w.lines[i] = blankLine(w.width)
	}
	w.line, w.column = 1, 1
}

func (w *upperWindow) eraseLine() {
	if w.line < 1 || w.line > len(w.lines) || w.column < 1 {
		return
	}
	for i := w.column - 1; i < w.width; i++ {
		w.lines[w.line-1][i] = ' '
	}
}

func (w *upperWindow) write(r rune) {
	if r == '\n' {
		w.line++
		w.column = 1
		return
	}
	if w.line < 1 || w.line > len(w.lines) || w.column < 1 || w.column > w.width {
		return
	}
	w.lines[w.line-1][w.column-1] = r
	w.column++
}

func (w *upperWindow) String() string {
	s := make([]string, len(w.lines))
	for i, l := range w.lines {
		s[i] = strings.TrimRight(string(l), " ")
	}
	return strings.TrimRight(strings.Join(s, "\n"), "\n")
}

// outputStreams is the state of the output streams and the windows.
type outputStreams struct {
	screen bool
	memory []memoryStream

	output     strings.Builder
	transcript strings.Builder

	window int
	upper  upperWindow
	font   uint16

	status Status
}

// reset window and stream state. buffered output is kept
func (o *outputStreams) reset(width int) {
	o.screen = true
	o.memory = o.memory[:0]
	o.window = 0
	o.font = 1
	o.upper = upperWindow{width: width, line: 1, column: 1}
	o.status = Status{}
}

func (mc *CPU) transcripting() bool {
	return mc.mem.ReadWord(header.AddrFlags2)&header.Flags2Transcript == header.Flags2Transcript
}

// printZSCII sends a single ZSCII character to the selected streams.
func (mc *CPU) printZSCII(z uint16) {
	if n := len(mc.out.memory); n > 0 {
		m := &mc.out.memory[n-1]
		m.data = append(m.data, uint8(z))
		return
	}
	if r := mc.codec.ZSCIIToRune(z); r != 0 {
		mc.emit(r)
	}
}

// printRune sends a unicode character to the selected streams.
func (mc *CPU) printRune(r rune) {
	if len(mc.out.memory) > 0 {
		z, ok := mc.codec.RuneToZSCII(r)
		if !ok {
			z = '?'
		}
		mc.printZSCII(z)
		return
	}
	mc.emit(r)
}

func (mc *CPU) printString(s string) {
	for _, r := range s {
		mc.printRune(r)
	}
}

func (mc *CPU) printZSCIIString(zscii []uint16) {
	for _, z := range zscii {
		mc.printZSCII(z)
	}
}

// printText prints the encoded string at addr.
func (mc *CPU) printText(addr uint32) {
	zscii, _ := mc.codec.DecodeZSCII(addr)
	mc.printZSCIIString(zscii)
}

func (mc *CPU) printNumber(v uint16) {
	mc.printString(strconv.Itoa(int(int16(v))))
}

// emit a printable character to the screen and transcript. text for the
// upper window is kept separately
func (mc *CPU) emit(r rune) {
	if mc.out.window == 1 {
		mc.out.upper.write(r)
		return
	}
	if mc.out.screen {
		mc.out.output.WriteRune(r)
	}
	if mc.transcripting() {
		mc.out.transcript.WriteRune(r)
	}
}

// Output returns and clears the text printed to the screen since the last
// call to Output().
func (mc *CPU) Output() string {
	s := mc.out.output.String()
	mc.out.output.Reset()
	return s
}

// ReplaceOutput discards the buffered output and buffers s in its place.
func (mc *CPU) ReplaceOutput(s string) {
	mc.out.output.Reset()
	mc.out.output.WriteString(s)
}

// Transcript returns and clears the text sent to the transcript stream.
func (mc *CPU) Transcript() string {
	s := mc.out.transcript.String()
	mc.out.transcript.Reset()
	return s
}

// Status returns the most recent status line information.
func (mc *CPU) Status() Status {
	s := mc.out.status
	s.Upper = mc.out.upper.String()
	return s
}

func (mc *CPU) updateStatus() {
	s := Status{}

	loc := mc.mem.ReadWord(mc.globalAddr(16))
	if addr, n := mc.objects.ShortName(loc); n > 0 {
		s.Location, _ = mc.codec.Decode(addr)
	}

	a := int(int16(mc.mem.ReadWord(mc.globalAddr(17))))
	b := int(int16(mc.mem.ReadWord(mc.globalAddr(18))))

	if mc.hdr.Version <= 3 && mc.mem.Read(header.AddrFlags1)&0x02 == 0x02 {
		s.Timed = true
		s.Hours, s.Minutes = a, b
	} else {
		s.Score, s.Moves = a, b
	}

	mc.out.status = s
}

// outputStream selects or deselects a stream. table is only used when
// selecting stream 3.
func (mc *CPU) outputStream(n int16, table uint16) error {
	switch n {
	case 0:
	case 1:
		mc.out.screen = true
	case -1:
		mc.out.screen = false
	case 2, -2:
		f2 := mc.mem.ReadWord(header.AddrFlags2)
		if n > 0 {
			f2 |= header.Flags2Transcript
		} else {
			f2 &^= header.Flags2Transcript
		}
		return mc.mem.WriteWord(header.AddrFlags2, f2)
	case 3:
		if len(mc.out.memory) >= maxMemoryStreams {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "output stream 3 nested more than %d deep", maxMemoryStreams)
			return nil
		}
		mc.out.memory = append(mc.out.memory, memoryStream{table: uint32(table)})
	case -3:
		if len(mc.out.memory) == 0 {
			logger.Log(mc.instance, mc.instance.Tag("cpu"), "output stream 3 deselected when not selected")
			return nil
		}
		m := mc.out.memory[len(mc.out.memory)-1]
		mc.out.memory = mc.out.memory[:len(mc.out.memory)-1]
		if err := mc.mem.WriteWord(m.table, uint16(len(m.data))); err != nil {
			return err
		}
		for i, b := range m.data {
			if err := mc.mem.Write(m.table+2+uint32(i), b); err != nil {
				return err
			}
		}
	case 4, -4:
		// command script stream. nothing is recorded
	default:
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "unknown output stream %d", n)
	}
	return nil
}

func (mc *CPU) splitWindow(lines int) {
	mc.out.upper.resize(lines)
	if mc.hdr.Version == 3 {
		mc.out.upper.erase()
	}
	if lines == 0 {
		mc.out.window = 0
	}
}

func (mc *CPU) setWindow(w int) {
	mc.out.window = w
	if w == 1 {
		mc.out.upper.line, mc.out.upper.column = 1, 1
	}
}

func (mc *CPU) eraseWindow(w int16) {
	switch w {
	case -1:
		mc.out.upper.resize(0)
		mc.out.upper.erase()
		mc.out.window = 0
	case -2, 1:
		mc.out.upper.erase()
	}
}

func (mc *CPU) setCursor(line, column int) {
	if mc.out.window != 1 {
		return
	}
	mc.out.upper.line, mc.out.upper.column = line, column
}

// cursor position in the current window
func (mc *CPU) cursor() (int, int) {
	if mc.out.window == 1 {
		return mc.out.upper.line, mc.out.upper.column
	}
	return len(mc.out.upper.lines) + 1, 1
}

func (mc *CPU) setFont(f uint16) uint16 {
	switch f {
	case 0:
		return mc.out.font
	case 1, 4:
		prev := mc.out.font
		mc.out.font = f
		return prev
	}
	return 0
}
