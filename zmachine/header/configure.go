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

package header

import (
	"github.com/avwohl/zwalker-sub001/zmachine/memory"
)

// Capabilities describes the interpreter to the story. The values are
// written into the header at load time and after every restart.
type Capabilities struct {
	InterpreterNumber  uint8
	InterpreterVersion uint8
	ScreenWidth        uint8
	ScreenHeight       uint8

	// whether the story asked for undo support. the bit is left as the story
	// set it if undo is available
	Undo bool
}

// Flags1 bits for V1 to V3.
const (
	flags1StatusUnavailable = 0x10
	flags1SplitScreen       = 0x20
	flags1VariablePitch     = 0x40
)

// Flags1 bits for V4 and later.
const (
	flags1Colours  = 0x01
	flags1Pictures = 0x02
	flags1Bold     = 0x04
	flags1Italic   = 0x08
	flags1Fixed    = 0x10
	flags1Sound    = 0x20
	flags1Timed    = 0x80
)

// Flags2 bits that the interpreter clears when the feature is unavailable.
const (
	flags2Undo     = 0x0010
	flags2Pictures = 0x0008
	flags2Mouse    = 0x0020
	flags2Colours  = 0x0040
	flags2Sound    = 0x0080
	flags2Menus    = 0x0100
)

// Configure writes the interpreter's capabilities into the header. Nothing
// visual is rendered so no colours, pictures, sound or styled text are
// offered. Timed input is available.
func (h *Header) Configure(mem *memory.Memory, c Capabilities) {
	f1 := mem.Read(AddrFlags1)
	if h.Version <= 3 {
		f1 &^= flags1StatusUnavailable | flags1SplitScreen | flags1VariablePitch
	} else {
		f1 &^= flags1Colours | flags1Pictures | flags1Bold | flags1Italic | flags1Fixed | flags1Sound
		f1 |= flags1Timed
	}
	_ = mem.Write(AddrFlags1, f1)

	f2 := mem.ReadWord(AddrFlags2)
	f2 &^= flags2Pictures | flags2Mouse | flags2Colours | flags2Sound | flags2Menus
	if !c.Undo {
		f2 &^= flags2Undo
	}
	_ = mem.WriteWord(AddrFlags2, f2)

	if h.Version >= 4 {
		_ = mem.Write(AddrInterpreterNum, c.InterpreterNumber)
		_ = mem.Write(AddrInterpreterVer, c.InterpreterVersion)
		_ = mem.Write(AddrScreenHeight, c.ScreenHeight)
		_ = mem.Write(AddrScreenWidth, c.ScreenWidth)
	}

	if h.Version >= 5 {
		_ = mem.WriteWord(AddrScreenWidthU, uint16(c.ScreenWidth))
		_ = mem.WriteWord(AddrScreenHeightU, uint16(c.ScreenHeight))
		_ = mem.Write(AddrFontWidth, 1)
		_ = mem.Write(AddrFontHeight, 1)
		_ = mem.Write(AddrDefaultBG, 1)
		_ = mem.Write(AddrDefaultFG, 1)
	}

	// standard revision 1.1
	_ = mem.Write(AddrStandard, 1)
	_ = mem.Write(AddrStandard+1, 1)
}

// PreservedFlags2 returns the flags2 bits that must survive a restart.
func PreservedFlags2(mem *memory.Memory) uint16 {
	return mem.ReadWord(AddrFlags2) & (Flags2Transcript | Flags2FixedPitch)
}

// RestoreFlags2 writes back the bits returned by PreservedFlags2().
func RestoreFlags2(mem *memory.Memory, preserved uint16) {
	f2 := mem.ReadWord(AddrFlags2) &^ (Flags2Transcript | Flags2FixedPitch)
	_ = mem.WriteWord(AddrFlags2, f2|preserved)
}

// ExtensionWord returns the numbered word of the header extension table. Zero
// is returned if the table is missing or too short.
func (h *Header) ExtensionWord(mem *memory.Memory, n int) uint16 {
	if h.ExtensionTable == 0 {
		return 0
	}
	count := mem.ReadWord(uint32(h.ExtensionTable))
	if n < 1 || n > int(count) {
		return 0
	}
	return mem.ReadWord(uint32(h.ExtensionTable) + uint32(2*n))
}

// UnicodeTable returns the address of the unicode translation table or zero
// if the story does not supply one.
func (h *Header) UnicodeTable(mem *memory.Memory) uint32 {
	return uint32(h.ExtensionWord(mem, 3))
}
