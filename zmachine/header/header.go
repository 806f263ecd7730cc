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

// Package header parses the 64 byte header at the start of every story file
// and exposes the constants that depend on the story's version.
package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avwohl/zwalker-sub001/logger"
)

// Sentinel errors returned by Parse().
var (
	ErrTruncated = errors.New("story file too short")
	ErrVersion   = errors.New("unsupported version")
)

// Size of the header in bytes.
const Size = 64

// Byte offsets of header fields.
const (
	AddrVersion         = 0x00
	AddrFlags1          = 0x01
	AddrRelease         = 0x02
	AddrHighBase        = 0x04
	AddrInitialPC       = 0x06
	AddrDictionary      = 0x08
	AddrObjectTable     = 0x0a
	AddrGlobals         = 0x0c
	AddrStaticBase      = 0x0e
	AddrFlags2          = 0x10
	AddrSerial          = 0x12
	AddrAbbreviations   = 0x18
	AddrFileLength      = 0x1a
	AddrChecksum        = 0x1c
	AddrInterpreterNum  = 0x1e
	AddrInterpreterVer  = 0x1f
	AddrScreenHeight    = 0x20
	AddrScreenWidth     = 0x21
	AddrScreenWidthU    = 0x22
	AddrScreenHeightU   = 0x24
	AddrFontWidth       = 0x26
	AddrFontHeight      = 0x27
	AddrRoutinesOffset  = 0x28
	AddrStringsOffset   = 0x2a
	AddrDefaultBG       = 0x2c
	AddrDefaultFG       = 0x2d
	AddrTerminatingChar = 0x2e
	AddrStandard        = 0x32
	AddrAlphabetTable   = 0x34
	AddrExtensionTable  = 0x36
)

// Flags2 bits that are preserved across a restart.
const (
	Flags2Transcript = 0x0001
	Flags2FixedPitch = 0x0002
)

// AddressKind distinguishes the two uses of a packed address.
type AddressKind int

// List of valid AddressKind values.
const (
	Routine AddressKind = iota
	String
)

// Header is the parsed story file header. It is immutable after loading. The
// few fields the interpreter changes at runtime are written directly to
// memory (see Configure()).
type Header struct {
	Version       uint8
	Flags1        uint8
	Release       uint16
	HighBase      uint16
	InitialPC     uint16
	Dictionary    uint16
	ObjectTable   uint16
	Globals       uint16
	StaticBase    uint16
	Flags2        uint16
	Serial        string
	Abbreviations uint16

	// file length in bytes, already multiplied by the version's divisor. a
	// value of zero in the story means the length is unknown, in which case
	// the length of the loaded data is used
	FileLength uint32

	Checksum uint16

	// V6 and V7 only
	RoutinesOffset uint16
	StringsOffset  uint16

	// V5 and later only
	TerminatingChars uint16
	AlphabetTable    uint16
	ExtensionTable   uint16
}

func word(data []byte, addr int) uint16 {
	return uint16(data[addr])<<8 | uint16(data[addr+1])
}

// Parse the header of a story file. Problems that do not prevent the story
// from being run (a bad checksum, a truncated file) are logged.
func Parse(data []byte) (*Header, error) {
	if len(data) < Size {
		return nil, fmt.Errorf("header: %d bytes: %w", len(data), ErrTruncated)
	}

	h := &Header{
		Version:       data[AddrVersion],
		Flags1:        data[AddrFlags1],
		Release:       word(data, AddrRelease),
		HighBase:      word(data, AddrHighBase),
		InitialPC:     word(data, AddrInitialPC),
		Dictionary:    word(data, AddrDictionary),
		ObjectTable:   word(data, AddrObjectTable),
		Globals:       word(data, AddrGlobals),
		StaticBase:    word(data, AddrStaticBase),
		Flags2:        word(data, AddrFlags2),
		Serial:        string(data[AddrSerial : AddrSerial+6]),
		Abbreviations: word(data, AddrAbbreviations),
		Checksum:      word(data, AddrChecksum),
	}

	if h.Version < 1 || h.Version > 8 {
		return nil, fmt.Errorf("header: version %d: %w", h.Version, ErrVersion)
	}

	h.FileLength = uint32(word(data, AddrFileLength)) * h.FileLengthDivisor()
	if h.FileLength == 0 {
		h.FileLength = uint32(len(data))
	} else if h.FileLength > uint32(len(data)) {
		logger.Logf(logger.Allow, "header", "file length is %d but only %d bytes available", h.FileLength, len(data))
		h.FileLength = uint32(len(data))
	}

	if h.Version == 6 || h.Version == 7 {
		h.RoutinesOffset = word(data, AddrRoutinesOffset)
		h.StringsOffset = word(data, AddrStringsOffset)
	}

	if h.Version >= 5 {
		h.TerminatingChars = word(data, AddrTerminatingChar)
		h.AlphabetTable = word(data, AddrAlphabetTable)
		h.ExtensionTable = word(data, AddrExtensionTable)
	}

	if int(h.StaticBase) < Size || int(h.StaticBase) > len(data) {
		return nil, fmt.Errorf("header: static memory base %#04x: %w", h.StaticBase, ErrTruncated)
	}

	return h, nil
}

// Checksum is the sum of all bytes from offset 0x40 up to the file length,
// modulo 65536.
func Checksum(data []byte, length uint32) uint16 {
	if length > uint32(len(data)) {
		length = uint32(len(data))
	}
	var sum uint16
	for _, b := range data[Size:length] {
		sum += uint16(b)
	}
	return sum
}

func (h *Header) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("version %d release %d serial %s\n", h.Version, h.Release, h.Serial))
	s.WriteString(fmt.Sprintf("high memory %#04x static memory %#04x\n", h.HighBase, h.StaticBase))
	s.WriteString(fmt.Sprintf("initial pc %#04x\n", h.InitialPC))
	s.WriteString(fmt.Sprintf("dictionary %#04x objects %#04x globals %#04x abbreviations %#04x\n",
		h.Dictionary, h.ObjectTable, h.Globals, h.Abbreviations))
	s.WriteString(fmt.Sprintf("file length %d checksum %#04x", h.FileLength, h.Checksum))
	if h.Version >= 5 {
		s.WriteString(fmt.Sprintf("\nalphabet table %#04x extension table %#04x", h.AlphabetTable, h.ExtensionTable))
	}
	return s.String()
}

// FileLengthDivisor is the number the file length field is multiplied by.
func (h *Header) FileLengthDivisor() uint32 {
	switch {
	case h.Version <= 3:
		return 2
	case h.Version <= 7:
		return 4
	}
	return 8
}

// PackedAddress converts a packed address to a byte address.
func (h *Header) PackedAddress(packed uint16, kind AddressKind) uint32 {
	p := uint32(packed)
	switch h.Version {
	case 1, 2, 3:
		return 2 * p
	case 4, 5:
		return 4 * p
	case 6, 7:
		if kind == Routine {
			return 4*p + 8*uint32(h.RoutinesOffset)
		}
		return 4*p + 8*uint32(h.StringsOffset)
	}
	return 8 * p
}

// StartIsRoutine is true if the initial PC field is the packed address of a
// main routine rather than the byte address of the first instruction.
func (h *Header) StartIsRoutine() bool {
	return h.Version == 6
}

// MaxLocals is the maximum number of local variables a routine may have.
func (h *Header) MaxLocals() int {
	return 15
}
