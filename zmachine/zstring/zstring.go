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

// Package zstring converts between text and the Z-machine's packed text
// format.
//
// Text is stored as a sequence of 5-bit Z-characters, three to a 16-bit word,
// with the top bit of the final word set. Each Z-character indexes one of
// three alphabets. Shift characters select the alphabet for the following
// Z-character (or all following Z-characters in versions 1 and 2), the
// abbreviation characters substitute a string from the abbreviations table
// and the escape sequence in the third alphabet gives a ten-bit ZSCII
// character directly.
//
// ZSCII is the character set used by the Z-machine. It is ASCII in the range
// 32 to 126 with extra characters from 155 to 251 that are translated to
// unicode with a table. Stories from version 5 can supply their own
// translation table and their own alphabets.
package zstring

import (
	"strings"
	"unicode"

	"github.com/avwohl/zwalker-sub001/logger"
)

// Reader is the interface to the memory containing the packed text.
type Reader interface {
	Read(addr uint32) uint8
	ReadWord(addr uint32) uint16
	Len() int
}

// Codec decodes and encodes text for a single story.
type Codec struct {
	version   uint8
	mem       Reader
	alphabets [3]Alphabet

	// address of the abbreviations table. zero if there is no table
	abbreviations uint32

	// translation of ZSCII characters from 155 onwards
	unicode []rune

	// faults are logged through Log. the dictionary using the codec logs
	// through it too
	Log logger.Source
}

// NewCodec is the preferred method of initialisation for the Codec type. The
// alphabetTable and unicodeTable addresses should be zero if the story does
// not supply them.
func NewCodec(version uint8, mem Reader, abbreviations uint32, alphabetTable uint32, unicodeTable uint32) *Codec {
	c := &Codec{
		version:       version,
		mem:           mem,
		abbreviations: abbreviations,
		Log:           logger.Default,
	}

	c.alphabets[0] = defaultA0
	c.alphabets[1] = defaultA1
	if version == 1 {
		c.alphabets[2] = defaultA2V1
	} else {
		c.alphabets[2] = defaultA2
	}

	if version >= 5 && alphabetTable != 0 {
		for a := range c.alphabets {
			for i := range c.alphabets[a] {
				c.alphabets[a][i] = mem.Read(alphabetTable + uint32(a*26+i))
			}
		}
		// escape and newline positions are fixed whatever the table says
		c.alphabets[2][0] = ' '
		c.alphabets[2][1] = ZSCIINewline
	}

	if version >= 5 && unicodeTable != 0 {
		n := int(mem.Read(unicodeTable))
		c.unicode = make([]rune, n)
		for i := range n {
			c.unicode[i] = rune(mem.ReadWord(unicodeTable + 1 + uint32(2*i)))
		}
	} else {
		c.unicode = []rune(defaultUnicode)
	}

	return c
}

// Version returns the story version the codec was created for.
func (c *Codec) Version() uint8 {
	return c.version
}

// ZChars returns the Z-characters of the packed string at addr and the
// address of the word following the string.
func (c *Codec) ZChars(addr uint32) ([]uint8, uint32) {
	var zchars []uint8
	end := uint32(c.mem.Len())
	for addr+1 < end {
		w := c.mem.ReadWord(addr)
		addr += 2
		zchars = append(zchars, uint8(w>>10)&0x1f, uint8(w>>5)&0x1f, uint8(w)&0x1f)
		if w&0x8000 == 0x8000 {
			return zchars, addr
		}
	}
	logger.Logf(c.Log, c.Log.Tag("zstring"), "unterminated string ends at %#05x", addr)
	return zchars, addr
}

// DecodeZSCII decodes the string at addr into ZSCII characters. Also returns
// the address of the word following the string.
func (c *Codec) DecodeZSCII(addr uint32) ([]uint16, uint32) {
	zchars, next := c.ZChars(addr)
	return c.decode(zchars, nil, true), next
}

// Decode the string at addr. Also returns the address of the word following
// the string.
func (c *Codec) Decode(addr uint32) (string, uint32) {
	zscii, next := c.DecodeZSCII(addr)
	return c.String(zscii), next
}

// DecodeZChars decodes a sequence of Z-characters that has already been
// unpacked.
func (c *Codec) DecodeZChars(zchars []uint8) string {
	return c.String(c.decode(zchars, nil, true))
}

func (c *Codec) decode(zchars []uint8, out []uint16, expand bool) []uint16 {
	lock := 0
	shift := 0

	for i := 0; i < len(zchars); i++ {
		z := zchars[i]
		alph := shift
		shift = lock

		switch {
		case z == 0:
			out = append(out, ' ')

		case z == 1 && c.version == 1:
			out = append(out, ZSCIINewline)

		case z <= 3 && (c.version >= 3 || (c.version == 2 && z == 1)):
			if i+1 >= len(zchars) {
				return out
			}
			i++
			if !expand {
				logger.Log(c.Log, c.Log.Tag("zstring"), "abbreviation inside abbreviation")
				continue
			}
			out = c.abbreviation(32*(uint32(z)-1)+uint32(zchars[i]), out)

		case z <= 3:
			// temporary shift. versions 1 and 2 only
			if z == 2 {
				shift = (lock + 1) % 3
			} else {
				shift = (lock + 2) % 3
			}

		case z <= 5:
			if c.version <= 2 {
				if z == 4 {
					lock = (lock + 1) % 3
				} else {
					lock = (lock + 2) % 3
				}
				shift = lock
			} else {
				shift = int(z) - 3
			}

		case alph == 2 && z == zcharEscape:
			// a partial escape at the end of a string is ignored
			if i+2 >= len(zchars) {
				return out
			}
			out = append(out, uint16(zchars[i+1])<<5|uint16(zchars[i+2]))
			i += 2

		case alph == 2 && z == zcharNewline && c.version >= 2:
			out = append(out, ZSCIINewline)

		default:
			out = append(out, uint16(c.alphabets[alph][z-6]))
		}
	}

	return out
}

func (c *Codec) abbreviation(index uint32, out []uint16) []uint16 {
	if c.abbreviations == 0 {
		logger.Logf(c.Log, c.Log.Tag("zstring"), "abbreviation %d but no abbreviations table", index)
		return out
	}
	addr := 2 * uint32(c.mem.ReadWord(c.abbreviations+2*index))
	zchars, _ := c.ZChars(addr)
	return c.decode(zchars, out, false)
}

// String converts ZSCII characters to a string. Characters that cannot be
// printed are replaced by a question mark. ZSCII zero prints nothing.
func (c *Codec) String(zscii []uint16) string {
	s := strings.Builder{}
	for _, z := range zscii {
		if r := c.ZSCIIToRune(z); r != 0 {
			s.WriteRune(r)
		}
	}
	return s.String()
}

// ZSCIIToRune converts a single ZSCII output character. Returns zero if the
// character prints nothing.
func (c *Codec) ZSCIIToRune(z uint16) rune {
	switch {
	case z == ZSCIINull:
		return 0
	case z == ZSCIINewline:
		return '\n'
	case z == ZSCIITab:
		return '\t'
	case z == ZSCIISentence:
		return ' '
	case z >= 32 && z <= 126:
		return rune(z)
	case z >= zsciiExtraBase && int(z-zsciiExtraBase) < len(c.unicode):
		return c.unicode[z-zsciiExtraBase]
	}
	return '?'
}

// RuneToZSCII converts a single input character to ZSCII. Returns false if
// the character has no ZSCII equivalent.
func (c *Codec) RuneToZSCII(r rune) (uint16, bool) {
	switch {
	case r == '\n' || r == '\r':
		return ZSCIINewline, true
	case r >= 32 && r <= 126:
		return uint16(r), true
	}
	for i, u := range c.unicode {
		if u == r {
			return uint16(i + zsciiExtraBase), true
		}
	}
	return 0, false
}

// CanPrint returns true if the unicode character can be printed.
func (c *Codec) CanPrint(r rune) bool {
	return unicode.IsPrint(r) || r == '\n'
}

// ToZSCII converts a string to ZSCII, dropping characters that have no ZSCII
// equivalent.
func (c *Codec) ToZSCII(s string) []uint16 {
	zscii := make([]uint16, 0, len(s))
	for _, r := range s {
		if z, ok := c.RuneToZSCII(r); ok {
			zscii = append(zscii, z)
		}
	}
	return zscii
}
