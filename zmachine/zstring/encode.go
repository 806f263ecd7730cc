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

package zstring

import (
	"unicode"
)

// the Z-characters that shift to A1 and A2 for the next character only
func (c *Codec) shifts() (uint8, uint8) {
	if c.version <= 2 {
		return 2, 3
	}
	return 4, 5
}

// zchars returns the Z-character sequence for a single ZSCII character.
// Characters not in any alphabet are encoded with the ten-bit escape.
func (c *Codec) zchars(z uint16) []uint8 {
	if z == ' ' {
		return []uint8{0}
	}
	if z == ZSCIINewline && c.version == 1 {
		return []uint8{1}
	}

	toA1, toA2 := c.shifts()

	if z < 256 {
		for i, a := range c.alphabets[0] {
			if uint16(a) == z {
				return []uint8{uint8(i + 6)}
			}
		}
		for i, a := range c.alphabets[1] {
			if uint16(a) == z {
				return []uint8{toA1, uint8(i + 6)}
			}
		}
		for i, a := range c.alphabets[2] {
			// position zero is the escape
			if i == 0 {
				continue
			}
			// position one is always the newline from version 2
			if i == 1 && c.version >= 2 && z != ZSCIINewline {
				continue
			}
			if uint16(a) == z {
				return []uint8{toA2, uint8(i + 6)}
			}
		}
	}

	return []uint8{toA2, zcharEscape, uint8(z>>5) & 0x1f, uint8(z) & 0x1f}
}

// pack Z-characters three to a word. the top bit of the final word is set
func pack(zchars []uint8) []byte {
	b := make([]byte, 0, len(zchars)/3*2)
	for i := 0; i < len(zchars); i += 3 {
		w := uint16(zchars[i])<<10 | uint16(zchars[i+1])<<5 | uint16(zchars[i+2])
		if i+3 >= len(zchars) {
			w |= 0x8000
		}
		b = append(b, uint8(w>>8), uint8(w))
	}
	return b
}

// EncodeZSCII encodes ZSCII text in the form used by the dictionary. The
// result is 4 bytes (6 Z-characters) for versions 1 to 3 and 6 bytes (9
// Z-characters) for later versions. Longer text is truncated and shorter
// text padded.
func (c *Codec) EncodeZSCII(zscii []uint16) []byte {
	n := 9
	if c.version <= 3 {
		n = 6
	}

	zchars := make([]uint8, 0, n+3)
	for _, z := range zscii {
		if len(zchars) >= n {
			break
		}
		zchars = append(zchars, c.zchars(z)...)
	}

	if len(zchars) > n {
		zchars = zchars[:n]
	}
	for len(zchars) < n {
		zchars = append(zchars, 5)
	}

	return pack(zchars)
}

// Encode a word in the form used by the dictionary. The word is converted to
// lower case first. Characters with no ZSCII equivalent become question marks.
func (c *Codec) Encode(word string) []byte {
	zscii := make([]uint16, 0, len(word))
	for _, r := range word {
		z, ok := c.RuneToZSCII(unicode.ToLower(r))
		if !ok {
			z = '?'
		}
		zscii = append(zscii, z)
	}
	return c.EncodeZSCII(zscii)
}

// Pack encodes the whole of the string with no truncation. The result can be
// decoded with Decode().
func (c *Codec) Pack(s string) []byte {
	zchars := make([]uint8, 0, len(s))
	for _, z := range c.ToZSCII(s) {
		zchars = append(zchars, c.zchars(z)...)
	}
	for len(zchars) == 0 || len(zchars)%3 != 0 {
		zchars = append(zchars, 5)
	}
	return pack(zchars)
}
