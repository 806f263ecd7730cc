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

// Alphabet is a table of the ZSCII characters for Z-characters 6 to 31.
type Alphabet [26]uint8

func alphabetFromString(s string) Alphabet {
	var a Alphabet
	copy(a[:], s)
	return a
}

// the default alphabets. for A2 the first entry is never printed because
// Z-character 6 in A2 is the escape to a ten-bit ZSCII character. in version
// 2 and later the second entry is the newline
var (
	defaultA0   = alphabetFromString("abcdefghijklmnopqrstuvwxyz")
	defaultA1   = alphabetFromString("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	defaultA2V1 = alphabetFromString(" 0123456789.,!?_#'\"/\\<-:()")
	defaultA2   = alphabetFromString(" \r0123456789.,!?_#'\"/\\-:()")
)

// escapes in A2 position 0 and newline in A2 position 1
const (
	zcharEscape  = 6
	zcharNewline = 7
)

// ZSCII codes with special meaning for output.
const (
	ZSCIINull      = 0
	ZSCIITab       = 9
	ZSCIISentence  = 11
	ZSCIINewline   = 13
	ZSCIIDelete    = 8
	ZSCIIEscape    = 27
	zsciiExtraBase = 155
)

// ZSCII codes for input keys.
const (
	ZSCIICursorUp    = 129
	ZSCIICursorDown  = 130
	ZSCIICursorLeft  = 131
	ZSCIICursorRight = 132
)

// the default unicode translations for ZSCII 155 to 223
const defaultUnicode = "äöüÄÖÜß»«ëïÿËÏáéíóúýÁÉÍÓÚÝàèìòùÀÈÌÒÙâêîôûÂÊÎÔÛåÅøØãñõÃÑÕæÆçÇþðÞÐ£œŒ¡¿"
