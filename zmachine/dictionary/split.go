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

package dictionary

// Token is a word found in player input.
type Token struct {
	// the characters of the word in ZSCII
	ZSCII []uint16

	// index of the first character in the input
	Start int
}

// Split input into words. Words are separated by spaces. Word separators are
// words in their own right.
func (d *Dictionary) Split(input []uint16) []Token {
	var tokens []Token

	start := -1
	for i, z := range input {
		switch {
		case z == ' ':
			if start >= 0 {
				tokens = append(tokens, Token{ZSCII: input[start:i], Start: start})
				start = -1
			}
		case d.IsSeparator(z):
			if start >= 0 {
				tokens = append(tokens, Token{ZSCII: input[start:i], Start: start})
				start = -1
			}
			tokens = append(tokens, Token{ZSCII: input[i : i+1], Start: i})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{ZSCII: input[start:], Start: start})
	}

	return tokens
}
