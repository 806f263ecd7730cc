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

package easyterm_test

import (
	"testing"

	"github.com/avwohl/zwalker-sub001/easyterm"
	"github.com/avwohl/zwalker-sub001/test"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		key  easyterm.Key
		used int
	}{
		{"a", easyterm.Key{Code: easyterm.KeyRune, Rune: 'a'}, 1},
		{"ab", easyterm.Key{Code: easyterm.KeyRune, Rune: 'a'}, 1},
		{"é", easyterm.Key{Code: easyterm.KeyRune, Rune: 'é'}, 2},
		{"\r", easyterm.Key{Code: easyterm.KeyReturn}, 1},
		{"\n", easyterm.Key{Code: easyterm.KeyReturn}, 1},
		{"\x7f", easyterm.Key{Code: easyterm.KeyBackspace}, 1},
		{"\x08", easyterm.Key{Code: easyterm.KeyBackspace}, 1},
		{"\x1b", easyterm.Key{Code: easyterm.KeyEscape}, 1},
		{"\x1b[A", easyterm.Key{Code: easyterm.KeyUp}, 3},
		{"\x1b[B", easyterm.Key{Code: easyterm.KeyDown}, 3},
		{"\x1bOC", easyterm.Key{Code: easyterm.KeyRight}, 3},
		{"\x1b[D", easyterm.Key{Code: easyterm.KeyLeft}, 3},
		{"\x1b[3~", easyterm.Key{Code: easyterm.KeyUnknown}, 4},
		{"\x03", easyterm.Key{Code: easyterm.KeyInterrupt}, 1},
		{"\xff", easyterm.Key{Code: easyterm.KeyUnknown}, 1},
		{"", easyterm.Key{Code: easyterm.KeyUnknown}, 0},
	}

	for _, tt := range tests {
		k, n := easyterm.Decode([]byte(tt.in))
		test.ExpectEquality(t, k, tt.key, tt.in)
		test.ExpectEquality(t, n, tt.used, tt.in)
	}
}

func TestKeyString(t *testing.T) {
	test.ExpectEquality(t, easyterm.Key{Code: easyterm.KeyRune, Rune: 'z'}.String(), "z")
	test.ExpectEquality(t, easyterm.Key{Code: easyterm.KeyUp}.String(), "up")
	test.ExpectEquality(t, easyterm.Key{Code: easyterm.KeyUnknown}.String(), "unknown")
}
