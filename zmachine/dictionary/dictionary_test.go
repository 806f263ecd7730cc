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

package dictionary_test

import (
	"sort"
	"testing"

	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine/dictionary"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// build a dictionary at address zero. each entry has three data bytes
func build(version uint8, words []string, sorted bool) (*dictionary.Dictionary, zstring.Bytes) {
	codec := zstring.NewCodec(version, zstring.Bytes{}, 0, 0, 0)

	enc := make([][]byte, len(words))
	for i, w := range words {
		enc[i] = codec.Encode(w)
	}
	if sorted {
		sort.Slice(enc, func(i, j int) bool {
			return string(enc[i]) < string(enc[j])
		})
	}

	entryLen := len(enc[0]) + 3
	count := int16(len(enc))
	if !sorted {
		count = -count
	}

	data := zstring.Bytes{3, '.', ',', '"', uint8(entryLen), uint8(uint16(count) >> 8), uint8(count)}
	for i, e := range enc {
		data = append(data, e...)
		data = append(data, uint8(i), 0, 0)
	}

	return dictionary.NewDictionary(data, zstring.NewCodec(version, data, 0, 0, 0), 0), data
}

var words = []string{"north", "take", "lamp", "a", "inventory", "ä", "@@", "brass"}

func TestLookup(t *testing.T) {
	for _, v := range []uint8{3, 5} {
		for _, sorted := range []bool{true, false} {
			d, _ := build(v, words, sorted)
			test.ExpectEquality(t, d.Count(), len(words), v, sorted)

			for _, w := range words {
				test.ExpectInequality(t, d.LookupWord(w), 0, w, v, sorted)
			}

			test.ExpectEquality(t, d.LookupWord("xyzzy"), 0, v, sorted)
			test.ExpectEquality(t, d.LookupWord("b"), 0, v, sorted)
		}
	}
}

func TestTruncation(t *testing.T) {
	d, _ := build(3, words, true)

	// only the first six Z-characters count in version 3
	test.ExpectEquality(t, d.LookupWord("inventory"), d.LookupWord("invent"))
	test.ExpectEquality(t, d.LookupWord("INVENTORY"), d.LookupWord("inventory"))

	d, _ = build(5, words, true)
	test.ExpectEquality(t, d.LookupWord("inventory"), d.LookupWord("inventor"))
	test.ExpectEquality(t, d.LookupWord("invent"), 0)
}

func TestUnencodable(t *testing.T) {
	d, _ := build(3, words, true)

	// characters outside of the alphabets use the escape encoding when the
	// dictionary is built and when input is looked up
	a := d.LookupWord("ä")
	test.ExpectInequality(t, a, 0)
	test.ExpectEquality(t, d.LookupWord("Ä"), a)
	test.ExpectInequality(t, d.LookupWord("@@"), 0)
	test.ExpectEquality(t, d.LookupZSCII([]uint16{'@', '@'}), d.LookupWord("@@"))
}

func TestEntries(t *testing.T) {
	d, _ := build(3, []string{"lamp", "brass"}, false)
	e := d.Entries()
	test.ExpectEquality(t, len(e), 2)
	test.ExpectEquality(t, e[0].Word, "lamp")
	test.ExpectEquality(t, e[1].Word, "brass")
	test.ExpectSliceEquality(t, e[1].Data, []byte{1, 0, 0})
	test.ExpectEquality(t, e[0].Addr, d.LookupWord("lamp"))
}

func TestSplit(t *testing.T) {
	d, _ := build(3, words, true)

	input := []uint16{}
	for _, r := range `  take lamp,then  "north".` {
		input = append(input, uint16(r))
	}

	tokens := d.Split(input)

	var got []string
	var starts []int
	for _, tk := range tokens {
		s := ""
		for _, z := range tk.ZSCII {
			s += string(rune(z))
		}
		got = append(got, s)
		starts = append(starts, tk.Start)
	}

	test.ExpectSliceEquality(t, got, []string{"take", "lamp", ",", "then", `"`, "north", `"`, "."})
	test.ExpectSliceEquality(t, starts, []int{2, 7, 11, 12, 18, 19, 24, 25})
}
