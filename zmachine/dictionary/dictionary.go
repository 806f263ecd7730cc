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

// Package dictionary reads a story's dictionary and splits player input into
// words.
//
// The dictionary starts with a list of word separator characters, followed by
// the length of each entry, the number of entries and the entries themselves.
// Each entry starts with the word in dictionary encoding. A negative number of
// entries (only found in dictionaries supplied to the tokenise opcode) means
// the entries are not sorted.
package dictionary

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// Dictionary is a view of a dictionary in story memory.
type Dictionary struct {
	mem   zstring.Reader
	codec *zstring.Codec

	addr       uint32
	separators []uint16

	entryLen int
	count    int
	sorted   bool
	entries  uint32

	// length of the encoded word at the start of each entry
	wordLen int
}

// NewDictionary is the preferred method of initialisation for the Dictionary
// type.
func NewDictionary(mem zstring.Reader, codec *zstring.Codec, addr uint32) *Dictionary {
	d := &Dictionary{
		mem:     mem,
		codec:   codec,
		addr:    addr,
		wordLen: 6,
	}
	if codec.Version() <= 3 {
		d.wordLen = 4
	}

	n := uint32(mem.Read(addr))
	for i := range n {
		d.separators = append(d.separators, uint16(mem.Read(addr+1+i)))
	}

	a := addr + 1 + n
	d.entryLen = int(mem.Read(a))
	d.count = int(int16(mem.ReadWord(a + 1)))
	d.entries = a + 3

	d.sorted = d.count >= 0
	if d.count < 0 {
		d.count = -d.count
	}

	if d.entryLen < d.wordLen {
		logger.Logf(codec.Log, codec.Log.Tag("dictionary"), "entry length of %d is shorter than the encoded word", d.entryLen)
		d.count = 0
	}

	return d
}

func (d *Dictionary) String() string {
	return fmt.Sprintf("%d entries at %#04x", d.count, d.entries)
}

// Addr returns the address of the dictionary.
func (d *Dictionary) Addr() uint32 {
	return d.addr
}

// Count returns the number of entries.
func (d *Dictionary) Count() int {
	return d.count
}

// Separators returns the word separators in ZSCII.
func (d *Dictionary) Separators() []uint16 {
	return d.separators
}

// IsSeparator returns true if the ZSCII character is a word separator.
func (d *Dictionary) IsSeparator(z uint16) bool {
	for _, s := range d.separators {
		if s == z {
			return true
		}
	}
	return false
}

func (d *Dictionary) entry(i int) uint32 {
	return d.entries + uint32(i*d.entryLen)
}

func (d *Dictionary) word(i int) []byte {
	w := make([]byte, d.wordLen)
	a := d.entry(i)
	for j := range w {
		w[j] = d.mem.Read(a + uint32(j))
	}
	return w
}

// Lookup returns the address of the entry for a word that has already been
// encoded. Returns zero if the word is not in the dictionary.
func (d *Dictionary) Lookup(encoded []byte) uint32 {
	if len(encoded) != d.wordLen {
		return 0
	}

	if !d.sorted {
		for i := range d.count {
			if bytes.Equal(d.word(i), encoded) {
				return d.entry(i)
			}
		}
		return 0
	}

	i := sort.Search(d.count, func(i int) bool {
		return bytes.Compare(d.word(i), encoded) >= 0
	})
	if i < d.count && bytes.Equal(d.word(i), encoded) {
		return d.entry(i)
	}
	return 0
}

// LookupZSCII encodes the ZSCII text and looks it up.
func (d *Dictionary) LookupZSCII(zscii []uint16) uint32 {
	return d.Lookup(d.codec.EncodeZSCII(zscii))
}

// LookupWord encodes the text and looks it up.
func (d *Dictionary) LookupWord(word string) uint32 {
	return d.Lookup(d.codec.Encode(word))
}

// Entry is a single dictionary entry.
type Entry struct {
	Addr uint32
	Word string

	// the bytes following the encoded word. the meaning is decided by the
	// story's compiler
	Data []byte
}

func (e Entry) String() string {
	return fmt.Sprintf("%#05x %s", e.Addr, e.Word)
}

// Entries returns every entry in the order they are stored.
func (d *Dictionary) Entries() []Entry {
	entries := make([]Entry, 0, d.count)
	for i := range d.count {
		a := d.entry(i)
		w := d.word(i)

		zchars := make([]uint8, 0, len(w)/2*3)
		for j := 0; j < len(w); j += 2 {
			v := uint16(w[j])<<8 | uint16(w[j+1])
			zchars = append(zchars, uint8(v>>10)&0x1f, uint8(v>>5)&0x1f, uint8(v)&0x1f)
		}

		data := make([]byte, d.entryLen-d.wordLen)
		for j := range data {
			data[j] = d.mem.Read(a + uint32(d.wordLen+j))
		}

		entries = append(entries, Entry{
			Addr: a,
			Word: d.codec.DecodeZChars(zchars),
			Data: data,
		})
	}
	return entries
}
