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
	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/dictionary"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// scan_table x table len [form]
func (mc *CPU) scanTable() error {
	x := mc.arg(0)
	table := uint32(mc.arg(1))
	n := int(mc.arg(2))

	form := uint16(0x82)
	if mc.args() > 3 {
		form = mc.arg(3)
	}
	words := form&0x80 == 0x80
	size := uint32(form & 0x7f)

	if size == 0 {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "scan_table with zero entry size at %#05x", mc.LastResult.Address)
		if err := mc.store(0); err != nil {
			return err
		}
		return mc.branch(false)
	}

	for i := range uint32(n) {
		addr := table + i*size
		var v uint16
		if words {
			v = mc.mem.ReadWord(addr)
		} else {
			v = uint16(mc.mem.Read(addr))
		}
		if v == x {
			if err := mc.store(uint16(addr)); err != nil {
				return err
			}
			return mc.branch(true)
		}
	}

	if err := mc.store(0); err != nil {
		return err
	}
	return mc.branch(false)
}

// copyTable copies size bytes from first to second. A second address of zero
// zeroes the first table instead. A negative size forces a forward copy even
// if the tables overlap.
func (mc *CPU) copyTable(first, second uint32, size int16) error {
	n := int(size)
	if n < 0 {
		n = -n
	}

	if second == 0 {
		for i := range uint32(n) {
			if err := mc.mem.Write(first+i, 0); err != nil {
				return err
			}
		}
		return nil
	}

	if size < 0 {
		for i := range uint32(n) {
			if err := mc.mem.Write(second+i, mc.mem.Read(first+i)); err != nil {
				return err
			}
		}
		return nil
	}

	for i, b := range mc.mem.Slice(first, n) {
		if err := mc.mem.Write(second+uint32(i), b); err != nil {
			return err
		}
	}
	return nil
}

// print_table zscii-text width [height] [skip]
func (mc *CPU) printTable() {
	addr := uint32(mc.arg(0))
	width := int(mc.arg(1))
	height := 1
	if mc.args() > 2 {
		height = int(mc.arg(2))
	}
	skip := uint32(mc.arg(3))

	line, column := mc.cursor()

	for row := range height {
		if row > 0 {
			if mc.out.window == 1 {
				mc.setCursor(line+row, column)
			} else {
				mc.printZSCII(zstring.ZSCIINewline)
			}
		}
		for range width {
			mc.printZSCII(uint16(mc.mem.Read(addr)))
			addr++
		}
		addr += skip
	}
}

// print_form prints a table of lines. Each line is a word giving the number
// of characters followed by the characters. The table ends with a zero length.
func (mc *CPU) printForm(addr uint32) {
	first := true
	for {
		n := mc.mem.ReadWord(addr)
		if n == 0 {
			return
		}
		if !first {
			mc.printZSCII(zstring.ZSCIINewline)
		}
		first = false
		addr += 2
		for range n {
			mc.printZSCII(uint16(mc.mem.Read(addr)))
			addr++
		}
	}
}

// encodeText encodes length ZSCII characters starting at text+from into the
// dictionary form.
func (mc *CPU) encodeText(text uint32, length int, from uint32, coded uint32) error {
	zscii := make([]uint16, 0, length)
	for i := range uint32(length) {
		zscii = append(zscii, uint16(mc.mem.Read(text+from+i)))
	}
	for i, b := range mc.codec.EncodeZSCII(zscii) {
		if err := mc.mem.Write(coded+uint32(i), b); err != nil {
			return err
		}
	}
	return nil
}

// tokenise text parse [dictionary] [flag]
func (mc *CPU) tokeniseOp() error {
	d := mc.dict
	if addr := mc.arg(2); addr != 0 {
		d = dictionary.NewDictionary(mc.mem, mc.codec, uint32(addr))
	}
	return mc.tokenise(uint32(mc.arg(0)), uint32(mc.arg(1)), d, mc.arg(3) != 0)
}

// textBuffer returns the input held in the text buffer and the offset of the
// first character from the start of the buffer.
func (mc *CPU) textBuffer(text uint32) ([]uint16, uint32) {
	var input []uint16

	if mc.hdr.Version <= 4 {
		size := uint32(mc.mem.Read(text))
		for i := uint32(1); i <= size; i++ {
			z := mc.mem.Read(text + i)
			if z == 0 {
				break
			}
			input = append(input, uint16(z))
		}
		return input, 1
	}

	n := uint32(mc.mem.Read(text + 1))
	for i := range n {
		input = append(input, uint16(mc.mem.Read(text+2+i)))
	}
	return input, 2
}

// tokenise the text buffer into the parse buffer using the dictionary. When
// skip is true, entries for words not in the dictionary are left untouched.
func (mc *CPU) tokenise(text, parse uint32, d *dictionary.Dictionary, skip bool) error {
	input, offset := mc.textBuffer(text)
	tokens := d.Split(input)

	limit := int(mc.mem.Read(parse))
	if len(tokens) > limit {
		logger.Logf(mc.instance, mc.instance.Tag("cpu"), "%d words in input, parse buffer holds %d", len(tokens), limit)
		tokens = tokens[:limit]
	}

	for i, t := range tokens {
		entry := parse + 2 + 4*uint32(i)
		addr := d.LookupZSCII(t.ZSCII)
		if skip && addr == 0 {
			continue
		}
		if err := mc.mem.WriteWord(entry, uint16(addr)); err != nil {
			return err
		}
		if err := mc.mem.Write(entry+2, uint8(len(t.ZSCII))); err != nil {
			return err
		}
		if err := mc.mem.Write(entry+3, uint8(uint32(t.Start)+offset)); err != nil {
			return err
		}
	}

	return mc.mem.Write(parse+1, uint8(len(tokens)))
}
