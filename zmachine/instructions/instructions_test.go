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

package instructions_test

import (
	"testing"

	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
)

func TestVersionVariants(t *testing.T) {
	type expect struct {
		class    instructions.Class
		number   uint8
		mnemonic string
		store    bool
		branch   bool
	}

	cases := map[uint8][]expect{
		3: {
			{instructions.OP0, 5, "save", false, true},
			{instructions.OP0, 9, "pop", false, false},
			{instructions.OP1, 15, "not", true, false},
			{instructions.VAR, 0, "call", true, false},
			{instructions.VAR, 4, "sread", false, false},
			{instructions.OP1, 1, "get_sibling", true, true},
		},
		4: {
			{instructions.OP0, 5, "save", true, false},
			{instructions.VAR, 0, "call_vs", true, false},
			{instructions.VAR, 4, "sread", false, false},
			{instructions.VAR, 23, "scan_table", true, true},
		},
		5: {
			{instructions.OP0, 9, "catch", true, false},
			{instructions.OP1, 15, "call_1n", false, false},
			{instructions.VAR, 4, "aread", true, false},
			{instructions.VAR, 9, "pull", false, false},
			{instructions.EXT, 0, "save", true, false},
			{instructions.VAR, 31, "check_arg_count", false, true},
		},
		6: {
			{instructions.VAR, 9, "pull", true, false},
			{instructions.EXT, 29, "buffer_screen", true, false},
		},
		8: {
			{instructions.VAR, 9, "pull", false, false},
			{instructions.OP0, 15, "piracy", false, true},
		},
	}

	for v, exp := range cases {
		tab := instructions.NewTable(v)
		test.ExpectEquality(t, tab.Version(), v)
		for _, e := range exp {
			d, ok := tab.Lookup(e.class, e.number)
			if !test.ExpectSuccess(t, ok, v, e.mnemonic) {
				continue
			}
			test.ExpectEquality(t, d.Mnemonic, e.mnemonic, v)
			test.ExpectEquality(t, d.Store, e.store, v, e.mnemonic)
			test.ExpectEquality(t, d.Branch, e.branch, v, e.mnemonic)
		}
	}
}

func TestMissing(t *testing.T) {
	tab := instructions.NewTable(3)

	// no extended instructions before version 5
	for _, n := range []uint8{0, 4, 9} {
		_, ok := tab.Lookup(instructions.EXT, n)
		test.ExpectFailure(t, ok, n)
	}

	// no save in 0OP form from version 5
	_, ok := instructions.NewTable(5).Lookup(instructions.OP0, 5)
	test.ExpectFailure(t, ok)

	_, ok = tab.Lookup(instructions.OP2, 25)
	test.ExpectFailure(t, ok)
	_, ok = tab.Lookup(instructions.OP2, 0)
	test.ExpectFailure(t, ok)
	_, ok = tab.Lookup(instructions.EXT, 200)
	test.ExpectFailure(t, ok)

	// version 6 only extended instructions
	_, ok = instructions.NewTable(5).Lookup(instructions.EXT, 16)
	test.ExpectFailure(t, ok)
	_, ok = instructions.NewTable(6).Lookup(instructions.EXT, 16)
	test.ExpectSuccess(t, ok)
}

func TestDoubleTypes(t *testing.T) {
	tab := instructions.NewTable(5)
	for n := range uint8(32) {
		d, ok := tab.Lookup(instructions.VAR, n)
		if !ok {
			continue
		}
		test.ExpectEquality(t, d.DoubleTypes, n == 12 || n == 26, d.Mnemonic)
	}
}

func TestTableSize(t *testing.T) {
	// the number of instructions grows with each version until version 6
	// which has the extra screen model instructions
	test.ExpectSuccess(t, instructions.NewTable(3).Count() > instructions.NewTable(1).Count())
	test.ExpectSuccess(t, instructions.NewTable(5).Count() > instructions.NewTable(4).Count())
	test.ExpectSuccess(t, instructions.NewTable(6).Count() > instructions.NewTable(5).Count())
	test.ExpectEquality(t, instructions.NewTable(8).Count(), instructions.NewTable(5).Count())
}

func TestDefinitionString(t *testing.T) {
	d, _ := instructions.NewTable(3).Lookup(instructions.OP1, 1)
	test.ExpectEquality(t, d.String(), "1OP:1 get_sibling [store] [branch]")
	test.ExpectEquality(t, instructions.Definition{}.String(), "undecoded instruction")
}
