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

package storytest

// PatchBranch points the short branch byte at the given address to the next
// instruction to be assembled.
func (s *Story) PatchBranch(at uint32) {
	s.Data[at] = s.Data[at]&0xc0 | uint8(s.PC-at+1)&0x3f
}

// Room returns a version 3 story set in a kitchen. The story prompts with
// ">", answers "inventory" with "You have a lamp." and refuses every other
// command with "You can't go that way.". It never ends.
func Room() *Story {
	s := New(3)
	s.Object(1, "Kitchen", 0, 0, 0)
	s.SetGlobal(G00, 1)
	s.Dictionary([]string{"inventory", "north"}, ",")

	// the first entry follows the separators, the entry length and the
	// entry count
	const inventory = Dictionary + 5

	loop := s.PC
	s.Op0(2).Text(">")
	s.OpVar(4, Large(TextBuffer), Large(ParseBuffer))
	s.Op2(15, Large(ParseBuffer), Small(1)).Store(SP)
	s.Op2(1, Variable(SP), Large(inventory)).Branch(false, 0)
	br := s.PC - 1
	s.Op0(2).Text("You have a lamp.")
	s.Op0(11)
	s.JumpTo(loop)
	s.PatchBranch(br)
	s.Op0(2).Text("You can't go that way.")
	s.Op0(11)
	s.JumpTo(loop)

	return s
}
