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

// Bytes is a byte slice that implements the Reader interface. Useful for
// decoding text that is not in a story's memory.
type Bytes []byte

// Read implements the Reader interface.
func (b Bytes) Read(addr uint32) uint8 {
	if addr >= uint32(len(b)) {
		return 0
	}
	return b[addr]
}

// ReadWord implements the Reader interface.
func (b Bytes) ReadWord(addr uint32) uint16 {
	return uint16(b.Read(addr))<<8 | uint16(b.Read(addr+1))
}

// Len implements the Reader interface.
func (b Bytes) Len() int {
	return len(b)
}
