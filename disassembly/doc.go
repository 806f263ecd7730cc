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

// Package disassembly decodes story code without executing it.
//
// Code is disassembled linearly from a starting address. Disassembly stops at
// the first instruction that cannot fall through (a return, jump, quit or
// restart) once every forward branch seen so far has been passed. This finds
// the end of a typical routine but can be fooled by code that branches
// backwards over data.
//
// For quick disassemblies of the code that runs when a story starts the
// FromStart() function can be used.
package disassembly
