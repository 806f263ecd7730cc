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

// Package cpu is the Z-machine's execution engine. It fetches, decodes and
// executes instructions and owns the program counter, the value stack and the
// call frames.
//
// Execution continues until the story needs something from outside of the
// engine: a line of input, a key press, or the data for a save or restore.
// At that point the engine changes state and control returns to the caller.
// There is no concurrency inside the engine and no callbacks into the caller
// (other than the optional Trace function).
//
// Problems in the story that a player would not normally notice (reading
// beyond the end of memory, using object zero, dividing by zero) are logged
// and execution continues. Problems that make further execution meaningless
// (an unknown opcode, a broken call stack) halt the engine and are returned
// as errors.
package cpu
