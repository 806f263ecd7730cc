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

// Package playmode runs a story interactively. Lines of input are read from
// an io.Reader and output is written to an io.Writer. Single key presses for
// read_char can come from a terminal in cbreak mode.
//
// Lines beginning with a slash are commands to the interpreter rather than
// input for the story:
//
//	/undo	return to the state before the previous command
//	/quit	stop playing
//
// Inputs can be recorded to a file and played back later with the recorder
// package. Save and restore instructions use a single save file.
package playmode
