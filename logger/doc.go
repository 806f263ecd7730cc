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

// Package logger is the central log for the interpreter. Conditions that the
// interpreter recovers from (a checksum mismatch, an out of range memory read,
// a stack underflow) are recorded here rather than being printed.
//
// Entries are tagged with the name of the component making the entry. A
// repeated entry is collapsed into a single line with a repeat count.
package logger
