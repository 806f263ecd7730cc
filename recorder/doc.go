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

// Package recorder writes and reads command recordings. A recording is the
// sequence of inputs given to a story, each paired with a hash of the output
// the story produced in response. Playing a recording back repeats the inputs
// and checks that the story responds in the same way, which makes a
// recording usable as a walkthrough and as a regression test.
//
// A recording is a text file. The header names the story and the hash of the
// story file. Each following line is one input:
//
//	<kind>, <output hash>, <quoted input>
//
// The kind is either "line" for a line of text or "key" for a single
// keypress.
package recorder
