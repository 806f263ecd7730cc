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

// Package zmachine is the base package for the Z-machine emulation. It ties
// together the header, memory and cpu packages into a single Engine, which is
// the type a driver program interacts with.
//
// A driver loads a story, runs it until it asks for input and then supplies
// input, reading the output after every step:
//
//	eng, err := zmachine.Load(data, nil)
//	out, err := eng.Run()
//	for eng.WaitingForInput() {
//		out, err = eng.SendInput(command)
//	}
//
// A snapshot can be taken whenever the engine is waiting for input. Restoring
// a snapshot runs the engine forward until it is waiting for input again, so
// the next command always sees fresh output.
//
// Every engine owns its memory, stacks and random number generator. Several
// engines can run at the same time in different goroutines but an individual
// engine must not be used from more than one goroutine at a time.
package zmachine
