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

// Package random should be used in preference to the math/rand package when a
// random number is required by the interpreter.
//
// Each interpreter instance owns its own Random. Parallel instances never
// share a generator and the generator state can be marshalled so that it can
// be included in a snapshot of the machine.
//
// If the same random numbers are required every single time then set ZeroSeed
// to true before calling Reseed(). This is useful for testing purposes.
package random
