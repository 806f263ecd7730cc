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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure and allow the test to continue.
// The Demand*() functions report a failure and stop the test immediately. The
// latter are useful when a value is used in further tests and so must be
// correct.
//
// Success and failure are interpreted according to the type of the value
// being tested. The nil value is considered a success because of how errors
// usually work (nil to indicate no error).
//
// The CompareWriter type implements the io.Writer interface and is useful
// for capturing output.
package test
