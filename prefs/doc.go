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

// Package prefs holds live preference values and the means to save them to
// and load them from disk.
//
// Preference values are of type Bool, Int or String. Reading and writing a
// value is safe from any goroutine. A value can be given a callback which is
// run either side of the value being changed.
//
// Values are associated with a key and a Disk instance with the Add()
// function. A Disk file contains one entry per line of the form:
//
//	key :: value
//
// Entries in the file belonging to keys that the Disk does not know about are
// preserved when the file is saved.
//
// Values can also be overridden from the command line. The command line
// string is pushed with PushCommandLineStack() and is consulted by the next
// call to Disk.Load().
package prefs
