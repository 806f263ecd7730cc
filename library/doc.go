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

// Package library maintains a searchable catalogue of the story files in a
// directory tree. The catalogue is a bleve index held in memory. A directory
// watcher keeps the index up to date as story files are added and removed.
//
// Entries are identified by their path relative to the root of the library.
// Searches use the bleve query string syntax. For example:
//
//	zork
//	+name:zork +version:3
package library
