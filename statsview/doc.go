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

// Package statsview serves runtime statistics for the interpreter over HTTP.
// It is only built when the statsview build tag is present. Without the tag
// Available() returns false and Launch() does nothing.
//
// The statistics are useful when profiling long walkthrough runs or a busy
// session server. Once launched, graphs are viewable at:
//
//	localhost:12602/debug/statsview
//
// And the standard Go pprof statistics at:
//
//	localhost:12602/debug/pprof/
package statsview
