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

// Package resources prepares paths for the files zwalker keeps between
// sessions: the preferences file and save files.
//
// The JoinPath() function returns the path to the resource named by the
// arguments. It creates directories as required but does not otherwise touch
// or create files.
//
// If a directory called .zwalker exists in the current working directory then
// resources are kept there. This is the "portable" mode and is useful during
// development. Otherwise resources are kept in the user's configuration
// directory. On modern Linux systems the full path would be something like:
//
//	/home/user/.config/zwalker/
package resources
