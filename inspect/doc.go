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

// Package inspect provides read-only views of a running story: object names,
// the object tree, the dictionary and guesses at which objects are the rooms,
// the player and the player's inventory.
//
// Nothing in this package changes the state of the engine. The guesses are
// based on the conventions used by the Infocom and Inform compilers and will
// not be correct for every story.
package inspect
