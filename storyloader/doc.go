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

// Package storyloader is used to specify the story file that is to be loaded
// into the engine.
//
// The Load() function handles loading of data from different sources.
// Currently local files and data over HTTP are supported. The data can be a
// story file or an archive containing a story file. Zip, 7-zip and gzip
// archives are recognised by their content rather than by the filename.
//
// The simplest instance of the Loader type:
//
//	ld := storyloader.Loader{
//		Filename: "stories/zork1.z3",
//	}
//
// It is preferred however that the NewLoader() function is used.
package storyloader
