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

package storyloader

import (
	"path/filepath"
	"slices"
	"strings"
)

// FileExtensions is the list of file extensions that are recognised as story
// files when searching inside an archive.
var FileExtensions = [...]string{
	".Z1", ".Z2", ".Z3", ".Z4", ".Z5", ".Z6", ".Z7", ".Z8", ".DAT",
}

// ArchiveExtensions is the list of file extensions for the archive formats
// that can contain story files.
var ArchiveExtensions = [...]string{
	".ZIP", ".7Z", ".GZ",
}

// IsStoryFile returns true if the filename has the extension of a story file
// or of an archive that might contain one. Comparisons are case insensitive.
func IsStoryFile(filename string) bool {
	ext := strings.ToUpper(filepath.Ext(filename))
	return slices.Contains(FileExtensions[:], ext) || slices.Contains(ArchiveExtensions[:], ext)
}

// magic numbers at the start of archive files
var (
	magicZip      = []byte{'P', 'K', 0x03, 0x04}
	magicSevenZip = []byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c}
	magicGzip     = []byte{0x1f, 0x8b}
)
