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

package disassembly

import (
	"fmt"
	"io"
	"strings"
)

// WriteAttr controls what is printed by the Write*() functions.
type WriteAttr struct {
	ByteCode bool
}

// Write the disassembly to io.Writer.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) error {
	if dsm.Routine != 0 {
		s := fmt.Sprintf("routine %#05x (%d locals)", dsm.Routine, dsm.Locals)
		if len(dsm.Initial) > 0 {
			s = fmt.Sprintf("%s %04x", s, dsm.Initial)
		}
		if _, err := fmt.Fprintln(output, s); err != nil {
			return err
		}
	}

	for _, e := range dsm.Entries {
		if err := dsm.WriteLine(output, attr, e); err != nil {
			return err
		}
	}

	return nil
}

// WriteLine writes a single entry to io.Writer.
func (dsm *Disassembly) WriteLine(output io.Writer, attr WriteAttr, e Entry) error {
	var s strings.Builder
	if attr.ByteCode {
		s.WriteString(fmt.Sprintf("%-24s ", fmt.Sprintf("% 02x", e.Bytecode)))
	}
	s.WriteString(e.String())
	s.WriteString("\n")
	_, err := io.WriteString(output, s.String())
	return err
}
