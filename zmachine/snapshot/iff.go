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

package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

type chunk struct {
	id   string
	data []byte
}

// writeIFF writes a FORM of the given type containing the chunks. odd length
// chunks are padded
func writeIFF(form string, chunks []chunk) []byte {
	var body bytes.Buffer
	body.WriteString(form)
	for _, c := range chunks {
		body.WriteString(c.id)
		_ = binary.Write(&body, binary.BigEndian, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var b bytes.Buffer
	b.WriteString("FORM")
	_ = binary.Write(&b, binary.BigEndian, uint32(body.Len()))
	b.Write(body.Bytes())
	return b.Bytes()
}

// readIFF checks the FORM type and returns the chunks in order
func readIFF(data []byte, form string) ([]chunk, error) {
	if len(data) < 12 || string(data[:4]) != "FORM" {
		return nil, fmt.Errorf("snapshot: not an IFF file: %w", ErrFormat)
	}
	if string(data[8:12]) != form {
		return nil, fmt.Errorf("snapshot: form type %q: %w", data[8:12], ErrFormat)
	}

	l := int(binary.BigEndian.Uint32(data[4:]))
	if l < 4 {
		return nil, fmt.Errorf("snapshot: FORM length %d too short: %w", l, ErrFormat)
	}
	if l+8 > len(data) {
		return nil, fmt.Errorf("snapshot: FORM length %d beyond end of data: %w", l, ErrFormat)
	}
	data = data[12 : l+8]

	var chunks []chunk
	for len(data) > 0 {
		if len(data) < 8 {
			return nil, fmt.Errorf("snapshot: truncated chunk header: %w", ErrFormat)
		}
		id := string(data[:4])
		n := int(binary.BigEndian.Uint32(data[4:]))
		data = data[8:]
		if n > len(data) {
			return nil, fmt.Errorf("snapshot: chunk %s length %d beyond end of data: %w", id, n, ErrFormat)
		}
		chunks = append(chunks, chunk{id: id, data: data[:n]})
		if n%2 == 1 && n < len(data) {
			n++
		}
		data = data[n:]
	}

	return chunks, nil
}
