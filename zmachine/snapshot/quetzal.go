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
	"math/bits"
)

const formType = "IFZS"

// private chunks. registered chunk names are all upper case or all lower case
// so mixed case names do not clash with other interpreters
const (
	chunkRandom = "Rand"
	chunkResume = "Rsum"
)

// Encode the state in the Quetzal format. Dynamic memory is compressed
// against original, which should be the dynamic memory of the story as it was
// loaded. If original is nil then dynamic memory is stored uncompressed.
func (s *State) Encode(original []byte) []byte {
	chunks := make([]chunk, 0, 5)

	hd := make([]byte, 13)
	binary.BigEndian.PutUint16(hd[0:], s.Release)
	copy(hd[2:8], s.Serial)
	binary.BigEndian.PutUint16(hd[8:], s.Checksum)
	hd[10] = uint8(s.PC >> 16)
	hd[11] = uint8(s.PC >> 8)
	hd[12] = uint8(s.PC)
	chunks = append(chunks, chunk{id: "IFhd", data: hd})

	if len(original) == len(s.Dynamic) {
		chunks = append(chunks, chunk{id: "CMem", data: compress(s.Dynamic, original)})
	} else {
		chunks = append(chunks, chunk{id: "UMem", data: s.Dynamic})
	}

	chunks = append(chunks, chunk{id: "Stks", data: encodeFrames(s.Frames)})

	if len(s.Random) > 0 {
		chunks = append(chunks, chunk{id: chunkRandom, data: s.Random})
	}
	chunks = append(chunks, chunk{id: chunkResume, data: []byte{uint8(s.Resume)}})

	return writeIFF(formType, chunks)
}

// Decode a Quetzal file. The original argument is the same as for Encode().
func Decode(data []byte, original []byte) (*State, error) {
	chunks, err := readIFF(data, formType)
	if err != nil {
		return nil, err
	}

	// a standard Quetzal file comes from a save instruction
	s := &State{Resume: ResumeSave}

	var hd, stks bool
	for _, c := range chunks {
		switch c.id {
		case "IFhd":
			if len(c.data) < 13 {
				return nil, fmt.Errorf("snapshot: IFhd is %d bytes: %w", len(c.data), ErrFormat)
			}
			s.Release = binary.BigEndian.Uint16(c.data[0:])
			s.Serial = string(c.data[2:8])
			s.Checksum = binary.BigEndian.Uint16(c.data[8:])
			s.PC = uint32(c.data[10])<<16 | uint32(c.data[11])<<8 | uint32(c.data[12])
			hd = true

		case "CMem":
			if original == nil {
				return nil, fmt.Errorf("snapshot: compressed memory but no original: %w", ErrFormat)
			}
			s.Dynamic, err = decompress(c.data, original)
			if err != nil {
				return nil, err
			}

		case "UMem":
			s.Dynamic = append([]byte(nil), c.data...)

		case "Stks":
			s.Frames, err = decodeFrames(c.data)
			if err != nil {
				return nil, err
			}
			stks = true

		case chunkRandom:
			s.Random = append([]byte(nil), c.data...)

		case chunkResume:
			if len(c.data) > 0 {
				s.Resume = Resume(c.data[0])
			}
		}
	}

	if !hd || !stks || s.Dynamic == nil {
		return nil, fmt.Errorf("snapshot: missing IFhd, memory or Stks chunk: %w", ErrFormat)
	}
	if original != nil && len(s.Dynamic) != len(original) {
		return nil, fmt.Errorf("snapshot: %d bytes of memory, expected %d: %w", len(s.Dynamic), len(original), ErrFormat)
	}

	return s, nil
}

// compress memory by XORing with the original and run length encoding the
// zero bytes. a zero byte is followed by the number of additional zero bytes.
// trailing zeros are omitted
func compress(dynamic []byte, original []byte) []byte {
	var b bytes.Buffer
	zeros := 0

	flush := func() {
		for zeros > 0 {
			n := min(zeros, 256)
			b.WriteByte(0)
			b.WriteByte(uint8(n - 1))
			zeros -= n
		}
	}

	for i := range dynamic {
		x := dynamic[i] ^ original[i]
		if x == 0 {
			zeros++
			continue
		}
		flush()
		b.WriteByte(x)
	}

	return b.Bytes()
}

func decompress(data []byte, original []byte) ([]byte, error) {
	d := make([]byte, len(original))
	copy(d, original)

	i := 0
	for j := 0; j < len(data); j++ {
		if data[j] == 0 {
			if j+1 >= len(data) {
				return nil, fmt.Errorf("snapshot: CMem ends in a zero byte: %w", ErrFormat)
			}
			j++
			i += int(data[j]) + 1
			continue
		}
		if i >= len(d) {
			return nil, fmt.Errorf("snapshot: CMem is longer than dynamic memory: %w", ErrFormat)
		}
		d[i] ^= data[j]
		i++
	}

	if i > len(d) {
		return nil, fmt.Errorf("snapshot: CMem is longer than dynamic memory: %w", ErrFormat)
	}

	return d, nil
}

const frameDiscard = 0x10

func encodeFrames(frames []Frame) []byte {
	var b bytes.Buffer
	for _, f := range frames {
		b.WriteByte(uint8(f.ReturnPC >> 16))
		b.WriteByte(uint8(f.ReturnPC >> 8))
		b.WriteByte(uint8(f.ReturnPC))

		flags := uint8(len(f.Locals)) & 0x0f
		store := f.Store
		if f.Discard {
			flags |= frameDiscard
			store = 0
		}
		b.WriteByte(flags)
		b.WriteByte(store)
		b.WriteByte(uint8(1<<min(f.ArgCount, 7)) - 1)

		_ = binary.Write(&b, binary.BigEndian, uint16(len(f.Stack)))
		_ = binary.Write(&b, binary.BigEndian, f.Locals)
		_ = binary.Write(&b, binary.BigEndian, f.Stack)
	}
	return b.Bytes()
}

func decodeFrames(data []byte) ([]Frame, error) {
	var frames []Frame

	for len(data) > 0 {
		if len(data) < 8 {
			return nil, fmt.Errorf("snapshot: truncated frame: %w", ErrFormat)
		}

		f := Frame{
			ReturnPC: uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]),
			Discard:  data[3]&frameDiscard == frameDiscard,
			Store:    data[4],
			ArgCount: bits.TrailingZeros8(^data[5]),
		}
		nlocals := int(data[3] & 0x0f)
		nstack := int(binary.BigEndian.Uint16(data[6:]))
		data = data[8:]

		if len(data) < (nlocals+nstack)*2 {
			return nil, fmt.Errorf("snapshot: truncated frame: %w", ErrFormat)
		}

		f.Locals = make([]uint16, nlocals)
		for i := range f.Locals {
			f.Locals[i] = binary.BigEndian.Uint16(data[i*2:])
		}
		data = data[nlocals*2:]

		f.Stack = make([]uint16, nstack)
		for i := range f.Stack {
			f.Stack[i] = binary.BigEndian.Uint16(data[i*2:])
		}
		data = data[nstack*2:]

		frames = append(frames, f)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("snapshot: no frames: %w", ErrFormat)
	}

	return frames, nil
}
