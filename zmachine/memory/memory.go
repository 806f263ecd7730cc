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

// Package memory is the flat byte image of a loaded story file. The image is
// divided into dynamic memory (everything below the static memory base),
// static memory and high memory. Only dynamic memory can be written to.
//
// Reads and writes outside of the image are not errors in the Go sense. The
// access is logged and a default value is returned. Some published games
// contain such defects and are expected to keep running.
package memory

import (
	"errors"
	"fmt"

	"github.com/avwohl/zwalker-sub001/logger"
)

// Sentinel errors returned by memory operations.
var (
	ErrAddress        = errors.New("address out of range")
	ErrWriteProtected = errors.New("write outside of dynamic memory")
)

// Memory is the story file image.
type Memory struct {
	data []byte

	// copy of the story file as it was loaded. used for restart, verify and
	// for compressing snapshots
	original []byte

	staticBase uint32
	highBase   uint32

	// writes outside of dynamic memory return an error rather than being
	// logged and ignored
	Strict bool

	// faults are logged through Log
	Log logger.Source
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The data is copied.
func NewMemory(data []byte, staticBase uint32, highBase uint32) (*Memory, error) {
	if staticBase < 64 || int(staticBase) > len(data) {
		return nil, fmt.Errorf("memory: static memory base (%#04x): %w", staticBase, ErrAddress)
	}
	mem := &Memory{
		data:       make([]byte, len(data)),
		original:   make([]byte, len(data)),
		staticBase: staticBase,
		highBase:   highBase,
		Log:        logger.Default,
	}
	copy(mem.data, data)
	copy(mem.original, data)
	return mem, nil
}

func (mem *Memory) String() string {
	return fmt.Sprintf("%d bytes (dynamic %#04x static %#04x high %#05x)", len(mem.data), mem.staticBase, mem.staticBase, mem.highBase)
}

// Len returns the size of the image.
func (mem *Memory) Len() int {
	return len(mem.data)
}

// StaticBase returns the address of the first byte of static memory.
func (mem *Memory) StaticBase() uint32 {
	return mem.staticBase
}

// HighBase returns the address of the first byte of high memory.
func (mem *Memory) HighBase() uint32 {
	return mem.highBase
}

// Read a byte. Reading beyond the end of the image returns zero.
func (mem *Memory) Read(addr uint32) uint8 {
	if addr >= uint32(len(mem.data)) {
		logger.Logf(mem.Log, mem.Log.Tag("memory"), "read from %#05x: %v", addr, ErrAddress)
		return 0
	}
	return mem.data[addr]
}

// ReadWord reads a big-endian 16-bit word.
func (mem *Memory) ReadWord(addr uint32) uint16 {
	if addr+1 >= uint32(len(mem.data)) {
		logger.Logf(mem.Log, mem.Log.Tag("memory"), "word read from %#05x: %v", addr, ErrAddress)
		if addr < uint32(len(mem.data)) {
			return uint16(mem.data[addr]) << 8
		}
		return 0
	}
	return uint16(mem.data[addr])<<8 | uint16(mem.data[addr+1])
}

// Write a byte. Only dynamic memory can be written to. In non-strict mode an
// illegal write is logged and ignored.
func (mem *Memory) Write(addr uint32, data uint8) error {
	if addr >= mem.staticBase {
		err := fmt.Errorf("memory: write to %#05x: %w", addr, ErrWriteProtected)
		if mem.Strict {
			return err
		}
		logger.Log(mem.Log, mem.Log.Tag("memory"), err)
		return nil
	}
	mem.data[addr] = data
	return nil
}

// WriteWord writes a big-endian 16-bit word.
func (mem *Memory) WriteWord(addr uint32, data uint16) error {
	if err := mem.Write(addr, uint8(data>>8)); err != nil {
		return err
	}
	return mem.Write(addr+1, uint8(data))
}

// Slice returns a copy of length bytes starting at addr. The copy is
// truncated at the end of the image.
func (mem *Memory) Slice(addr uint32, length int) []byte {
	if addr >= uint32(len(mem.data)) || length <= 0 {
		return []byte{}
	}
	end := int(addr) + length
	if end > len(mem.data) {
		logger.Logf(mem.Log, mem.Log.Tag("memory"), "slice %#05x+%d: %v", addr, length, ErrAddress)
		end = len(mem.data)
	}
	s := make([]byte, end-int(addr))
	copy(s, mem.data[addr:end])
	return s
}

// Dynamic returns a copy of dynamic memory.
func (mem *Memory) Dynamic() []byte {
	d := make([]byte, mem.staticBase)
	copy(d, mem.data)
	return d
}

// OriginalDynamic returns a copy of dynamic memory as it was when the story
// was loaded.
func (mem *Memory) OriginalDynamic() []byte {
	d := make([]byte, mem.staticBase)
	copy(d, mem.original)
	return d
}

// Original returns the story file as it was loaded. The returned slice must
// not be modified.
func (mem *Memory) Original() []byte {
	return mem.original
}

// SetDynamic replaces dynamic memory. The data must be exactly the size of
// dynamic memory.
func (mem *Memory) SetDynamic(data []byte) error {
	if len(data) != int(mem.staticBase) {
		return fmt.Errorf("memory: dynamic memory is %d bytes not %d: %w", mem.staticBase, len(data), ErrAddress)
	}
	copy(mem.data, data)
	return nil
}

// Reset dynamic memory to the state it was in when the story was loaded.
func (mem *Memory) Reset() {
	copy(mem.data[:mem.staticBase], mem.original)
}
