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

// Package easyterm is a wrapper for "github.com/pkg/term". It switches the
// terminal between canonical and cbreak mode and decodes the byte sequences
// the terminal sends for single key presses.
package easyterm

import (
	"fmt"
	"sync"

	"github.com/pkg/term"
)

// Terminal is the main container for posix terminals.
type Terminal struct {
	t *term.Term

	// Restore() and Close() must not be interleaved with Read()
	mu sync.Mutex

	cbreak bool
}

// Open the terminal device. Usually "/dev/tty".
func Open(device string) (*Terminal, error) {
	t, err := term.Open(device)
	if err != nil {
		return nil, fmt.Errorf("easyterm: %w", err)
	}
	return &Terminal{t: t}, nil
}

// Close the terminal, returning it to canonical mode first.
func (et *Terminal) Close() error {
	et.mu.Lock()
	defer et.mu.Unlock()
	if et.cbreak {
		_ = et.t.Restore()
		et.cbreak = false
	}
	return et.t.Close()
}

// CBreakMode puts the terminal into cbreak mode. Key presses are available
// immediately and are not echoed.
func (et *Terminal) CBreakMode() error {
	et.mu.Lock()
	defer et.mu.Unlock()
	if err := et.t.SetCbreak(); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}
	et.cbreak = true
	return nil
}

// CanonicalMode puts the terminal into normal, everyday canonical mode.
func (et *Terminal) CanonicalMode() error {
	et.mu.Lock()
	defer et.mu.Unlock()
	if !et.cbreak {
		return nil
	}
	et.cbreak = false
	if err := et.t.Restore(); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}
	return nil
}

// ReadKey waits for a single key press. The terminal should be in cbreak mode.
func (et *Terminal) ReadKey() (Key, error) {
	et.mu.Lock()
	defer et.mu.Unlock()

	b := make([]byte, 8)
	n, err := et.t.Read(b)
	if err != nil {
		return Key{}, fmt.Errorf("easyterm: %w", err)
	}
	k, _ := Decode(b[:n])
	return k, nil
}
