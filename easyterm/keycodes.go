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

package easyterm

import "unicode/utf8"

// list of ASCII codes for non-alphanumeric characters
const (
	asciiInterrupt      = 3  // end-of-text character
	asciiBackspace      = 8
	asciiTab            = 9
	asciiLineFeed       = 10
	asciiCarriageReturn = 13
	asciiSuspend        = 26 // substitute character
	asciiEsc            = 27
	asciiDelete         = 127
)

// list of ASCII codes for characters that can follow asciiEsc
const (
	escCursor = '['
	escSS3    = 'O'
)

// list of ASCII code for characters that can follow escCursor
const (
	cursorUp       = 'A'
	cursorDown     = 'B'
	cursorForward  = 'C'
	cursorBackward = 'D'
)

// KeyCode identifies keys that do not produce a printable character.
type KeyCode int

// List of valid KeyCode values.
const (
	KeyRune KeyCode = iota
	KeyReturn
	KeyBackspace
	KeyEscape
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInterrupt
	KeySuspend
	KeyUnknown
)

// Key is a single key press. Rune is only valid if Code is KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyReturn:
		return "return"
	case KeyBackspace:
		return "backspace"
	case KeyEscape:
		return "escape"
	case KeyTab:
		return "tab"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyInterrupt:
		return "interrupt"
	case KeySuspend:
		return "suspend"
	}
	return "unknown"
}

// Decode the first key press in the bytes sent by the terminal. Returns the
// key and the number of bytes used. An empty slice decodes as KeyUnknown.
func Decode(b []byte) (Key, int) {
	if len(b) == 0 {
		return Key{Code: KeyUnknown}, 0
	}

	switch b[0] {
	case asciiInterrupt:
		return Key{Code: KeyInterrupt}, 1
	case asciiSuspend:
		return Key{Code: KeySuspend}, 1
	case asciiBackspace, asciiDelete:
		return Key{Code: KeyBackspace}, 1
	case asciiTab:
		return Key{Code: KeyTab}, 1
	case asciiCarriageReturn, asciiLineFeed:
		return Key{Code: KeyReturn}, 1
	case asciiEsc:
		if len(b) < 3 || (b[1] != escCursor && b[1] != escSS3) {
			return Key{Code: KeyEscape}, 1
		}
		switch b[2] {
		case cursorUp:
			return Key{Code: KeyUp}, 3
		case cursorDown:
			return Key{Code: KeyDown}, 3
		case cursorForward:
			return Key{Code: KeyRight}, 3
		case cursorBackward:
			return Key{Code: KeyLeft}, 3
		}
		return Key{Code: KeyUnknown}, len(b)
	}

	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return Key{Code: KeyUnknown}, n
	}
	return Key{Code: KeyRune, Rune: r}, n
}
