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

package test

import (
	"fmt"
	"sync"
)

// CompareWriter captures output for comparison with an expected string. It is
// safe to write to from more than one goroutine, which is useful when a
// session is being driven by a server under test.
type CompareWriter struct {
	crit   sync.Mutex
	buffer []byte
}

func (tw *CompareWriter) Write(p []byte) (n int, err error) {
	tw.crit.Lock()
	defer tw.crit.Unlock()
	tw.buffer = append(tw.buffer, p...)
	return len(p), nil
}

// Clear empties the buffer.
func (tw *CompareWriter) Clear() {
	tw.crit.Lock()
	defer tw.crit.Unlock()
	tw.buffer = tw.buffer[:0]
}

// Compare buffered output with an expected string.
func (tw *CompareWriter) Compare(s string) bool {
	return tw.Diff(s) == ""
}

// Diff describes the first difference between the buffered output and the
// expected string. Returns the empty string if they are the same.
func (tw *CompareWriter) Diff(s string) string {
	tw.crit.Lock()
	defer tw.crit.Unlock()

	b := string(tw.buffer)
	if b == s {
		return ""
	}

	i := 0
	for i < len(b) && i < len(s) && b[i] == s[i] {
		i++
	}
	return fmt.Sprintf("differs at byte %d: got %q, expected %q", i, b[i:], s[i:])
}

func (tw *CompareWriter) String() string {
	tw.crit.Lock()
	defer tw.crit.Unlock()
	return string(tw.buffer)
}
