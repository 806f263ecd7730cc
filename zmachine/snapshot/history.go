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

// History is a circular array of states. When the array is full the oldest
// state is forgotten to make room for a new one.
type History struct {
	entries []*State
	start   int
	count   int
}

// NewHistory is the preferred method of initialisation for the History type.
// A size of zero means no states are kept.
func NewHistory(size int) *History {
	return &History{
		entries: make([]*State, max(size, 0)),
	}
}

// Size returns the maximum number of states.
func (h *History) Size() int {
	return len(h.entries)
}

// Len returns the number of states currently held.
func (h *History) Len() int {
	return h.count
}

// Push a copy of the state.
func (h *History) Push(s *State) {
	if len(h.entries) == 0 {
		return
	}

	e := (h.start + h.count) % len(h.entries)
	h.entries[e] = s.Copy()

	if h.count < len(h.entries) {
		h.count++
	} else {
		h.start = (h.start + 1) % len(h.entries)
	}
}

// Pop the most recent state. Returns nil if there are no states.
func (h *History) Pop() *State {
	if h.count == 0 {
		return nil
	}
	h.count--
	e := (h.start + h.count) % len(h.entries)
	s := h.entries[e]
	h.entries[e] = nil
	return s
}

// Clear forgets all states.
func (h *History) Clear() {
	clear(h.entries)
	h.start = 0
	h.count = 0
}
