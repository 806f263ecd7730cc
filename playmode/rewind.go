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

package playmode

import (
	"github.com/avwohl/zwalker-sub001/logger"
)

func (pl *playmode) pushHistory() {
	if pl.history.Size() == 0 {
		return
	}
	st, err := pl.eng.Snapshot()
	if err != nil {
		logger.Logf(logger.Allow, "playmode", "%v", err)
		return
	}
	pl.history.Push(st)
}

// undo returns to the state before the most recent line of input. The
// previous prompt is not repeated.
func (pl *playmode) undo() (string, error) {
	st := pl.history.Pop()
	if st == nil {
		return "[nothing to undo]\n", nil
	}
	if err := pl.eng.Restore(st); err != nil {
		return "", err
	}
	return "[undone]\n", nil
}
