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

package control

import (
	"sync"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/cpu"
)

// session is a single running story.
type session struct {
	// every request for the session must hold the lock
	mu sync.Mutex

	id   string
	name string
	eng  *zmachine.Engine

	// output not yet collected by a GET of the output
	pending string

	// the most recent file written by a save instruction
	saved []byte
}

// settle completes any save or restore the story is waiting for, so that the
// engine is left waiting for input or halted. the output produced by the
// engine is added to the pending output
func (ss *session) settle(out string, err error) error {
	ss.pending += out
	for err == nil {
		switch ss.eng.State() {
		case cpu.AwaitingSave:
			ss.saved = append([]byte(nil), ss.eng.PendingSave()...)
			out, err = ss.eng.CompleteSave(true)
		case cpu.AwaitingRestore:
			out, err = ss.eng.CompleteRestore(ss.saved)
			if err != nil && !ss.eng.Halted() {
				// the story has been told the restore failed
				logger.Logf(logger.Allow, "control", "session %s: %v", ss.id, err)
				err = nil
			}
		default:
			return nil
		}
		ss.pending += out
	}
	return err
}

// drain the pending output
func (ss *session) drain() string {
	out := ss.pending + ss.eng.GetOutput()
	ss.pending = ""
	return out
}
