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

package recorder_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/avwohl/zwalker-sub001/recorder"
	"github.com/avwohl/zwalker-sub001/test"
)

func TestRecordAndPlayback(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "walk.txt")

	rec, err := recorder.NewRecorder(fn, "room", "abcd")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, rec.Record(recorder.KindLine, "north, then east", "You can't go that way.\n>"))
	test.DemandSuccess(t, rec.Record(recorder.KindKey, "\n", ""))
	test.ExpectEquality(t, rec.String(), "2 inputs recorded for room")
	test.DemandSuccess(t, rec.End())

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.StoryName, "room")
	test.ExpectEquality(t, plb.StoryHash, "abcd")
	test.ExpectEquality(t, plb.Len(), 2)
	test.ExpectSuccess(t, plb.CheckStory("abcd"))
	test.ExpectSuccess(t, errors.Is(plb.CheckStory("ef01"), recorder.ErrStory))

	e, ok := plb.Next()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Kind, recorder.KindLine)
	test.ExpectEquality(t, e.Data, "north, then east")
	test.ExpectSuccess(t, plb.Check(e, "You can't go that way.\n>"))
	test.ExpectSuccess(t, errors.Is(plb.Check(e, "You have a lamp.\n>"), recorder.ErrDivergence))
	test.ExpectEquality(t, plb.String(), "1/2 (50.0%)")

	e, ok = plb.Next()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Kind, recorder.KindKey)
	test.ExpectEquality(t, e.Data, "\n")
	test.ExpectSuccess(t, plb.Check(e, ""))

	_, ok = plb.Next()
	test.ExpectFailure(t, ok)
}

func TestParsePlayback(t *testing.T) {
	_, err := recorder.ParsePlayback("")
	test.ExpectSuccess(t, errors.Is(err, recorder.ErrFormat))

	_, err = recorder.ParsePlayback("zwalker recording\nroom\n\nline, 00\n")
	test.ExpectSuccess(t, errors.Is(err, recorder.ErrFormat))

	_, err = recorder.ParsePlayback("zwalker recording\nroom\n\nmouse, 00, \"x\"\n")
	test.ExpectSuccess(t, errors.Is(err, recorder.ErrFormat))

	_, err = recorder.ParsePlayback("zwalker recording\nroom\n\nline, 00, x\n")
	test.ExpectSuccess(t, errors.Is(err, recorder.ErrFormat))

	plb, err := recorder.ParsePlayback("zwalker recording\nroom\n\n\nline, 00, \"x\"\n")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.Len(), 1)

	// no story hash in the recording
	test.ExpectSuccess(t, plb.CheckStory("abcd"))
}

func TestHash(t *testing.T) {
	test.ExpectEquality(t, recorder.Hash(""), "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	test.ExpectInequality(t, recorder.Hash(">"), recorder.Hash(""))
}
