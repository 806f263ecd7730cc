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

package zmachine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/cpu"
	"github.com/avwohl/zwalker-sub001/zmachine/instance"
	"github.com/avwohl/zwalker-sub001/zmachine/objects"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
	"github.com/avwohl/zwalker-sub001/zmachine/snapshot"
	"github.com/avwohl/zwalker-sub001/zmachine/storytest"
)

var (
	small    = storytest.Small
	large    = storytest.Large
	variable = storytest.Variable
)

func load(t *testing.T, s *storytest.Story) *zmachine.Engine {
	t.Helper()
	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	eng, err := zmachine.Load(s.Image(), prefs)
	test.DemandSuccess(t, err)
	eng.Instance.Normalise()
	return eng
}

func global(eng *zmachine.Engine, g uint8) uint16 {
	return eng.Mem.ReadWord(storytest.Globals + 2*uint32(g-storytest.G00))
}

func TestAdd(t *testing.T) {
	s := storytest.New(3)
	s.Op2(20, small(13), large(0xfffb)).Store(storytest.G00)
	s.Op0(10)

	eng := load(t, s)
	test.ExpectEquality(t, eng.Header.Version, 3)

	_, err := eng.Run()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, global(eng, storytest.G00), 8)
	test.ExpectSuccess(t, eng.Halted())
}

func TestSeparateEngines(t *testing.T) {
	s := storytest.New(3)
	s.Op2(20, small(13), large(0xfffb)).Store(storytest.G00)
	s.Op0(10)

	a := load(t, s)
	b := load(t, s)

	_, err := a.Run()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, global(a, storytest.G00), 8)
	test.ExpectEquality(t, global(b, storytest.G00), 0)
	test.ExpectEquality(t, b.State(), cpu.Running)
}

func roomStory() *storytest.Story {
	return storytest.Room()
}

func TestBlockedCommand(t *testing.T) {
	eng := load(t, roomStory())

	out, err := eng.Run()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, ">")
	test.DemandSuccess(t, eng.WaitingForInput())

	st, err := eng.Snapshot()
	test.DemandSuccess(t, err)

	out, err = eng.SendInput("north")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "You can't go that way.\n>")

	// the command is judged to have been blocked
	test.DemandSuccess(t, eng.Restore(st))
	test.ExpectEquality(t, eng.GetOutput(), "")
	test.DemandSuccess(t, eng.WaitingForInput())

	out, err = eng.SendInput("inventory")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "You have a lamp.\n>")
}

func TestRestoreIdempotence(t *testing.T) {
	eng := load(t, roomStory())
	_, err := eng.Run()
	test.DemandSuccess(t, err)

	before, err := eng.Snapshot()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, eng.Restore(before))

	after, err := eng.Snapshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, after.PC, before.PC)
	test.ExpectEquality(t, len(after.Frames), len(before.Frames))
	test.ExpectSliceEquality(t, after.Frames[0].Stack, before.Frames[0].Stack)
	test.ExpectSliceEquality(t, after.Dynamic, before.Dynamic)

	out, err := eng.SendInput("inventory")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "You have a lamp.\n>")
}

func TestRestoreKeepsOutput(t *testing.T) {
	eng := load(t, roomStory())

	// run without collecting the prompt
	test.DemandSuccess(t, eng.CPU.Run())
	st, err := eng.Snapshot()
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, eng.Restore(st))
	test.ExpectEquality(t, eng.GetOutput(), ">")
	test.DemandSuccess(t, eng.WaitingForInput())

	// a failed restore keeps the output too
	eng.CPU.ReplaceOutput("unread")
	test.ExpectFailure(t, eng.Restore(nil))
	test.ExpectEquality(t, eng.GetOutput(), "unread")
}

func TestChecksumMismatch(t *testing.T) {
	data := roomStory().Image()
	data[storytest.Table] ^= 0x01

	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)

	logger.Clear()
	_, err = zmachine.Load(data, prefs)
	test.DemandSuccess(t, err)

	var w strings.Builder
	logger.Write(&w)
	test.ExpectEquality(t, strings.Count(w.String(), "checksum mismatch"), 1)
}

func badReadStory() *storytest.Story {
	s := storytest.New(3)
	s.Op2(16, large(0xfff0), small(0)).Store(storytest.G00)
	s.Op0(10)
	return s
}

func TestInstanceLogging(t *testing.T) {
	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)

	ins, err := instance.NewInstance(prefs)
	test.DemandSuccess(t, err)
	ins.Label = instance.Session

	logger.Clear()
	eng, err := zmachine.LoadInstance(badReadStory().Image(), ins)
	test.DemandSuccess(t, err)
	_, err = eng.Run()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, logger.Contains("session/memory", "read from 0xfff0"))
	test.ExpectFailure(t, logger.Contains("memory", "read from 0xfff0"))

	ins, err = instance.NewInstance(prefs)
	test.DemandSuccess(t, err)
	ins.Quiet = true

	logger.Clear()
	eng, err = zmachine.LoadInstance(badReadStory().Image(), ins)
	test.DemandSuccess(t, err)
	_, err = eng.Run()
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, logger.Contains("memory", "read from"))
}

func TestEncodedRestore(t *testing.T) {
	eng := load(t, roomStory())
	_, err := eng.Run()
	test.DemandSuccess(t, err)

	st, err := eng.Snapshot()
	test.DemandSuccess(t, err)
	data := eng.Encode(st)

	other := load(t, roomStory())
	_, err = other.Run()
	test.DemandSuccess(t, err)
	_, err = other.SendInput("north")
	test.DemandSuccess(t, err)

	dec, err := other.Decode(data)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, other.Restore(dec))

	out, err := other.SendInput("inventory")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "You have a lamp.\n>")
}

func TestUnencodableWord(t *testing.T) {
	s := storytest.New(5)
	s.Dictionary([]string{"café", "look"}, ",")
	s.OpVar(4, large(storytest.TextBuffer), large(storytest.ParseBuffer)).Store(storytest.G00)
	s.Op0(10)

	eng := load(t, s)
	_, err := eng.Run()
	test.DemandSuccess(t, err)

	_, err = eng.SendInput("CAFÉ")
	test.ExpectSuccess(t, err)

	entry := eng.CPU.Dictionary().LookupWord("café")
	test.DemandSuccess(t, entry != 0)
	test.ExpectEquality(t, eng.Mem.Read(storytest.ParseBuffer+1), 1)
	test.ExpectEquality(t, uint32(eng.Mem.ReadWord(storytest.ParseBuffer+2)), entry)
	test.ExpectEquality(t, eng.Mem.Read(storytest.ParseBuffer+4), 4)
	test.ExpectEquality(t, global(eng, storytest.G00), 13)
}

func propertyStory() *storytest.Story {
	s := storytest.New(3)
	s.Object(1, "box", 0, 0, 0,
		storytest.Property{Number: 18, Data: []byte{0, 1}},
		storytest.Property{Number: 12, Data: []byte{2}},
		storytest.Property{Number: 5, Data: []byte{0, 3}},
	)
	s.Object(2, "", 0, 0, 0)
	return s
}

func TestGetNextProp(t *testing.T) {
	s := propertyStory()
	s.Op2(19, small(1), small(0)).Store(storytest.G00)
	s.Op2(19, small(1), variable(storytest.G00)).Store(storytest.G01)
	s.Op2(19, small(1), variable(storytest.G01)).Store(storytest.G02)
	s.Op2(19, small(1), variable(storytest.G02)).Store(storytest.G03)
	s.Op2(19, small(2), small(0)).Store(storytest.G04)
	s.Op0(10)

	eng := load(t, s)
	_, err := eng.Run()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, global(eng, storytest.G00), 18)
	test.ExpectEquality(t, global(eng, storytest.G01), 12)
	test.ExpectEquality(t, global(eng, storytest.G02), 5)
	test.ExpectEquality(t, global(eng, storytest.G03), 0)
	test.ExpectEquality(t, global(eng, storytest.G04), 0)
}

func TestGetNextPropAbsent(t *testing.T) {
	s := propertyStory()
	s.Op2(19, small(1), small(7)).Store(storytest.G00)
	s.Op0(10)

	eng := load(t, s)
	_, err := eng.Run()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, objects.ErrProperty))
	test.ExpectSuccess(t, eng.Halted())

	_, err = eng.Run()
	test.ExpectSuccess(t, errors.Is(err, cpu.ErrHalted))
}

// saveStory saves, then restores if the save did not come from a restore
func saveStory() *storytest.Story {
	s := storytest.New(4)
	s.Op0(5).Store(storytest.G00)
	s.Op2(1, variable(storytest.G00), small(2)).Branch(true, 0)
	br := s.PC - 1
	s.Op0(6).Store(storytest.G01)
	s.Op0(10)
	s.PatchBranch(br)
	s.Op0(2).Text("restored")
	s.Op0(10)
	return s
}

func TestSaveAndRestore(t *testing.T) {
	eng := load(t, saveStory())

	_, err := eng.Run()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, eng.State(), cpu.AwaitingSave)

	data := eng.PendingSave()
	test.DemandSuccess(t, len(data) > 0)

	_, err = eng.CompleteSave(true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, global(eng, storytest.G00), 1)
	test.DemandEquality(t, eng.State(), cpu.AwaitingRestore)

	out, err := eng.CompleteRestore(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "restored")
	test.ExpectEquality(t, global(eng, storytest.G00), 2)
	test.ExpectSuccess(t, eng.Halted())
}

func TestFailedRestore(t *testing.T) {
	eng := load(t, saveStory())

	_, err := eng.Run()
	test.DemandSuccess(t, err)
	_, err = eng.CompleteSave(false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, global(eng, storytest.G00), 0)

	out, err := eng.CompleteRestore([]byte("not a save file"))
	test.ExpectSuccess(t, errors.Is(err, snapshot.ErrFormat))
	test.ExpectEquality(t, out, "")
	test.ExpectEquality(t, global(eng, storytest.G01), 0)
	test.ExpectSuccess(t, eng.Halted())
}

func TestRestart(t *testing.T) {
	eng := load(t, roomStory())
	_, err := eng.Run()
	test.DemandSuccess(t, err)
	_, err = eng.SendInput("north")
	test.DemandSuccess(t, err)

	out, err := eng.Restart()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, ">")
	test.ExpectSuccess(t, strings.HasPrefix(eng.String(), "v3 r1 261018"))
}
