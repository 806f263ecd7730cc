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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
	"github.com/avwohl/zwalker-sub001/zmachine/storytest"
)

// portable runs the test in a temporary directory with a portable resources
// directory. the filename of a story file in that directory is returned
func portable(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	test.DemandSuccess(t, os.Mkdir(filepath.Join(dir, ".zwalker"), 0o755))

	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
	})

	fn := filepath.Join(dir, "room.z3")
	test.DemandSuccess(t, os.WriteFile(fn, storytest.Room().Image(), 0o644))
	return fn
}

func TestInfo(t *testing.T) {
	fn := portable(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"info", fn}, &out), 0)
	test.ExpectSuccess(t, strings.Contains(out.String(), "version 3 release 1 serial 261018"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "checksum ok"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "current room: 1 Kitchen"))
}

func TestTree(t *testing.T) {
	fn := portable(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"tree", fn}, &out), 0)
	test.ExpectEquality(t, out.String(), "[1] Kitchen\n")
}

func TestWords(t *testing.T) {
	fn := portable(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"words", fn}, &out), 0)
	test.ExpectEquality(t, out.String(), "invent\nnorth\n")

	out.Reset()
	test.ExpectEquality(t, launch([]string{"words", "-categorise", fn}, &out), 0)
	test.ExpectSuccess(t, strings.Contains(out.String(), "verbs (1): [invent]"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "directions (1): [north]"))
}

func TestDisasm(t *testing.T) {
	fn := portable(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"disasm", fn}, &out), 0)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "0x1000 PRINT \">\"\n"))
	test.ExpectSuccess(t, strings.Contains(out.String(), " SREAD #0700 #0760\n"))
	test.ExpectEquality(t, strings.Count(out.String(), "\n"), 10)

	out.Reset()
	test.ExpectEquality(t, launch([]string{"disasm", "-addr", "0x1000", "-bytecode", fn}, &out), 0)
	test.ExpectSuccess(t, strings.Contains(out.String(), "\ne4 0f 07 00 07 60 "))

	out.Reset()
	test.ExpectEquality(t, launch([]string{"disasm", "-addr", "1", "-routine", "1", fn}, &out), 20)
	test.ExpectSuccess(t, strings.Contains(out.String(), "cannot be used together"))
}

func TestVersion(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"version"}, &out), 0)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "Zwalker "))
}

func TestPrefs(t *testing.T) {
	fn := portable(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"-prefs", "screen.width::60; no.such::1", "info", fn}, &out), 0)
	test.ExpectSuccess(t, strings.Contains(out.String(), "unused preferences: no.such::1"))
}

func TestErrors(t *testing.T) {
	fn := portable(t)

	var out strings.Builder
	test.ExpectEquality(t, launch([]string{"info"}, &out), 20)
	test.ExpectSuccess(t, strings.Contains(out.String(), "story file required"))

	out.Reset()
	test.ExpectEquality(t, launch([]string{"tree", fn, fn}, &out), 20)
	test.ExpectSuccess(t, strings.Contains(out.String(), "too many arguments"))

	out.Reset()
	test.ExpectEquality(t, launch([]string{"info", "-hash", "0000", fn}, &out), 20)

	out.Reset()
	test.ExpectEquality(t, launch([]string{"-nosuchflag"}, &out), 20)
}

func BenchmarkCommands(b *testing.B) {
	prefs, err := preferences.NewPreferencesNoDisk()
	if err != nil {
		b.Fatal(err)
	}
	eng, err := zmachine.Load(storytest.Room().Image(), prefs)
	if err != nil {
		b.Fatal(err)
	}
	if _, err := eng.Run(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		if _, err := eng.SendInput("inventory"); err != nil {
			b.Fatal(err)
		}
	}
}
