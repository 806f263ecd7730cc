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

package preferences_test

import (
	"testing"

	"github.com/avwohl/zwalker-sub001/prefs"
	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.InterpreterNumber.Value(), 6)
	test.ExpectEquality(t, p.InterpreterVersion.String(), "A")
	test.ExpectEquality(t, p.ScreenWidth.Value(), 80)
	test.ExpectEquality(t, p.ScreenHeight.Value(), 255)
	test.ExpectEquality(t, p.UndoSlots.Value(), 8)
	test.ExpectEquality(t, p.MaxInstructions.Value(), 5000000)
	test.ExpectEquality(t, p.MaxTimedWaits.Value(), 100)
	test.ExpectEquality(t, p.StrictWrites.Get().(bool), false)

	// saving without a disk path does nothing
	test.ExpectSuccess(t, p.Save())
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("screen.width::40; memory.strictWrites::true; interpreter.version::BC")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.ScreenWidth.Value(), 40)
	test.ExpectEquality(t, p.StrictWrites.Get().(bool), true)
	test.ExpectEquality(t, p.InterpreterVersion.String(), "B")
	test.ExpectEquality(t, p.ScreenHeight.Value(), 255)

	p.SetDefaults()
	test.ExpectEquality(t, p.ScreenWidth.Value(), 80)
}
