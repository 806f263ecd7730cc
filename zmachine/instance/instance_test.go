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

package instance_test

import (
	"testing"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine/instance"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
)

func newInstance(t *testing.T) *instance.Instance {
	t.Helper()
	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	ins, err := instance.NewInstance(prefs)
	test.DemandSuccess(t, err)
	return ins
}

func TestTag(t *testing.T) {
	ins := newInstance(t)
	test.ExpectEquality(t, ins.Tag("cpu"), "cpu")
	ins.Label = instance.Session
	test.ExpectEquality(t, ins.Tag("cpu"), "session/cpu")
}

func TestQuiet(t *testing.T) {
	ins := newInstance(t)
	log := logger.NewLogger(10)

	log.Log(ins, "cpu", "logged")
	ins.Quiet = true
	log.Log(ins, "cpu", "not logged")

	var w test.CompareWriter
	log.Write(&w)
	test.ExpectSuccess(t, w.Compare("cpu: logged\n"))
}

func TestNormalise(t *testing.T) {
	ins := newInstance(t)
	ins.Prefs.ScreenWidth.Set(40)
	ins.Normalise()
	test.ExpectEquality(t, ins.Prefs.ScreenWidth.Value(), 80)

	a := ins.Random.IntN(1000)
	ins.Normalise()
	test.ExpectEquality(t, ins.Random.IntN(1000), a)
}
