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

package cpu_test

import (
	"testing"

	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine/cpu"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/instance"
	"github.com/avwohl/zwalker-sub001/zmachine/memory"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
	"github.com/avwohl/zwalker-sub001/zmachine/storytest"
)

// short names for the story layout and operands
const (
	objectTable = storytest.ObjectTable
	globals     = storytest.Globals
	dictAddr    = storytest.Dictionary
	textBuf     = storytest.TextBuffer
	parseBuf    = storytest.ParseBuffer
	tableAddr   = storytest.Table
	staticBase  = storytest.StaticBase
	codeBase    = storytest.CodeBase

	sp  = storytest.SP
	l00 = storytest.L00
	l01 = storytest.L01
	g00 = storytest.G00
	g01 = storytest.G01
	g02 = storytest.G02
	g03 = storytest.G03
)

var (
	small    = storytest.Small
	large    = storytest.Large
	variable = storytest.Variable
)

type machine struct {
	*cpu.CPU
	ins *instance.Instance
}

func (m *machine) global(v uint8) uint16 {
	return m.Memory().ReadWord(uint32(globals) + 2*uint32(v-16))
}

func newInstance(t *testing.T) *instance.Instance {
	t.Helper()
	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	ins, err := instance.NewInstance(prefs)
	test.DemandSuccess(t, err)
	ins.Normalise()
	return ins
}

// load the story into a new cpu
func load(t *testing.T, s *storytest.Story, ins *instance.Instance) *machine {
	t.Helper()

	if ins == nil {
		ins = newInstance(t)
	}

	data := s.Image()
	hdr, err := header.Parse(data)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(data, uint32(hdr.StaticBase), uint32(hdr.HighBase))
	test.DemandSuccess(t, err)
	mc, err := cpu.NewCPU(ins, hdr, mem)
	test.DemandSuccess(t, err)

	return &machine{CPU: mc, ins: ins}
}
