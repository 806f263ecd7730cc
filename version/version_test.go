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

package version

import (
	"runtime/debug"
	"testing"

	"github.com/avwohl/zwalker-sub001/test"
)

func TestNoBuildInfo(t *testing.T) {
	inf := readInfo(nil, false)
	test.ExpectEquality(t, inf.Version, "local")
	test.ExpectEquality(t, inf.Revision, "no revision information")
	test.ExpectEquality(t, inf.Release(), false)
	test.ExpectEquality(t, inf.String(), "Zwalker local (no revision information)")
}

func TestBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.22.0",
		Deps: []*debug.Module{
			{Path: "github.com/gorilla/mux", Version: "v1.8.0"},
			{Path: "github.com/pkg/term", Version: "v1.1.0", Replace: &debug.Module{Path: "../term", Version: ""}},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	inf := readInfo(bi, true)
	test.ExpectEquality(t, inf.Version, "unreleased")
	test.ExpectEquality(t, inf.Revision, "abc123+dirty")
	test.ExpectEquality(t, inf.GoVersion, "go1.22.0")
	test.ExpectSliceEquality(t, inf.Deps, []string{"github.com/gorilla/mux@v1.8.0", "../term@"})
}
