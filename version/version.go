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

// Package version reports the version of the program from the build
// information embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// ApplicationName is used in messages, file headers and the control server.
const ApplicationName = "Zwalker"

// set with -ldflags "-X" by release builds
var number string

// Info describes the build.
type Info struct {
	// release number, "unreleased" for a build from a vcs checkout or
	// "local" if there is no information at all
	Version string

	// vcs revision, suffixed with "+dirty" when the checkout had
	// uncommitted changes
	Revision string

	GoVersion string

	// module dependencies as path@version
	Deps []string
}

// Release is true if the build has a release number.
func (inf Info) Release() bool {
	return number != "" && inf.Version == number
}

func (inf Info) String() string {
	return fmt.Sprintf("%s %s (%s)", ApplicationName, inf.Version, inf.Revision)
}

var info Info

// Version returns information about the build.
func Version() Info {
	return info
}

func init() {
	info = readInfo(debug.ReadBuildInfo())
}

func readInfo(bi *debug.BuildInfo, ok bool) Info {
	inf := Info{
		Version:  number,
		Revision: "no revision information",
	}

	if !ok {
		if inf.Version == "" {
			inf.Version = "local"
		}
		return inf
	}

	inf.GoVersion = bi.GoVersion

	var vcs bool
	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			inf.Revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty {
		inf.Revision = fmt.Sprintf("%s+dirty", inf.Revision)
	}

	if inf.Version == "" {
		if vcs {
			inf.Version = "unreleased"
		} else {
			inf.Version = "local"
		}
	}

	for _, d := range bi.Deps {
		if d.Replace != nil {
			d = d.Replace
		}
		inf.Deps = append(inf.Deps, strings.Join([]string{d.Path, d.Version}, "@"))
	}

	return inf
}
