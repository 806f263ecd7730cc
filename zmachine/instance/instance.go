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

// Package instance holds the values that are shared by the components of a
// single running story. Every engine has its own instance so that several
// stories can run at the same time without sharing any mutable state.
package instance

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/random"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
)

// Label is used to identify an instance in log messages. Log entries from an
// instance with a label are tagged "label/component".
type Label string

// Labels used by the packages in this module.
const (
	Main    Label = ""
	Session Label = "session"
	Test    Label = "test"
)

// Instance is defined for each running story.
type Instance struct {
	Label Label

	// log entries are not created while Quiet is true
	Quiet bool

	Random *random.Random

	// the preferences of the running instance. the preferences can be shared
	// with other instances
	Prefs *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance
// type. If prefs is nil then preferences are loaded from disk.
func NewInstance(prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	ins.Prefs = prefs

	return ins, nil
}

// Normalise ensures the instance is in a known default state. Useful for
// regression tests where the output must be predictable.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Random.Reseed()
	ins.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface.
func (ins *Instance) AllowLogging() bool {
	return !ins.Quiet
}

// Tag returns the log tag for a component of the instance.
func (ins *Instance) Tag(component string) string {
	if ins.Label == Main {
		return component
	}
	return fmt.Sprintf("%s/%s", ins.Label, component)
}
