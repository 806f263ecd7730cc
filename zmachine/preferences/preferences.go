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

// Package preferences holds the interpreter settings that can be changed by
// the user. Values are stored in the resources directory and can be
// overridden from the command line with the prefs command line stack.
package preferences

import (
	"github.com/avwohl/zwalker-sub001/prefs"
	"github.com/avwohl/zwalker-sub001/resources"
)

// Preferences for the interpreter.
type Preferences struct {
	dsk *prefs.Disk

	// reported to the story in the header. the default is the IBM PC
	InterpreterNumber  prefs.Int
	InterpreterVersion prefs.String

	// screen size in characters. a height of 255 means an infinite screen
	// with no need for paging
	ScreenWidth  prefs.Int
	ScreenHeight prefs.Int

	// number of save_undo states that are kept. zero disables undo
	UndoSlots prefs.Int

	// maximum number of instructions executed by a single call to Run(). zero
	// means no limit
	MaxInstructions prefs.Int

	// number of times a timed read can time out before being abandoned
	MaxTimedWaits prefs.Int

	// writes outside of dynamic memory are errors rather than being logged
	// and ignored
	StrictWrites prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resources directory.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

// NewPreferencesNoDisk creates preferences that are never written to disk.
// Values can still be set from the command line stack.
func NewPreferencesNoDisk() (*Preferences, error) {
	return newPreferences("")
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.InterpreterVersion.SetMaxLen(1)

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("interpreter.number", &p.InterpreterNumber)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("interpreter.version", &p.InterpreterVersion)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("screen.width", &p.ScreenWidth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("screen.height", &p.ScreenHeight)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("undo.slots", &p.UndoSlots)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("run.maxInstructions", &p.MaxInstructions)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("input.maxTimedWaits", &p.MaxTimedWaits)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("memory.strictWrites", &p.StrictWrites)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to their default values.
func (p *Preferences) SetDefaults() {
	p.InterpreterNumber.Set(6)
	p.InterpreterVersion.Set("A")
	p.ScreenWidth.Set(80)
	p.ScreenHeight.Set(255)
	p.UndoSlots.Set(8)
	p.MaxInstructions.Set(5000000)
	p.MaxTimedWaits.Set(100)
	p.StrictWrites.Set(false)
}

// Load the current values from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save the current values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
