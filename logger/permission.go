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

package logger

// Permission implementations decide whether a log request creates a new
// entry. The zmachine instance is a Permission, so a quiet instance does not
// fill the log.
type Permission interface {
	AllowLogging() bool
}

type fixed bool

func (f fixed) AllowLogging() bool {
	return bool(f)
}

// Source is a Permission that also decides the tag of the entries it creates.
// Components that can belong to a labelled instance log through a Source.
type Source interface {
	Permission
	Tag(component string) string
}

type untagged struct {
	Permission
}

func (untagged) Tag(component string) string {
	return component
}

// Default is the Source of a component that does not belong to an instance.
var Default Source = untagged{Allow}

// Allow and Deny are permissions that never change.
var (
	Allow Permission = fixed(true)
	Deny  Permission = fixed(false)
)
