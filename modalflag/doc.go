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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and the flags for each mode.
//
// A mode is an argument that selects a different behaviour of the program.
// For example:
//
//	zwalker play -seed 10 zork1.z3
//	zwalker words zork1.z3
//
// The first argument following the program name is checked against the list
// of sub-modes given with AddSubModes(). If it matches then that is the
// selected mode, otherwise the first listed sub-mode is the default mode.
// Each call to NewMode() starts a new layer of flags, so each mode can have
// its own flags:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "INFO")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		seed := md.AddInt("seed", 0, "random seed")
//		p, err := md.Parse()
//		...
//	}
//
// Help messages are printed to the Output writer automatically when the
// -help flag is given.
package modalflag
