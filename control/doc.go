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

// Package control serves running stories over HTTP. Each session owns one
// engine and sessions share no mutable state. Requests for the same session
// are serialised because HTTP handlers run concurrently.
//
// The routes are:
//
//	POST   /session                 create a session (story bytes, {"story": "path"} or {"library": "id"})
//	GET    /session                 list sessions
//	GET    /session/{id}            state and status line
//	GET    /session/{id}/output     drain the output buffer
//	POST   /session/{id}/input      send a line of input
//	POST   /session/{id}/key        send a single key
//	POST   /session/{id}/tick       count one interval of a timed read
//	GET    /session/{id}/snapshot   Quetzal encoded snapshot
//	PUT    /session/{id}/snapshot   restore a Quetzal encoded snapshot
//	GET    /session/{id}/tree       object tree
//	GET    /session/{id}/words      dictionary words by category
//	DELETE /session/{id}            end the session
//	GET    /library?q=term&max=n     search the story library
//
// Stories can only be loaded from a path or URL if AllowFiles is set. Stories
// in the Library can always be loaded.
//
// Save and restore instructions are completed by the session itself using the
// most recent save made in that session.
package control
