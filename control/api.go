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

package control

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/avwohl/zwalker-sub001/inspect"
)

type createRequest struct {
	Story   string `json:"story,omitempty"`
	Library string `json:"library,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Entry   string `json:"entry,omitempty"`
}

type statusReply struct {
	Location string `json:"location"`
	Score    int    `json:"score"`
	Moves    int    `json:"moves"`
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	Timed    bool   `json:"timed"`
	Upper    string `json:"upper,omitempty"`
}

type sessionReply struct {
	ID      string       `json:"id"`
	Name    string       `json:"name,omitempty"`
	Version uint8        `json:"version"`
	State   string       `json:"state"`
	Output  string       `json:"output,omitempty"`
	Status  *statusReply `json:"status,omitempty"`
}

// reply for the session. the pending output is drained if drain is true
func (ss *session) reply(drain bool) sessionReply {
	r := sessionReply{
		ID:      ss.id,
		Name:    ss.name,
		Version: ss.eng.Header.Version,
		State:   ss.eng.State().String(),
	}
	if drain {
		r.Output = ss.drain()
	}
	st := ss.eng.Status()
	r.Status = &statusReply{
		Location: st.Location,
		Score:    st.Score,
		Moves:    st.Moves,
		Hours:    st.Hours,
		Minutes:  st.Minutes,
		Timed:    st.Timed,
		Upper:    st.Upper,
	}
	return r
}

func (srv *Server) info(ss *session, w http.ResponseWriter, req *http.Request) {
	sendJSONReply(ss.reply(false), http.StatusOK, w)
}

func (srv *Server) output(ss *session, w http.ResponseWriter, req *http.Request) {
	sendJSONReply(ss.reply(true), http.StatusOK, w)
}

func (srv *Server) input(ss *session, w http.ResponseWriter, req *http.Request) {
	b, err := readBody(http.MaxBytesReader(w, req.Body, maxInputSize))
	if handleError(err, http.StatusBadRequest, w) {
		return
	}
	text := strings.TrimRight(string(b), "\r\n")
	if handleError(ss.settle(ss.eng.SendInput(text)), http.StatusConflict, w) {
		return
	}
	sendJSONReply(ss.reply(true), http.StatusOK, w)
}

func (srv *Server) key(ss *session, w http.ResponseWriter, req *http.Request) {
	b, err := readBody(http.MaxBytesReader(w, req.Body, maxInputSize))
	if handleError(err, http.StatusBadRequest, w) {
		return
	}
	r, _ := utf8.DecodeRune(b)
	if len(b) == 0 {
		r = '\n'
	}
	if handleError(ss.settle(ss.eng.SendKey(r)), http.StatusConflict, w) {
		return
	}
	sendJSONReply(ss.reply(true), http.StatusOK, w)
}

func (srv *Server) tick(ss *session, w http.ResponseWriter, req *http.Request) {
	if handleError(ss.settle(ss.eng.Tick()), http.StatusConflict, w) {
		return
	}
	sendJSONReply(ss.reply(true), http.StatusOK, w)
}

func (srv *Server) getSnapshot(ss *session, w http.ResponseWriter, req *http.Request) {
	st, err := ss.eng.Snapshot()
	if handleError(err, http.StatusConflict, w) {
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	sendReply(ss.eng.Encode(st), http.StatusOK, w)
}

func (srv *Server) putSnapshot(ss *session, w http.ResponseWriter, req *http.Request) {
	b, err := readBody(http.MaxBytesReader(w, req.Body, maxSnapshotSize))
	if handleError(err, http.StatusBadRequest, w) {
		return
	}
	st, err := ss.eng.Decode(b)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if handleError(ss.eng.Restore(st), http.StatusConflict, w) {
		return
	}
	if handleError(ss.settle("", nil), http.StatusConflict, w) {
		return
	}

	// output already buffered belongs to the abandoned commands
	ss.pending = ""
	sendJSONReply(ss.reply(true), http.StatusOK, w)
}

func (srv *Server) tree(ss *session, w http.ResponseWriter, req *http.Request) {
	var s strings.Builder
	if handleError(inspect.NewInspector(ss.eng).WriteTree(&s), http.StatusInternalServerError, w) {
		return
	}
	sendReply([]byte(s.String()), http.StatusOK, w)
}

type wordsReply struct {
	Verbs        []string `json:"verbs"`
	Nouns        []string `json:"nouns"`
	Adjectives   []string `json:"adjectives"`
	Directions   []string `json:"directions"`
	Prepositions []string `json:"prepositions"`
	Other        []string `json:"other"`
}

func (srv *Server) words(ss *session, w http.ResponseWriter, req *http.Request) {
	if ss.eng.Halted() {
		handleError(errors.New("story has ended"), http.StatusConflict, w)
		return
	}
	c := inspect.NewInspector(ss.eng).Categorise()
	sendJSONReply(wordsReply{
		Verbs:        c.Verbs,
		Nouns:        c.Nouns,
		Adjectives:   c.Adjectives,
		Directions:   c.Directions,
		Prepositions: c.Prepositions,
		Other:        c.Other,
	}, http.StatusOK, w)
}
