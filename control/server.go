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
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/avwohl/zwalker-sub001/library"
	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/storyloader"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/instance"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
)

// largest story file that can be uploaded. version 8 stories can be 512k
const maxStorySize = 1 << 20

// largest line of input or snapshot accepted
const (
	maxInputSize    = 1 << 10
	maxSnapshotSize = 1 << 20
)

// Server manages sessions and serves them over HTTP.
type Server struct {
	prefs *preferences.Preferences

	mu       sync.Mutex
	sessions map[string]*session
	nextID   int

	router *mux.Router

	// AllowFiles permits sessions to be created from a filename or URL
	// rather than from uploaded story data
	AllowFiles bool

	// stories that sessions can be created from by name. may be nil
	Library *library.Library

	// sessions created while QuietSessions is true do not log story errors
	QuietSessions bool
}

// NewServer is the preferred method of initialisation for the Server type.
// The preferences are shared by every session. If prefs is nil then the
// preferences are loaded from disk.
func NewServer(prefs *preferences.Preferences) (*Server, error) {
	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, fmt.Errorf("control: %w", err)
		}
	}

	srv := &Server{
		prefs:    prefs,
		sessions: make(map[string]*session),
		router:   mux.NewRouter(),
	}

	r := srv.router
	r.HandleFunc("/session", srv.create).Methods(http.MethodPost)
	r.HandleFunc("/session", srv.list).Methods(http.MethodGet)
	r.HandleFunc("/session/{id}", srv.withSession(srv.info)).Methods(http.MethodGet)
	r.HandleFunc("/session/{id}", srv.remove).Methods(http.MethodDelete)
	r.HandleFunc("/session/{id}/output", srv.withSession(srv.output)).Methods(http.MethodGet)
	r.HandleFunc("/session/{id}/input", srv.withSession(srv.input)).Methods(http.MethodPost)
	r.HandleFunc("/session/{id}/key", srv.withSession(srv.key)).Methods(http.MethodPost)
	r.HandleFunc("/session/{id}/tick", srv.withSession(srv.tick)).Methods(http.MethodPost)
	r.HandleFunc("/session/{id}/snapshot", srv.withSession(srv.getSnapshot)).Methods(http.MethodGet)
	r.HandleFunc("/session/{id}/snapshot", srv.withSession(srv.putSnapshot)).Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/session/{id}/tree", srv.withSession(srv.tree)).Methods(http.MethodGet)
	r.HandleFunc("/session/{id}/words", srv.withSession(srv.words)).Methods(http.MethodGet)
	r.HandleFunc("/library", srv.search).Methods(http.MethodGet)

	return srv, nil
}

// ServeHTTP implements the http.Handler interface.
func (srv *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	srv.router.ServeHTTP(w, req)
}

// ListenAndServe serves sessions on the address until the context is
// cancelled.
func (srv *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- hs.ListenAndServe()
	}()

	logger.Logf(logger.Allow, "control", "listening on %s", addr)

	select {
	case err := <-done:
		return fmt.Errorf("control: %w", err)
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			return fmt.Errorf("control: %w", err)
		}
		if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("control: %w", err)
		}
		return nil
	}
}

// add a new session for the story data
func (srv *Server) add(name string, data []byte) (*session, error) {
	ins, err := instance.NewInstance(srv.prefs)
	if err != nil {
		return nil, err
	}
	ins.Label = instance.Session
	ins.Quiet = srv.QuietSessions

	eng, err := zmachine.LoadInstance(data, ins)
	if err != nil {
		return nil, err
	}

	srv.mu.Lock()
	srv.nextID++
	ss := &session{
		id:   strconv.Itoa(srv.nextID),
		name: name,
		eng:  eng,
	}
	srv.sessions[ss.id] = ss
	srv.mu.Unlock()

	logger.Logf(logger.Allow, "control", "session %s: %s", ss.id, name)

	return ss, nil
}

func (srv *Server) get(id string) (*session, bool) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	ss, ok := srv.sessions[id]
	return ss, ok
}

// withSession wraps a handler that requires a session. the session is
// locked for the duration of the handler
func (srv *Server) withSession(h func(*session, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ss, ok := srv.get(mux.Vars(req)["id"])
		if !ok {
			handleError(fmt.Errorf("no session %s", mux.Vars(req)["id"]), http.StatusNotFound, w)
			return
		}
		ss.mu.Lock()
		defer ss.mu.Unlock()
		h(ss, w, req)
	}
}

func (srv *Server) create(w http.ResponseWriter, req *http.Request) {
	var name string
	var data []byte

	body := http.MaxBytesReader(w, req.Body, maxStorySize)

	if req.Header.Get("Content-Type") == "application/json" {
		var spec createRequest
		if handleError(decodeJSON(body, &spec), http.StatusBadRequest, w) {
			return
		}

		filename := spec.Story
		switch {
		case spec.Library != "":
			if srv.Library == nil {
				handleError(errors.New("no library"), http.StatusNotFound, w)
				return
			}
			var err error
			filename, err = srv.Library.Path(spec.Library)
			if handleError(err, http.StatusNotFound, w) {
				return
			}
		case !srv.AllowFiles:
			handleError(errors.New("loading stories from files is not allowed"), http.StatusForbidden, w)
			return
		}

		ld := storyloader.NewLoader(filename)
		ld.Hash = spec.Hash
		ld.Entry = spec.Entry
		if handleError(ld.Load(), http.StatusUnprocessableEntity, w) {
			return
		}
		name = ld.ShortName()
		data = ld.Data
	} else {
		var err error
		data, err = readBody(body)
		if handleError(err, http.StatusBadRequest, w) {
			return
		}
		name = getArg(req, "name")
	}

	ss, err := srv.add(name, data)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	if handleError(ss.settle(ss.eng.Run()), http.StatusConflict, w) {
		return
	}
	sendJSONReply(ss.reply(true), http.StatusCreated, w)
}

func (srv *Server) list(w http.ResponseWriter, req *http.Request) {
	srv.mu.Lock()
	sessions := make([]*session, 0, len(srv.sessions))
	for _, ss := range srv.sessions {
		sessions = append(sessions, ss)
	}
	srv.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		a, _ := strconv.Atoi(sessions[i].id)
		b, _ := strconv.Atoi(sessions[j].id)
		return a < b
	})

	replies := make([]sessionReply, 0, len(sessions))
	for _, ss := range sessions {
		ss.mu.Lock()
		replies = append(replies, ss.reply(false))
		ss.mu.Unlock()
	}
	sendJSONReply(replies, http.StatusOK, w)
}

func (srv *Server) remove(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	srv.mu.Lock()
	_, ok := srv.sessions[id]
	delete(srv.sessions, id)
	srv.mu.Unlock()

	if !ok {
		handleError(fmt.Errorf("no session %s", id), http.StatusNotFound, w)
		return
	}

	logger.Logf(logger.Allow, "control", "session %s: ended", id)
	sendReply([]byte(fmt.Sprintf("session %s ended", id)), http.StatusOK, w)
}

func (srv *Server) search(w http.ResponseWriter, req *http.Request) {
	if srv.Library == nil {
		handleError(errors.New("no library"), http.StatusNotFound, w)
		return
	}

	max := 100
	if m := getArg(req, "max"); m != "" {
		var err error
		max, err = strconv.Atoi(m)
		if err != nil || max < 1 {
			handleError(fmt.Errorf("invalid max: %s", m), http.StatusBadRequest, w)
			return
		}
	}

	res, err := srv.Library.Search(getArg(req, "q"), max)
	if handleError(err, http.StatusBadRequest, w) {
		return
	}
	sendJSONReply(res, http.StatusOK, w)
}
