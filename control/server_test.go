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

package control_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avwohl/zwalker-sub001/control"
	"github.com/avwohl/zwalker-sub001/library"
	"github.com/avwohl/zwalker-sub001/test"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
	"github.com/avwohl/zwalker-sub001/zmachine/storytest"
)

func roomStory() []byte {
	return storytest.Room().Image()
}

type reply struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Output string `json:"output"`
	Status struct {
		Location string `json:"location"`
	} `json:"status"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	srv, err := control.NewServer(prefs)
	test.DemandSuccess(t, err)
	return httptest.NewServer(srv)
}

func do(t *testing.T, method string, url string, body []byte) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	test.DemandSuccess(t, err)
	resp, err := http.DefaultClient.Do(req)
	test.DemandSuccess(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	test.DemandSuccess(t, err)
	return resp.StatusCode, b
}

func decode(t *testing.T, b []byte) reply {
	t.Helper()
	var r reply
	test.DemandSuccess(t, json.Unmarshal(b, &r))
	return r
}

func TestSession(t *testing.T) {
	ts := newServer(t)
	defer ts.Close()

	code, b := do(t, http.MethodPost, ts.URL+"/session?name=room", roomStory())
	test.DemandEquality(t, code, http.StatusCreated)
	r := decode(t, b)
	test.ExpectEquality(t, r.ID, "1")
	test.ExpectEquality(t, r.Output, ">")
	test.ExpectEquality(t, r.State, "awaiting input")
	test.ExpectEquality(t, r.Status.Location, "Kitchen")
	session := ts.URL + "/session/" + r.ID

	// snapshot before a command that will be judged as blocked
	code, snap := do(t, http.MethodGet, session+"/snapshot", nil)
	test.DemandEquality(t, code, http.StatusOK)

	code, b = do(t, http.MethodPost, session+"/input", []byte("north\n"))
	test.DemandEquality(t, code, http.StatusOK)
	test.ExpectEquality(t, decode(t, b).Output, "You can't go that way.\n>")

	code, _ = do(t, http.MethodPut, session+"/snapshot", snap)
	test.DemandEquality(t, code, http.StatusOK)

	code, b = do(t, http.MethodPost, session+"/input", []byte("inventory"))
	test.DemandEquality(t, code, http.StatusOK)
	test.ExpectEquality(t, decode(t, b).Output, "You have a lamp.\n>")

	// nothing left to collect
	code, b = do(t, http.MethodGet, session+"/output", nil)
	test.DemandEquality(t, code, http.StatusOK)
	test.ExpectEquality(t, decode(t, b).Output, "")

	code, b = do(t, http.MethodGet, session+"/tree", nil)
	test.DemandEquality(t, code, http.StatusOK)
	test.ExpectEquality(t, string(b), "[1] Kitchen\n")

	code, b = do(t, http.MethodGet, session+"/words", nil)
	test.DemandEquality(t, code, http.StatusOK)
	test.ExpectSuccess(t, strings.Contains(string(b), `"verbs":["invent"]`))

	code, _ = do(t, http.MethodDelete, session, nil)
	test.ExpectEquality(t, code, http.StatusOK)
	code, _ = do(t, http.MethodGet, session, nil)
	test.ExpectEquality(t, code, http.StatusNotFound)
	code, _ = do(t, http.MethodDelete, session, nil)
	test.ExpectEquality(t, code, http.StatusNotFound)
}

func TestSeparateSessions(t *testing.T) {
	ts := newServer(t)
	defer ts.Close()

	_, b := do(t, http.MethodPost, ts.URL+"/session", roomStory())
	a := decode(t, b)
	_, b = do(t, http.MethodPost, ts.URL+"/session", roomStory())
	c := decode(t, b)
	test.ExpectInequality(t, a.ID, c.ID)

	_, b = do(t, http.MethodPost, ts.URL+"/session/"+a.ID+"/input", []byte("north"))
	test.ExpectEquality(t, decode(t, b).Output, "You can't go that way.\n>")

	code, b := do(t, http.MethodGet, ts.URL+"/session/"+c.ID+"/output", nil)
	test.ExpectEquality(t, code, http.StatusOK)
	test.ExpectEquality(t, decode(t, b).Output, "")

	code, b = do(t, http.MethodGet, ts.URL+"/session", nil)
	test.ExpectEquality(t, code, http.StatusOK)
	var list []reply
	test.DemandSuccess(t, json.Unmarshal(b, &list))
	test.DemandEquality(t, len(list), 2)
	test.ExpectEquality(t, list[0].ID, "1")
	test.ExpectEquality(t, list[1].ID, "2")
}

func TestBadRequests(t *testing.T) {
	ts := newServer(t)
	defer ts.Close()

	// not a story file
	code, _ := do(t, http.MethodPost, ts.URL+"/session", []byte("hello"))
	test.ExpectEquality(t, code, http.StatusUnprocessableEntity)

	// loading from files is not allowed by default
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/session", strings.NewReader(`{"story":"zork1.z3"}`))
	test.DemandSuccess(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusForbidden)

	_, b := do(t, http.MethodPost, ts.URL+"/session", roomStory())
	session := ts.URL + "/session/" + decode(t, b).ID

	// not a snapshot
	code, _ = do(t, http.MethodPut, session+"/snapshot", []byte("junk"))
	test.ExpectEquality(t, code, http.StatusUnprocessableEntity)

	// the story is not waiting for a key
	code, _ = do(t, http.MethodPost, session+"/key", []byte("y"))
	test.ExpectEquality(t, code, http.StatusConflict)

	code, _ = do(t, http.MethodGet, ts.URL+"/session/99/output", nil)
	test.ExpectEquality(t, code, http.StatusNotFound)
}

func TestLibrary(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "room.z3"), roomStory(), 0o644))

	lib, err := library.NewLibrary(dir)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, lib.Start(time.Second))
	defer lib.Stop()

	prefs, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	srv, err := control.NewServer(prefs)
	test.DemandSuccess(t, err)
	srv.Library = lib
	ts := httptest.NewServer(srv)
	defer ts.Close()

	code, b := do(t, http.MethodGet, ts.URL+"/library?q=room", nil)
	test.DemandEquality(t, code, http.StatusOK)
	var res library.SearchResult
	test.DemandSuccess(t, json.Unmarshal(b, &res))
	test.DemandEquality(t, len(res.Hits), 1)
	test.ExpectEquality(t, res.Hits[0], "room.z3")

	code, _ = do(t, http.MethodGet, ts.URL+"/library", nil)
	test.ExpectEquality(t, code, http.StatusBadRequest)
	code, _ = do(t, http.MethodGet, ts.URL+"/library?q=room&max=none", nil)
	test.ExpectEquality(t, code, http.StatusBadRequest)

	create := func(body string) (int, []byte) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/session", strings.NewReader(body))
		test.DemandSuccess(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		test.DemandSuccess(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		test.DemandSuccess(t, err)
		return resp.StatusCode, b
	}

	// library stories are allowed even though files are not
	code, b = create(`{"library": "room.z3"}`)
	test.DemandEquality(t, code, http.StatusCreated)
	test.ExpectEquality(t, decode(t, b).Output, ">")

	code, _ = create(`{"library": "zork1.z3"}`)
	test.ExpectEquality(t, code, http.StatusNotFound)

	code, _ = create(`{"story": "` + filepath.Join(dir, "room.z3") + `"}`)
	test.ExpectEquality(t, code, http.StatusForbidden)

	srv.AllowFiles = true
	code, _ = create(`{"story": "` + filepath.Join(dir, "room.z3") + `"}`)
	test.ExpectEquality(t, code, http.StatusCreated)
}

func TestNoLibrary(t *testing.T) {
	ts := newServer(t)
	defer ts.Close()

	code, _ := do(t, http.MethodGet, ts.URL+"/library?q=room", nil)
	test.ExpectEquality(t, code, http.StatusNotFound)
}
