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
	"encoding/json"
	"io"
	"net/http"

	"github.com/avwohl/zwalker-sub001/logger"
)

// handleError sends the error with the status code. Returns true if there
// was an error.
func handleError(err error, status int, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}
	logger.Logf(logger.Allow, "control", "%d: %v", status, err)
	http.Error(w, err.Error(), status)
	return true
}

func sendReply(body []byte, status int, w http.ResponseWriter) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Logf(logger.Allow, "control", "reply: %v", err)
	}
}

func sendJSONReply(v any, status int, w http.ResponseWriter) {
	body, err := json.Marshal(v)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	sendReply(body, status, w)
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func readBody(r io.ReadCloser) ([]byte, error) {
	defer r.Close()
	return io.ReadAll(r)
}

// getArg returns the value of a query argument.
func getArg(req *http.Request, arg string) string {
	return req.URL.Query().Get(arg)
}
