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

package storyloader_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/avwohl/zwalker-sub001/storyloader"
	"github.com/avwohl/zwalker-sub001/test"
)

// not a real story file but the loader does not look inside the data
var story = []byte{0x03, 0x00, 0x00, 0x01, 'z', 'w', 'a', 'l', 'k', 'e', 'r'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))
	return fn
}

func zipped(t *testing.T, names ...string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	for _, n := range names {
		w, err := zw.Create(n)
		test.DemandSuccess(t, err)
		if filepath.Ext(n) == ".z3" {
			_, err = w.Write(story)
		} else {
			_, err = w.Write([]byte("readme"))
		}
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, zw.Close())
	return b.Bytes()
}

func TestFile(t *testing.T) {
	ld := storyloader.NewLoader("  " + writeFile(t, "zork.z3", story) + " ")
	test.ExpectFailure(t, ld.HasLoaded())

	err := ld.Load()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectSliceEquality(t, ld.Data, story)
	test.ExpectEquality(t, ld.ShortName(), "zork")
	test.ExpectEquality(t, ld.Entry, "")
	test.ExpectEquality(t, len(ld.Hash), 40)

	// a second loader with the hash from the first succeeds
	other := storyloader.NewLoader(ld.Filename)
	other.Hash = ld.Hash
	test.ExpectSuccess(t, other.Load())
}

func TestMissingFile(t *testing.T) {
	ld := storyloader.NewLoader(filepath.Join(t.TempDir(), "missing.z5"))
	test.ExpectFailure(t, ld.Load())
	test.ExpectFailure(t, ld.HasLoaded())
}

func TestEmptyFile(t *testing.T) {
	ld := storyloader.NewLoader(writeFile(t, "empty.z5", nil))
	err := ld.Load()
	test.ExpectSuccess(t, errors.Is(err, storyloader.ErrEmpty))
}

func TestHashMismatch(t *testing.T) {
	ld := storyloader.NewLoader(writeFile(t, "zork.z3", story))
	ld.Hash = "0000000000000000000000000000000000000000"
	err := ld.Load()
	test.ExpectSuccess(t, errors.Is(err, storyloader.ErrHash))
	test.ExpectFailure(t, ld.HasLoaded())
}

func TestScheme(t *testing.T) {
	ld := storyloader.NewLoader("ftp://example.com/zork.z3")
	err := ld.Load()
	test.ExpectSuccess(t, errors.Is(err, storyloader.ErrScheme))
}

func TestZip(t *testing.T) {
	ld := storyloader.NewLoader(writeFile(t, "zork.zip", zipped(t, "README", "game/zork.z3")))
	test.DemandSuccess(t, ld.Load())
	test.ExpectSliceEquality(t, ld.Data, story)
	test.ExpectEquality(t, ld.Entry, "game/zork.z3")
	test.ExpectEquality(t, ld.ShortName(), "zork")

	// named entry
	ld = storyloader.NewLoader(writeFile(t, "zork.zip", zipped(t, "README", "game/zork.z3")))
	ld.Entry = "README"
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, string(ld.Data), "readme")

	// named entry that does not exist
	ld = storyloader.NewLoader(writeFile(t, "zork.zip", zipped(t, "README", "game/zork.z3")))
	ld.Entry = "planetfall.z3"
	err := ld.Load()
	test.ExpectSuccess(t, errors.Is(err, storyloader.ErrNoStory))

	// no story file extension uses the first entry
	ld = storyloader.NewLoader(writeFile(t, "docs.zip", zipped(t, "README")))
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, ld.Entry, "README")

	// empty archive
	ld = storyloader.NewLoader(writeFile(t, "empty.zip", zipped(t)))
	err = ld.Load()
	test.ExpectFailure(t, err)
}

func TestGzip(t *testing.T) {
	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	gz.Name = "zork.z3"
	_, err := gz.Write(story)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, gz.Close())

	ld := storyloader.NewLoader(writeFile(t, "zork.gz", b.Bytes()))
	test.DemandSuccess(t, ld.Load())
	test.ExpectSliceEquality(t, ld.Data, story)
	test.ExpectEquality(t, ld.Entry, "zork.z3")
}

func TestSevenZipCorrupt(t *testing.T) {
	data := []byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c, 0, 4, 0, 0}
	ld := storyloader.NewLoader(writeFile(t, "zork.7z", data))
	test.ExpectFailure(t, ld.Load())
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zork.z3" {
			http.NotFound(w, r)
			return
		}
		w.Write(story)
	}))
	defer srv.Close()

	ld := storyloader.NewLoader(srv.URL + "/zork.z3")
	test.DemandSuccess(t, ld.Load())
	test.ExpectSliceEquality(t, ld.Data, story)

	ld = storyloader.NewLoader(srv.URL + "/missing.z3")
	test.ExpectFailure(t, ld.Load())
}

func TestIsStoryFile(t *testing.T) {
	test.ExpectSuccess(t, storyloader.IsStoryFile("zork1.z3"))
	test.ExpectSuccess(t, storyloader.IsStoryFile("games/TRINITY.Z4"))
	test.ExpectSuccess(t, storyloader.IsStoryFile("infocom.7z"))
	test.ExpectSuccess(t, storyloader.IsStoryFile("story.dat.gz"))
	test.ExpectFailure(t, storyloader.IsStoryFile("readme.txt"))
	test.ExpectFailure(t, storyloader.IsStoryFile("z3"))
}
