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

package storyloader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/avwohl/zwalker-sub001/logger"
)

// Sentinel errors returned by Load().
var (
	ErrHash    = errors.New("unexpected hash value")
	ErrScheme  = errors.New("unsupported URL scheme")
	ErrNoStory = errors.New("no story file in archive")
	ErrEmpty   = errors.New("story file is empty")
)

// Loader is used to specify the story file to load.
type Loader struct {
	// filename or URL of the story file.
	Filename string

	// expected hash of the loaded story. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	//
	// if the story is inside an archive then the hash is of the story file
	// and not of the archive
	Hash string

	// name of the story file inside the archive. if the field is empty before
	// Load() then the first file with a recognised extension is used. empty
	// after a Load() if the data did not come from an archive
	Entry string

	// copy of the loaded data. subsequent calls to Load() will do nothing
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The filename is trimmed of leading and trailing spaces.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	name := ld.Filename
	if ld.Entry != "" {
		name = ld.Entry
	}
	name = path.Base(name)
	return strings.TrimSuffix(name, path.Ext(name))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the story data. Filenames with a valid scheme will use that method to
// load the data. Currently supported schemes are HTTP(S) and local files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil && len(u.Scheme) > 1 {
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return fmt.Errorf("storyloader: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("storyloader: %s: %s", ld.Filename, resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("storyloader: %w", err)
		}

	case "file":
		data, err = os.ReadFile(strings.TrimPrefix(ld.Filename, "file://"))
		if err != nil {
			return fmt.Errorf("storyloader: %w", err)
		}

	default:
		return fmt.Errorf("storyloader: %s: %w", scheme, ErrScheme)
	}

	data, err = ld.unarchive(data)
	if err != nil {
		return fmt.Errorf("storyloader: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("storyloader: %s: %w", ld.Filename, ErrEmpty)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return fmt.Errorf("storyloader: %s: %w", ld.Filename, ErrHash)
	}
	ld.Hash = hash
	ld.Data = data

	logger.Logf(logger.Allow, "storyloader", "loaded %s (%d bytes)", ld.ShortName(), len(data))

	return nil
}

// archiveFile is a file inside an archive. the zip and 7-zip packages have
// similar but unrelated file types
type archiveFile struct {
	name string
	open func() (io.ReadCloser, error)
}

// chooseFile from the archive. if an entry has been named then it must be
// present. otherwise the first file with a story file extension is chosen,
// falling back to the first file
func (ld *Loader) chooseFile(files []archiveFile) (archiveFile, error) {
	if len(files) == 0 {
		return archiveFile{}, ErrNoStory
	}

	if ld.Entry != "" {
		for _, f := range files {
			if f.name == ld.Entry || path.Base(f.name) == ld.Entry {
				return f, nil
			}
		}
		return archiveFile{}, fmt.Errorf("%s: %w", ld.Entry, ErrNoStory)
	}

	for _, f := range files {
		if slices.Contains(FileExtensions[:], strings.ToUpper(path.Ext(f.name))) {
			return f, nil
		}
	}

	logger.Logf(logger.Allow, "storyloader", "no story file extension in archive, using %s", files[0].name)
	return files[0], nil
}

func (ld *Loader) readFile(files []archiveFile) ([]byte, error) {
	f, err := ld.chooseFile(files)
	if err != nil {
		return nil, err
	}

	r, err := f.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ld.Entry = f.name

	return io.ReadAll(r)
}

// unarchive returns the story data from inside an archive. data that is not
// an archive is returned unchanged
func (ld *Loader) unarchive(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, magicZip):
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		var files []archiveFile
		for _, f := range zr.File {
			if f.FileInfo().IsDir() {
				continue
			}
			files = append(files, archiveFile{name: f.Name, open: f.Open})
		}
		data, err = ld.readFile(files)
		if err != nil {
			return nil, fmt.Errorf("zip: %w", err)
		}
		return data, nil

	case bytes.HasPrefix(data, magicSevenZip):
		zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		var files []archiveFile
		for _, f := range zr.File {
			if f.FileInfo().IsDir() {
				continue
			}
			files = append(files, archiveFile{name: f.Name, open: f.Open})
		}
		data, err = ld.readFile(files)
		if err != nil {
			return nil, fmt.Errorf("7z: %w", err)
		}
		return data, nil

	case bytes.HasPrefix(data, magicGzip):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		if gz.Name != "" && ld.Entry == "" {
			ld.Entry = gz.Name
		}
		data, err = io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return data, nil
	}

	return data, nil
}
