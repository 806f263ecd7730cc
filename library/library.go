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

package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/storyloader"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("not in library")
	ErrNoTerm   = errors.New("no search term")
)

// punctuation that is replaced by spaces in the indexed name. filenames like
// "zork_1-r88.z3" then index as separate words
const replaceChars = "`~!@#$%^&*_-+=()[]{}|;:',.<>?"

var nameCleaner *strings.Replacer

func init() {
	rep := make([]string, 2*len(replaceChars))
	for i, c := range replaceChars {
		rep[i*2] = string(c)
		rep[i*2+1] = " "
	}
	nameCleaner = strings.NewReplacer(rep...)
}

// Entry is the indexed description of a story file.
type Entry struct {
	Name    string `json:"name"`
	Version int    `json:"version,omitempty"`
	Release int    `json:"release,omitempty"`
	Serial  string `json:"serial,omitempty"`
}

// Library is a searchable catalogue of story files.
type Library struct {
	root  string
	index bleve.Index

	// batch is only used by Start() and then by the watcher goroutine
	crit       sync.Mutex
	batch      *bleve.Batch
	batchCount int

	watcher *dirWatcher
}

// flush pending changes once this many have accumulated
const batchSize = 100

// NewLibrary creates an empty library for the directory tree. The library is
// populated by Start().
func NewLibrary(root string) (*Library, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("library: %s is not a directory", root)
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	lib := &Library{
		root:  abs,
		index: idx,
	}
	lib.batch = lib.index.NewBatch()

	return lib, nil
}

func (lib *Library) String() string {
	n, _ := lib.index.DocCount()
	return fmt.Sprintf("%d stories in %s", n, lib.root)
}

// Start indexes the story files in the library and starts watching for
// changes. Changes are indexed once there have been no further changes for
// the backoff duration.
func (lib *Library) Start(backoff time.Duration) error {
	start := time.Now()

	err := filepath.WalkDir(lib.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			lib.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("library: %w", err)
	}

	if err := lib.flush(); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "library", "%s (indexed in %v)", lib, time.Since(start).Round(time.Millisecond))

	lib.watcher, err = newDirWatcher(lib.root)
	if err != nil {
		return err
	}
	return lib.watcher.start(backoff, lib.watchEvent, lib.flush)
}

// Stop watching for changes and close the index.
func (lib *Library) Stop() {
	if lib.watcher != nil {
		lib.watcher.stop()
	}
	if err := lib.index.Close(); err != nil {
		logger.Logf(logger.Allow, "library", "%v", err)
	}
}

func (lib *Library) watchEvent(evt fsnotify.Event) {
	switch {
	case evt.Op&fsnotify.Create == fsnotify.Create, evt.Op&fsnotify.Write == fsnotify.Write:
		if fi, err := os.Stat(evt.Name); err == nil && !fi.IsDir() {
			lib.add(evt.Name)
		}
	case evt.Op&fsnotify.Remove == fsnotify.Remove, evt.Op&fsnotify.Rename == fsnotify.Rename:
		lib.remove(evt.Name)
	}
}

// describe loads the story file to read its header. Files that can't be
// loaded are still indexed by name.
func describe(path string, id string) Entry {
	e := Entry{
		Name: nameCleaner.Replace(id),
	}

	ld := storyloader.NewLoader(path)
	if err := ld.Load(); err != nil {
		logger.Logf(logger.Allow, "library", "%s: %v", id, err)
		return e
	}

	h, err := header.Parse(ld.Data)
	if err != nil {
		logger.Logf(logger.Allow, "library", "%s: %v", id, err)
		return e
	}

	e.Version = int(h.Version)
	e.Release = int(h.Release)
	e.Serial = h.Serial
	return e
}

func (lib *Library) add(path string) {
	if !storyloader.IsStoryFile(path) {
		return
	}
	id := lib.relative(path)

	lib.crit.Lock()
	defer lib.crit.Unlock()

	if err := lib.batch.Index(id, describe(path, id)); err != nil {
		logger.Logf(logger.Allow, "library", "%s: %v", id, err)
		return
	}
	lib.batched()
}

func (lib *Library) remove(path string) {
	lib.crit.Lock()
	defer lib.crit.Unlock()
	lib.batch.Delete(lib.relative(path))
	lib.batched()
}

// batched must be called with the critical section locked.
func (lib *Library) batched() {
	lib.batchCount++
	if lib.batchCount > batchSize {
		if err := lib.flushLocked(); err != nil {
			logger.Logf(logger.Allow, "library", "%v", err)
		}
	}
}

func (lib *Library) flush() error {
	lib.crit.Lock()
	defer lib.crit.Unlock()
	return lib.flushLocked()
}

func (lib *Library) flushLocked() error {
	if lib.batchCount == 0 {
		return nil
	}
	if err := lib.index.Batch(lib.batch); err != nil {
		return fmt.Errorf("library: %w", err)
	}
	lib.batch = lib.index.NewBatch()
	lib.batchCount = 0
	return nil
}

func (lib *Library) relative(path string) string {
	rel, err := filepath.Rel(lib.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// SearchResult is the result of a search of the library.
type SearchResult struct {
	Hits     []string `json:"hits"`
	Total    uint64   `json:"total"`
	Complete bool     `json:"complete"`
}

// Search the library. At most max hits are returned. Complete is false if
// there were more hits.
func (lib *Library) Search(term string, max int) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("library: %w", ErrNoTerm)
	}

	query := bleve.NewQueryStringQuery(term)
	req := bleve.NewSearchRequestOptions(query, max+1, 0, false)
	res, err := lib.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	sr := &SearchResult{
		Hits:     make([]string, len(res.Hits)),
		Total:    res.Total,
		Complete: true,
	}
	for i, h := range res.Hits {
		sr.Hits[i] = h.ID
	}

	if len(sr.Hits) > max {
		sr.Hits = sr.Hits[:max]
		sr.Complete = false
	}

	return sr, nil
}

// Path returns the filename of a story in the library.
func (lib *Library) Path(id string) (string, error) {
	doc, err := lib.index.Document(id)
	if err != nil {
		return "", fmt.Errorf("library: %w", err)
	}
	if doc == nil {
		return "", fmt.Errorf("library: %s: %w", id, ErrNotFound)
	}
	return filepath.Join(lib.root, filepath.FromSlash(id)), nil
}
