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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/avwohl/zwalker-sub001/logger"
)

// dirWatcher watches a directory tree for changes. Directories added to the
// tree are included in the watch.
type dirWatcher struct {
	watcher *fsnotify.Watcher
	release chan bool
	running bool
}

func newDirWatcher(dir string) (*dirWatcher, error) {
	dw := &dirWatcher{
		release: make(chan bool),
	}

	var err error
	dw.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return dw.addDir(path)
		}
		return nil
	})
	if err != nil {
		dw.watcher.Close()
		return nil, fmt.Errorf("library: %w", err)
	}

	return dw, nil
}

// start calling the handler for every change in the directory tree. The flush
// function is called once there have been no changes for the backoff
// duration. Both functions are called from the same goroutine.
func (dw *dirWatcher) start(backoff time.Duration, handler func(fsnotify.Event), flush func() error) error {
	if dw.watcher == nil {
		return fmt.Errorf("library: directory watcher has been stopped")
	}
	if dw.running {
		return fmt.Errorf("library: directory watcher already started")
	}
	dw.running = true

	go func() {
		timer := time.NewTimer(backoff)
		timer.Stop()

		for {
			select {
			case evt, ok := <-dw.watcher.Events:
				if !ok {
					timer.Stop()
					dw.release <- true
					return
				}
				timer.Stop()
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if fi, err := os.Lstat(evt.Name); err == nil && fi.IsDir() {
						_ = dw.addDir(evt.Name)
					}
				}
				handler(evt)
				timer.Reset(backoff)

			case err, ok := <-dw.watcher.Errors:
				if ok {
					logger.Logf(logger.Allow, "library", "watcher: %v", err)
				}

			case <-timer.C:
				if err := flush(); err != nil {
					logger.Logf(logger.Allow, "library", "flush: %v", err)
				}
			}
		}
	}()

	return nil
}

// stop the watcher and wait for it to finish. A stopped watcher cannot be
// started again.
func (dw *dirWatcher) stop() {
	if dw.watcher == nil {
		return
	}
	if err := dw.watcher.Close(); err != nil {
		logger.Logf(logger.Allow, "library", "watcher: %v", err)
	}
	if dw.running {
		<-dw.release
	}
	dw.watcher = nil
	dw.running = false
}

func (dw *dirWatcher) addDir(path string) error {
	if err := dw.watcher.Add(path); err != nil {
		logger.Logf(logger.Allow, "library", "cannot watch %s: %v", path, err)
		return err
	}
	return nil
}
