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

package recorder

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
)

// Hash returns the hash used to compare the output of a story.
func Hash(output string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(output)))
}

// Recorder writes inputs and the hash of the resulting output to a file.
type Recorder struct {
	output    io.WriteCloser
	storyName string
	storyHash string
	count     int
}

// NewRecorder creates the recording file and writes the header. The story
// name and hash are normally those of the storyloader.Loader used to load
// the story.
func NewRecorder(filename string, storyName string, storyHash string) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	rec := &Recorder{
		output:    f,
		storyName: storyName,
		storyHash: storyHash,
	}

	if err := rec.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

func (rec *Recorder) String() string {
	return fmt.Sprintf("%d inputs recorded for %s", rec.count, rec.storyName)
}

// Record an input and the output the story produced in response to it.
func (rec *Recorder) Record(kind Kind, data string, output string) error {
	_, err := io.WriteString(rec.output, formatEntry(kind, Hash(output), data)+"\n")
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	rec.count++
	return nil
}

// End the recording and close the file.
func (rec *Recorder) End() error {
	if err := rec.output.Close(); err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}
