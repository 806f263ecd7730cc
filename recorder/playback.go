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
	"fmt"
	"os"
	"strings"
)

// Entry is a single input in a recording.
type Entry struct {
	Kind Kind
	Data string
	Hash string

	// the line in the recording file the entry appears
	line int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %q", e.Kind, e.Data)
}

// Playback is used to repeat the inputs in a previously recorded file.
type Playback struct {
	StoryName string
	StoryHash string

	sequence []Entry
	seqCt    int
}

// NewPlayback reads the recording in the named file.
func NewPlayback(filename string) (*Playback, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	return ParsePlayback(string(data))
}

// ParsePlayback parses the contents of a recording.
func ParsePlayback(data string) (*Playback, error) {
	plb := &Playback{}

	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	if err := plb.readHeader(lines); err != nil {
		return nil, err
	}

	for i := numHeaderLines; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		e, err := parseEntry(lines[i], i+1)
		if err != nil {
			return nil, err
		}
		plb.sequence = append(plb.sequence, e)
	}

	return plb, nil
}

func (plb *Playback) String() string {
	if len(plb.sequence) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", plb.seqCt, len(plb.sequence), 100*float64(plb.seqCt)/float64(len(plb.sequence)))
}

// Len returns the number of inputs in the recording.
func (plb *Playback) Len() int {
	return len(plb.sequence)
}

// CheckStory returns ErrStory if the hash does not match the hash of the story
// the recording was made with.
func (plb *Playback) CheckStory(hash string) error {
	if plb.StoryHash != "" && hash != "" && plb.StoryHash != hash {
		return fmt.Errorf("playback: %s: %w", plb.StoryName, ErrStory)
	}
	return nil
}

// Next returns the next input in the recording. Returns false when the
// recording has been exhausted.
func (plb *Playback) Next() (Entry, bool) {
	if plb.seqCt >= len(plb.sequence) {
		return Entry{}, false
	}
	e := plb.sequence[plb.seqCt]
	plb.seqCt++
	return e, true
}

// Check the output produced in response to the entry.
func (plb *Playback) Check(e Entry, output string) error {
	if Hash(output) != e.Hash {
		return fmt.Errorf("playback: %s at line %d: %w", e, e.line, ErrDivergence)
	}
	return nil
}
