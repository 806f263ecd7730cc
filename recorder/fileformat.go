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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors.
var (
	ErrFormat     = errors.New("not a recording")
	ErrStory      = errors.New("recording was made with a different story")
	ErrDivergence = errors.New("unexpected output")
)

const magic = "zwalker recording"

// recording file header format
// ----------------------------
//
// zwalker recording
// <story name>
// <story hash>

const (
	lineMagic int = iota
	lineStoryName
	lineStoryHash
	numHeaderLines
)

// entry fields
const (
	fieldKind int = iota
	fieldHash
	fieldData
	numFields
)

const fieldSep = ", "

// Kind of input in the recording.
type Kind string

// List of valid Kind values.
const (
	KindLine Kind = "line"
	KindKey  Kind = "key"
)

func (rec *Recorder) writeHeader() error {
	lines := make([]string, numHeaderLines)
	lines[lineMagic] = magic
	lines[lineStoryName] = rec.storyName
	lines[lineStoryHash] = rec.storyHash

	_, err := io.WriteString(rec.output, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines || lines[lineMagic] != magic {
		return fmt.Errorf("playback: %w", ErrFormat)
	}
	plb.StoryName = lines[lineStoryName]
	plb.StoryHash = lines[lineStoryHash]
	return nil
}

func formatEntry(kind Kind, hash string, data string) string {
	fields := make([]string, numFields)
	fields[fieldKind] = string(kind)
	fields[fieldHash] = hash
	fields[fieldData] = strconv.Quote(data)
	return strings.Join(fields, fieldSep)
}

func parseEntry(s string, line int) (Entry, error) {
	toks := strings.SplitN(s, fieldSep, numFields)
	if len(toks) != numFields {
		return Entry{}, fmt.Errorf("playback: expected %d fields at line %d: %w", numFields, line, ErrFormat)
	}

	e := Entry{
		Kind: Kind(toks[fieldKind]),
		Hash: toks[fieldHash],
		line: line,
	}

	switch e.Kind {
	case KindLine, KindKey:
	default:
		return Entry{}, fmt.Errorf("playback: unknown input kind %q at line %d: %w", e.Kind, line, ErrFormat)
	}

	var err error
	e.Data, err = strconv.Unquote(toks[fieldData])
	if err != nil {
		return Entry{}, fmt.Errorf("playback: %v at line %d: %w", err, line, ErrFormat)
	}

	return e, nil
}
