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

package playmode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/avwohl/zwalker-sub001/easyterm"
	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/recorder"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/cpu"
	"github.com/avwohl/zwalker-sub001/zmachine/snapshot"
)

// KeyReader is the source of single key presses. Satisfied by
// easyterm.Terminal.
type KeyReader interface {
	CBreakMode() error
	CanonicalMode() error
	ReadKey() (easyterm.Key, error)
}

// Options for Play().
type Options struct {
	// line input and story output. both are required
	Input  io.Reader
	Output io.Writer

	// key presses for read_char. if nil the first character of a line of
	// input is used
	Keys KeyReader

	// file used by the save and restore instructions. if empty the story is
	// told that saving and restoring has failed
	SaveFile string

	// the number of states kept for the /undo command
	UndoLimit int

	// the length of one tenth of a second for timed input. zero means real
	// time
	Tenth time.Duration

	// optional recording of inputs and playback of a previous recording
	Recorder *recorder.Recorder
	Playback *recorder.Playback
}

type readResult struct {
	text string
	key  easyterm.Key
	err  error
}

type playmode struct {
	eng  *zmachine.Engine
	opts Options

	lines *bufio.Reader

	// a read that has been requested but not yet completed. timed input can
	// leave a read outstanding when the story stops waiting
	outstanding chan readResult

	// states before each line of input
	history *snapshot.History

	quit bool
}

// errQuit ends play without an error.
var errQuit = errors.New("quit")

// Play runs the story until it halts, the input is exhausted, the /quit
// command is given or the context is cancelled.
func Play(ctx context.Context, eng *zmachine.Engine, opts Options) error {
	if opts.Tenth == 0 {
		opts.Tenth = 100 * time.Millisecond
	}

	pl := &playmode{
		eng:     eng,
		opts:    opts,
		lines:   bufio.NewReader(opts.Input),
		history: snapshot.NewHistory(opts.UndoLimit),
	}

	out, err := eng.Run()
	pl.write(out)

	for err == nil {
		switch eng.State() {
		case cpu.Halted:
			return nil
		case cpu.AwaitingSave:
			out, err = pl.save()
		case cpu.AwaitingRestore:
			out, err = pl.restore()
		case cpu.AwaitingInput:
			out, err = pl.input(ctx)
		default:
			out, err = eng.Run()
		}
		pl.write(out)
	}

	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (pl *playmode) write(out string) {
	if out == "" {
		return
	}
	if _, err := io.WriteString(pl.opts.Output, out); err != nil {
		logger.Logf(logger.Allow, "playmode", "%v", err)
	}
}

func (pl *playmode) save() (string, error) {
	if pl.opts.SaveFile == "" {
		return pl.eng.CompleteSave(false)
	}
	err := os.WriteFile(pl.opts.SaveFile, pl.eng.PendingSave(), 0o644)
	if err != nil {
		logger.Logf(logger.Allow, "playmode", "save: %v", err)
	}
	return pl.eng.CompleteSave(err == nil)
}

func (pl *playmode) restore() (string, error) {
	var data []byte
	if pl.opts.SaveFile != "" {
		var err error
		data, err = os.ReadFile(pl.opts.SaveFile)
		if err != nil {
			logger.Logf(logger.Allow, "playmode", "restore: %v", err)
		}
	}

	out, err := pl.eng.CompleteRestore(data)
	if err != nil && !pl.eng.Halted() {
		// the story has been told that the restore failed
		logger.Logf(logger.Allow, "playmode", "restore: %v", err)
		err = nil
	}
	return out, err
}

func (pl *playmode) input(ctx context.Context) (string, error) {
	p, ok := pl.eng.CPU.Pending()
	if !ok {
		return pl.eng.Run()
	}

	if pl.opts.Playback != nil {
		if e, ok := pl.opts.Playback.Next(); ok {
			return pl.playback(e)
		}
		logger.Logf(logger.Allow, "playmode", "playback finished: %s", pl.opts.Playback)
		pl.opts.Playback = nil
	}

	r, out, err := pl.read(ctx, p)
	if err != nil || r == nil {
		return out, err
	}

	if p.Char {
		return pl.key(r.key, r.text)
	}
	return pl.line(r.text)
}

func (pl *playmode) playback(e recorder.Entry) (string, error) {
	var out string
	var err error

	switch e.Kind {
	case recorder.KindKey:
		r := []rune(e.Data)
		if len(r) == 0 {
			r = []rune{'\n'}
		}
		out, err = pl.eng.SendKey(r[0])
	default:
		pl.pushHistory()
		out, err = pl.eng.SendInput(e.Data)
	}
	if err != nil {
		return out, err
	}

	if err := pl.opts.Playback.Check(e, out); err != nil {
		return out, err
	}
	if err := pl.record(e.Kind, e.Data, out); err != nil {
		return out, err
	}
	return out, nil
}

// read waits for input while servicing timed input. A nil result means the
// read was ended by the story.
func (pl *playmode) read(ctx context.Context, p cpu.Pending) (*readResult, string, error) {
	if pl.outstanding == nil {
		pl.outstanding = make(chan readResult, 1)
		go pl.request(pl.outstanding, p.Char)
	}

	var tick <-chan time.Time
	if p.Time > 0 && p.Routine != 0 {
		t := time.NewTicker(time.Duration(p.Time) * pl.opts.Tenth)
		defer t.Stop()
		tick = t.C
	}

	var out strings.Builder
	for {
		select {
		case <-ctx.Done():
			return nil, out.String(), ctx.Err()

		case r := <-pl.outstanding:
			pl.outstanding = nil
			if r.err != nil {
				return nil, out.String(), r.err
			}
			return &r, out.String(), nil

		case <-tick:
			s, err := pl.eng.Tick()
			out.WriteString(s)
			if err != nil || pl.eng.State() != cpu.AwaitingInput {
				return nil, out.String(), err
			}
		}
	}
}

func (pl *playmode) request(c chan readResult, char bool) {
	if char && pl.opts.Keys != nil {
		if err := pl.opts.Keys.CBreakMode(); err != nil {
			c <- readResult{err: err}
			return
		}
		k, err := pl.opts.Keys.ReadKey()
		if err := pl.opts.Keys.CanonicalMode(); err != nil {
			logger.Logf(logger.Allow, "playmode", "%v", err)
		}
		c <- readResult{key: k, err: err}
		return
	}

	s, err := pl.lines.ReadString('\n')
	if err != nil && (s == "" || !errors.Is(err, io.EOF)) {
		c <- readResult{err: err}
		return
	}
	c <- readResult{text: strings.TrimRight(s, "\r\n"), key: easyterm.Key{Code: easyterm.KeyUnknown}}
}

func (pl *playmode) line(text string) (string, error) {
	if strings.HasPrefix(text, "/") {
		return pl.command(text)
	}

	pl.pushHistory()
	out, err := pl.eng.SendInput(text)
	if err != nil {
		return out, err
	}
	return out, pl.record(recorder.KindLine, text, out)
}

// key sends a key press to the story. If there was no key press then the
// first character of the text is used.
func (pl *playmode) key(k easyterm.Key, text string) (string, error) {
	var z uint16

	switch k.Code {
	case easyterm.KeyRune:
		text = string(k.Rune)
	case easyterm.KeyReturn:
		text = "\n"
	case easyterm.KeyTab:
		text = " "
	case easyterm.KeyBackspace:
		z = 8
	case easyterm.KeyEscape:
		z = 27
	case easyterm.KeyUp:
		z = 129
	case easyterm.KeyDown:
		z = 130
	case easyterm.KeyLeft:
		z = 131
	case easyterm.KeyRight:
		z = 132
	case easyterm.KeyInterrupt:
		return "", errQuit
	case easyterm.KeySuspend:
		text = "?"
	default:
		if text == "" {
			text = "\n"
		}
	}

	if z != 0 {
		// key codes are not recorded
		return pl.eng.SendKeyCode(z)
	}

	r := []rune(text)[0]
	out, err := pl.eng.SendKey(r)
	if err != nil {
		return out, err
	}
	return out, pl.record(recorder.KindKey, string(r), out)
}

func (pl *playmode) record(kind recorder.Kind, data string, out string) error {
	if pl.opts.Recorder == nil {
		return nil
	}
	return pl.opts.Recorder.Record(kind, data, out)
}

func (pl *playmode) command(text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/quit":
		return "", errQuit
	case "/undo":
		return pl.undo()
	}
	return fmt.Sprintf("[unknown command %s]\n", text), nil
}
