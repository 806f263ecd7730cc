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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/avwohl/zwalker-sub001/control"
	"github.com/avwohl/zwalker-sub001/disassembly"
	"github.com/avwohl/zwalker-sub001/easyterm"
	"github.com/avwohl/zwalker-sub001/inspect"
	"github.com/avwohl/zwalker-sub001/library"
	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/modalflag"
	"github.com/avwohl/zwalker-sub001/playmode"
	"github.com/avwohl/zwalker-sub001/prefs"
	"github.com/avwohl/zwalker-sub001/recorder"
	"github.com/avwohl/zwalker-sub001/resources"
	"github.com/avwohl/zwalker-sub001/statsview"
	"github.com/avwohl/zwalker-sub001/storyloader"
	"github.com/avwohl/zwalker-sub001/version"
	"github.com/avwohl/zwalker-sub001/zmachine"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/preferences"
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch returns the value to use with os.Exit()
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("PLAY", "INFO", "WORDS", "TREE", "GRAPH", "DISASM", "SERVE", "VERSION")

	cmdlinePrefs := md.AddString("prefs", "", "preferences for this run: \"key::value; key::value\"")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	if *log {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		defer statsview.Launch(output)()
	}

	if *cmdlinePrefs != "" {
		prefs.PushCommandLineStack(*cmdlinePrefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Fprintf(output, "* unused preferences: %s\n", unused)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch md.Mode() {
	case "PLAY":
		err = play(ctx, md)

	case "INFO":
		err = info(md)

	case "WORDS":
		err = words(md)

	case "TREE":
		err = tree(md)

	case "GRAPH":
		err = graph(md)

	case "DISASM":
		err = disasm(md)

	case "SERVE":
		err = serve(ctx, md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// storyArgs adds the flags common to every mode that loads a story.
type storyArgs struct {
	hash  *string
	entry *string
}

func addStoryArgs(md *modalflag.Modes) storyArgs {
	return storyArgs{
		hash:  md.AddString("hash", "", "expected SHA-1 hash of the story file"),
		entry: md.AddString("entry", "", "name of the story file inside an archive"),
	}
}

// load the story named by the single remaining argument.
func (sa storyArgs) load(md *modalflag.Modes) (*storyloader.Loader, *zmachine.Engine, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil, fmt.Errorf("story file required for %s mode", md)
	case 1:
	default:
		return nil, nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	ld := storyloader.NewLoader(md.GetArg(0))
	ld.Hash = *sa.hash
	ld.Entry = *sa.entry
	if err := ld.Load(); err != nil {
		return nil, nil, err
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, nil, err
	}

	eng, err := zmachine.Load(ld.Data, p)
	if err != nil {
		return nil, nil, err
	}

	return &ld, eng, nil
}

// settle runs the story until it first waits for input. Output is discarded.
func settle(eng *zmachine.Engine) error {
	_, err := eng.Run()
	return err
}

func play(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	sa := addStoryArgs(md)
	saveFile := md.AddString("save", "", "file used by save and restore (default in the resources directory)")
	record := md.AddBool("record", false, "record inputs to a file")
	recording := md.AddString("recording", "", "name of the recording file")
	playback := md.AddString("playback", "", "play back a recording before accepting input")
	useTerm := md.AddBool("term", true, "read single key presses from the terminal")
	undo := md.AddInt("undo", 16, "number of states kept for the /undo command")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ld, eng, err := sa.load(md)
	if err != nil {
		return err
	}

	opts := playmode.Options{
		Input:     os.Stdin,
		Output:    os.Stdout,
		UndoLimit: *undo,
		SaveFile:  *saveFile,
	}

	if opts.SaveFile == "" {
		opts.SaveFile, err = resources.JoinPath("saves", ld.ShortName()+".qzl")
		if err != nil {
			return err
		}
	}

	if *record || *playback != "" {
		// recordings are only repeatable if random numbers are predictable
		eng.Instance.Random.ZeroSeed = true
		eng.Instance.Random.Reseed()
	}

	if *playback != "" {
		opts.Playback, err = recorder.NewPlayback(*playback)
		if err != nil {
			return err
		}
		if err := opts.Playback.CheckStory(ld.Hash); err != nil {
			return err
		}
	}

	if *record {
		if *recording == "" {
			n := time.Now()
			*recording = fmt.Sprintf("recording_%s_%04d%02d%02d_%02d%02d%02d", ld.ShortName(),
				n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())
		}
		opts.Recorder, err = recorder.NewRecorder(*recording, ld.ShortName(), ld.Hash)
		if err != nil {
			return err
		}
		defer func() {
			if err := opts.Recorder.End(); err != nil {
				logger.Log(logger.Allow, "zwalker", err)
			}
			fmt.Printf("! %s: %s\n", opts.Recorder, *recording)
		}()
	}

	if *useTerm {
		tty, err := easyterm.Open("/dev/tty")
		if err != nil {
			logger.Logf(logger.Allow, "zwalker", "no terminal for key presses: %v", err)
		} else {
			defer tty.Close()
			opts.Keys = tty
		}
	}

	err = playmode.Play(ctx, eng, opts)
	fmt.Println()
	return err
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	sa := addStoryArgs(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ld, eng, err := sa.load(md)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s\n", ld.ShortName())
	fmt.Fprintf(md.Output, "sha-1 %s\n", ld.Hash)
	fmt.Fprintf(md.Output, "%s\n", eng.Header)

	if eng.Header.Checksum != 0 {
		if sum := header.Checksum(ld.Data, eng.Header.FileLength); sum != eng.Header.Checksum {
			fmt.Fprintf(md.Output, "checksum mismatch: calculated %#04x\n", sum)
		} else {
			fmt.Fprintln(md.Output, "checksum ok")
		}
	}

	fmt.Fprintf(md.Output, "%d objects\n", eng.CPU.Objects().Count())
	fmt.Fprintf(md.Output, "%d dictionary words\n", eng.CPU.Dictionary().Count())

	if err := settle(eng); err != nil {
		return err
	}

	in := inspect.NewInspector(eng)
	fmt.Fprintf(md.Output, "%d rooms\n", len(in.Rooms()))
	if n := in.Player(); n != 0 {
		fmt.Fprintf(md.Output, "player: %s\n", in.Object(n))
	}
	if n := in.CurrentRoom(); n != 0 {
		fmt.Fprintf(md.Output, "current room: %s\n", in.Object(n))
	}

	return nil
}

func words(md *modalflag.Modes) error {
	md.NewMode()

	sa := addStoryArgs(md)
	categorise := md.AddBool("categorise", false, "group words by part of speech")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	_, eng, err := sa.load(md)
	if err != nil {
		return err
	}

	in := inspect.NewInspector(eng)

	if !*categorise {
		for _, w := range in.Words() {
			fmt.Fprintln(md.Output, w)
		}
		return nil
	}

	c := in.Categorise()
	for _, g := range []struct {
		name  string
		words []string
	}{
		{"verbs", c.Verbs},
		{"nouns", c.Nouns},
		{"adjectives", c.Adjectives},
		{"directions", c.Directions},
		{"prepositions", c.Prepositions},
		{"other", c.Other},
	} {
		fmt.Fprintf(md.Output, "%s (%d): %v\n", g.name, len(g.words), g.words)
	}

	return nil
}

func tree(md *modalflag.Modes) error {
	md.NewMode()

	sa := addStoryArgs(md)
	run := md.AddBool("run", true, "run the story until it waits for input")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	_, eng, err := sa.load(md)
	if err != nil {
		return err
	}

	if *run {
		if err := settle(eng); err != nil {
			return err
		}
	}

	return inspect.NewInspector(eng).WriteTree(md.Output)
}

func graph(md *modalflag.Modes) error {
	md.NewMode()

	sa := addStoryArgs(md)
	state := md.AddBool("state", false, "graph the interpreter state rather than the object tree")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	_, eng, err := sa.load(md)
	if err != nil {
		return err
	}

	if err := settle(eng); err != nil {
		return err
	}

	in := inspect.NewInspector(eng)
	if *state {
		return in.GraphState(md.Output)
	}
	in.Graph(md.Output)
	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	sa := addStoryArgs(md)
	routine := md.AddString("routine", "", "packed address of routine to disassemble (default is the start of the story)")
	addr := md.AddString("addr", "", "byte address of code that is not a routine")
	bytecode := md.AddBool("bytecode", false, "include the bytes of each instruction")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *routine != "" && *addr != "" {
		return fmt.Errorf("-routine and -addr cannot be used together")
	}

	_, eng, err := sa.load(md)
	if err != nil {
		return err
	}

	var dsm *disassembly.Disassembly

	switch {
	case *routine != "":
		v, err := strconv.ParseUint(*routine, 0, 16)
		if err != nil {
			return fmt.Errorf("routine: %w", err)
		}
		dsm, err = disassembly.FromPacked(eng, uint16(v))
		if err != nil {
			return err
		}
	case *addr != "":
		v, err := strconv.ParseUint(*addr, 0, 32)
		if err != nil {
			return fmt.Errorf("addr: %w", err)
		}
		dsm, err = disassembly.FromCode(eng, uint32(v))
		if err != nil {
			return err
		}
	default:
		dsm, err = disassembly.FromStart(eng)
		if err != nil {
			return err
		}
	}

	return dsm.Write(md.Output, disassembly.WriteAttr{ByteCode: *bytecode})
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	deps := md.AddBool("deps", false, "list module dependencies")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	inf := version.Version()
	fmt.Fprintln(md.Output, inf)
	if inf.GoVersion != "" {
		fmt.Fprintf(md.Output, "built with %s\n", inf.GoVersion)
	}
	if *deps {
		for _, d := range inf.Deps {
			fmt.Fprintln(md.Output, d)
		}
	}

	return nil
}

func serve(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	addr := md.AddString("addr", "localhost:8080", "address to listen on")
	files := md.AddBool("files", false, "allow sessions to load stories from files and URLs")
	quiet := md.AddBool("quiet", false, "do not log errors from the stories run by sessions")
	lib := md.AddString("library", "", "directory of stories that sessions can be created from")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	pr, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	srv, err := control.NewServer(pr)
	if err != nil {
		return err
	}
	srv.AllowFiles = *files
	srv.QuietSessions = *quiet

	if *lib != "" {
		srv.Library, err = library.NewLibrary(*lib)
		if err != nil {
			return err
		}
		if err := srv.Library.Start(5 * time.Second); err != nil {
			return err
		}
		defer srv.Library.Stop()
		fmt.Fprintf(md.Output, "! library: %s\n", srv.Library)
	}

	return srv.ListenAndServe(ctx, *addr)
}
