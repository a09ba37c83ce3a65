// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/pixelterm/main.go
// Summary: Runs the pixel terminal on a tcell screen or headless to PNG.
// Usage: pixelterm [-driver tcell|png] [-source keyboard|stdin|cmd|file|replay] ...
// Notes: Flags override the values loaded from pixelterm.json.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
	"github.com/framegrace/pixelterm/apps/pixelterm/font"
	"github.com/framegrace/pixelterm/apps/pixelterm/parser"
	"github.com/framegrace/pixelterm/apps/pixelterm/render"
	"github.com/framegrace/pixelterm/config"
	"github.com/framegrace/pixelterm/internal/canvas"
	"github.com/framegrace/pixelterm/internal/recorder"
	pixelruntime "github.com/framegrace/pixelterm/internal/runtime"
	"github.com/framegrace/pixelterm/internal/source"
)

type options struct {
	driver   string
	source   string
	command  string
	file     string
	record   bool
	replayID int64
	speed    float64
	dbPath   string
	fps      int
	out      string
	logPath  string
	list     bool
	save     bool
	verbose  bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.driver, "driver", "", "Output driver: tcell or png")
	flag.StringVar(&opts.source, "source", "", "Input source: keyboard, stdin, cmd, file or replay")
	flag.StringVar(&opts.command, "cmd", "", "Program to run when -source=cmd")
	flag.StringVar(&opts.file, "file", "", "Byte file to play when -source=file")
	flag.BoolVar(&opts.record, "record", false, "Record the input stream to the session database")
	flag.Int64Var(&opts.replayID, "replay", 0, "Session id to play back (implies -source=replay)")
	flag.Float64Var(&opts.speed, "speed", 1, "Replay speed multiplier")
	flag.StringVar(&opts.dbPath, "db", "", "Session database path")
	flag.IntVar(&opts.fps, "fps", 0, "Frames per second")
	flag.StringVar(&opts.out, "out", "pixelterm.png", "PNG written by the png driver when input ends")
	flag.StringVar(&opts.logPath, "log", "", "Log file path")
	flag.BoolVar(&opts.list, "list", false, "List recorded sessions and exit")
	flag.BoolVar(&opts.save, "save", false, "Store the effective settings in pixelterm.json and exit")
	flag.BoolVar(&opts.verbose, "v", false, "Log every input byte")
	flag.Parse()

	settings := config.Load()
	if err := config.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	applyFlags(&settings, opts)

	if opts.save {
		store := config.Default()
		settings.Apply(store)
		if err := store.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved settings to %s\n", store.Path())
		return
	}

	closeLog, err := setupLogging(opts.logPath, settings.Display.Driver == "tcell" && !opts.list)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	if opts.verbose {
		pixelruntime.SetVerboseLogging(log.Writer())
	}

	if opts.list {
		if err := listSessions(dbPath(settings)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(settings, opts); err != nil {
		log.Printf("pixelterm: %v", err)
		fmt.Fprintf(os.Stderr, "pixelterm: %v\n", err)
		os.Exit(1)
	}
}

func applyFlags(s *config.Settings, opts options) {
	if opts.driver != "" {
		s.Display.Driver = opts.driver
	}
	if opts.fps > 0 {
		s.Display.FPS = opts.fps
	}
	if opts.source != "" {
		s.Input.Source = opts.source
	}
	if opts.replayID != 0 {
		s.Input.Source = "replay"
	}
	if opts.command != "" {
		s.Input.Command = opts.command
	}
	if opts.record {
		s.Recording.Enabled = true
	}
	if opts.dbPath != "" {
		s.Recording.Path = opts.dbPath
	}
}

// reloadedDisplay rebuilds display settings from the reloaded store with
// command-line overrides still applied. Driver and scale changes need a
// restart and are ignored by the loop.
func reloadedDisplay(opts options) config.Display {
	s := config.Load()
	applyFlags(&s, opts)
	return s.Display
}

// setupLogging sends the standard logger to a file. The tcell driver owns
// the terminal, so it always logs to a file; headless runs default to
// stderr.
func setupLogging(path string, needFile bool) (func(), error) {
	if path == "" && !needFile {
		return func() {}, nil
	}
	if path == "" {
		dir, err := config.StateDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "pixelterm.log")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

func dbPath(s config.Settings) string {
	if s.Recording.Path != "" {
		return s.Recording.Path
	}
	dir, err := config.StateDir()
	if err != nil {
		return "pixelterm.db"
	}
	return filepath.Join(dir, "sessions.db")
}

func listSessions(path string) error {
	store, err := recorder.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	sessions, err := store.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no recorded sessions")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%4d  %s  %6d B  %s\n", s.ID, s.Started.Format(time.DateTime), s.Bytes, s.Label)
	}
	return nil
}

func run(settings config.Settings, opts options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store *recorder.Store
	needStore := settings.Recording.Enabled || settings.Input.Source == "replay"
	if needStore {
		var err error
		store, err = recorder.Open(dbPath(settings))
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var (
		cv        render.Canvas
		screen    tcell.Screen
		imgCanvas *canvas.ImageCanvas
		cleanup   func()
	)
	switch settings.Display.Driver {
	case "tcell":
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		cleanup = screen.Fini
		defer screen.Fini()
		tc := canvas.NewTcellCanvas(screen, color.Black)
		tc.ShowStatus(settings.Display.StatusLine)
		cv = tc
	case "png":
		imgCanvas = canvas.NewImageCanvas(color.Black)
		cv = imgCanvas
	default:
		return fmt.Errorf("unknown driver %q", settings.Display.Driver)
	}

	panicLogger := pixelruntime.NewPanicLogger(crashLogPath(), cleanup)
	defer panicLogger.Recover("main")

	src, label, err := openSource(settings, opts, store, screen, cancel)
	if err != nil {
		return err
	}
	defer src.Close()

	loopOpts := pixelruntime.Options{
		FPS:         settings.Display.FPS,
		Blink:       settings.Display.Blink,
		ExitOnDrain: imgCanvas != nil,
	}
	if settings.Recording.Enabled {
		session, err := store.Begin(label, time.Now())
		if err != nil {
			return err
		}
		defer session.Close()
		panicLogger.OnExit(session.Flush)
		log.Printf("Recording session %d (%s)", session.ID(), label)
		loopOpts.Recorder = session
	}

	loop := pixelruntime.NewLoop(parser.NewInterpreter(), font.Font6x8{}, src, cv, loopOpts, time.Now())
	panicLogger.Attach(loop)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				log.Println("Received SIGHUP, reloading configuration...")
				if err := config.Reload(); err != nil {
					log.Printf("Failed to reload config: %v", err)
					continue
				}
				loop.Reload(reloadedDisplay(opts))
				continue
			}
			cancel()
			return
		}
	}()

	if err := loop.Run(ctx); err != nil {
		return err
	}

	if imgCanvas != nil {
		if err := imgCanvas.SavePNG(opts.out, settings.Display.Scale); err != nil {
			return err
		}
		log.Printf("Wrote %s after %d frames", opts.out, loop.Frames())
	}
	return nil
}

// openSource builds the configured byte source. With a tcell screen a
// keyboard reader always runs so Ctrl-C can quit; when it is not the
// input it swallows keys.
func openSource(settings config.Settings, opts options, store *recorder.Store, screen tcell.Screen, quit func()) (source.ByteSource, string, error) {
	buffer := settings.Input.Buffer
	var kb *source.Keyboard
	if screen != nil {
		kb = source.NewKeyboard(screen, buffer, quit)
	}

	kind := settings.Input.Source
	if kind != "keyboard" && kb != nil {
		kb.Close()
	}

	switch kind {
	case "keyboard":
		if kb == nil {
			return nil, "", errors.New("keyboard source needs the tcell driver")
		}
		return kb, "keyboard", nil
	case "stdin":
		if screen != nil && term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, "", errors.New("stdin source with the tcell driver needs piped input")
		}
		src, err := source.OpenStdin(buffer, quit)
		if err != nil {
			return nil, "", err
		}
		return src, "stdin", nil
	case "cmd":
		fields := strings.Fields(settings.Input.Command)
		if len(fields) == 0 {
			return nil, "", errors.New("cmd source needs -cmd")
		}
		src, err := source.StartCommand(parser.TextColumns, parser.TextRows, buffer, fields[0], fields[1:]...)
		if err != nil {
			return nil, "", err
		}
		return src, "cmd: " + settings.Input.Command, nil
	case "file":
		if opts.file == "" {
			return nil, "", errors.New("file source needs -file")
		}
		src, err := source.OpenFile(opts.file, buffer)
		if err != nil {
			return nil, "", err
		}
		return src, "file: " + opts.file, nil
	case "replay":
		if opts.replayID == 0 {
			return nil, "", errors.New("replay source needs -replay id")
		}
		src, err := store.Replay(opts.replayID, time.Now, opts.speed)
		if err != nil {
			return nil, "", err
		}
		log.Printf("Replaying session %d (%d bytes)", opts.replayID, src.Len())
		return src, fmt.Sprintf("replay %d", opts.replayID), nil
	default:
		return nil, "", fmt.Errorf("unknown source %q", kind)
	}
}

func crashLogPath() string {
	dir, err := config.StateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "crash.log")
}
