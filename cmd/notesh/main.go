package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/Cvaniak/NoteSH/app"
	"github.com/Cvaniak/NoteSH/audio"
	"github.com/Cvaniak/NoteSH/config"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/input"
	"github.com/Cvaniak/NoteSH/logging"
	"github.com/Cvaniak/NoteSH/store"
	"github.com/Cvaniak/NoteSH/watcher"
)

// Set by the release build
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "notesh: %v\n", err)
		return 2
	}
	if cfg.Version {
		fmt.Printf("notesh %s\n", version)
		return 0
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "notesh: stdout is not a terminal")
		return 1
	}

	logger, logCloser, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "notesh: %v\n", err)
		return 1
	}
	defer logCloser.Close()
	logger.Info().Str("file", cfg.File).Str("store", string(cfg.Store)).Msg("starting")

	keys, err := loadKeys(cfg.Bindings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notesh: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.File, cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notesh: %v\n", err)
		return 1
	}
	defer st.Close()

	var w *watcher.Watcher
	// SQLite writes land in the WAL, only plain files are watched
	if cfg.Watch && cfg.Store.Resolve(cfg.File) == store.KindFile {
		w, err = watcher.New(cfg.File, watcher.DefaultDebounce, logging.Component(logger, "watcher"))
		if err != nil {
			logger.Warn().Err(err).Msg("file watching disabled")
			w = nil
		} else {
			defer w.Close()
		}
	}

	sound := audio.NewSoundManager()
	if cfg.Sound {
		if err := sound.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("sound disabled")
		}
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notesh: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "notesh: failed to initialize terminal: %v\n", err)
		return 1
	}
	screen.EnableMouse()
	screen.EnablePaste()
	core.SetCrashCleanup(screen.Fini)
	defer func() {
		core.SetCrashCleanup(nil)
		screen.Fini()
	}()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	a := app.New(app.Options{
		Screen:  screen,
		Store:   st,
		Keys:    keys,
		Logger:  logging.Component(logger, "app"),
		Sound:   sound,
		Watcher: w,
	})
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("stopped")
		screen.Fini()
		fmt.Fprintf(os.Stderr, "notesh: %v\n", err)
		return 1
	}
	logger.Info().Msg("bye")
	return 0
}

// loadKeys merges the user keymap, if any, onto the built-in bindings
func loadKeys(path string) (*input.KeyTable, error) {
	override, err := input.LoadKeyConfigFile(path)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
