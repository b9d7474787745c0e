package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/storage"
)

// newLogger builds the process logger. Interactive commands own the
// terminal, so without a log file their records are discarded.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case settings.LogFile != "":
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closer, nil
}

// terminalRuntime sizes the runtime config to the local terminal.
func terminalRuntime() core.RuntimeConfig {
	cfg := settings.Runtime(flagSeed)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// localEngine wires an engine to the local player's profile.
func localEngine(store *storage.Store, logger *log.Logger) *engine.Engine {
	profile := store.Profile(settings.Player, settings.StartingBalance)
	return engine.New(registry.Default, profile,
		engine.WithRecorder(profile),
		engine.WithLogger(logger.With("player", settings.Player)),
		engine.WithConfig(terminalRuntime()),
	)
}

// unknownGame reports a variant ID missing from the registry.
func unknownGame(id string) error {
	return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", id)
}
