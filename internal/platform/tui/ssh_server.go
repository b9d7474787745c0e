package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// StartingBalance is credited to a profile on its first connection.
	StartingBalance int

	// Runtime is the tick cadence and delta clamp for every session.
	Runtime core.RuntimeConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:         ":23234",
		IdleTimeout:     30 * time.Minute,
		StartingBalance: 100,
		Runtime:         core.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server for the arcade. Every SSH user plays
// on their own profile through one engine shared by all of that user's
// connections, so a user has at most one active session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu      sync.Mutex
	engines map[string]*engine.Engine
}

// NewSSHServer creates a new SSH server over an open store.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		logger:  logger,
		engines: make(map[string]*engine.Engine),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// engineFor returns the engine for a user's profile, creating it on the
// user's first connection.
func (s *SSHServer) engineFor(user string) *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[user]; ok {
		return e
	}
	profile := s.store.Profile(user, s.config.StartingBalance)
	e := engine.New(registry.Default, profile,
		engine.WithRecorder(profile),
		engine.WithLogger(s.logger.With("user", user)),
		engine.WithConfig(s.config.Runtime),
	)
	s.engines[user] = e
	return e
}

// release abandons the user's active session if the connection conn
// started it. Sessions of the user's other connections keep running.
func (s *SSHServer) release(user, conn string) {
	s.mu.Lock()
	e, ok := s.engines[user]
	s.mu.Unlock()
	if !ok {
		return
	}
	if active, ok := e.Active(); ok && active.Owner() == conn {
		//nolint:errcheck // Best-effort cleanup
		e.Abandon(active)
	}
}

// userOf returns the profile name for a connection.
func userOf(sess ssh.Session) string {
	if user := sess.User(); user != "" {
		return user
	}
	return "guest"
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	user := userOf(sess)
	model := NewSessionModel(sess.Context(), s.engineFor(user), s.store, user)
	model.owner = sess.Context().SessionID()
	model.width, model.height = pty.Window.Width, pty.Window.Height
	model.menu.width, model.menu.height = pty.Window.Width, pty.Window.Height

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", userOf(sess),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		// A dropped connection forfeits the session it was playing
		s.release(userOf(sess), sess.Context().SessionID())
		s.logger.Info("session ended",
			"user", userOf(sess),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
