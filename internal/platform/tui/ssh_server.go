package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/games/slap"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.hero/host_key.
	HostKeyPath string

	// DBPath is the path to the shared database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.hero/hero.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the arcade over SSH. All sessions share one Store, so
// the wall and the leaderboards are common to every visitor.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	settings Settings
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server. base supplies the game settings
// every session starts from; its Store is opened from cfg.DBPath when nil.
func NewSSHServer(cfg SSHServerConfig, base Settings) (*SSHServer, error) {
	logger := base.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hero-ssh",
		})
	}
	base.Logger = logger

	if base.Store == nil {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open database, sessions will not persist", "error", err)
		} else {
			base.Store = store
		}
	}
	// Speakers belong to the server host, not the visitor.
	base.Sound = audio.Nop{}
	base.Mouse = true

	srv := &SSHServer{
		config:   cfg,
		settings: base.WithDefaults(),
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".hero", "host_key")
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
		if base.Store != nil {
			base.Store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	st := s.settings
	st.Logger = s.logger.With("user", sess.User())
	model := NewSessionModel(st, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
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

	err := s.server.Shutdown(ctx)
	if s.settings.Store != nil {
		s.settings.Store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
	screenWall
)

// SessionModel runs the whole arcade inside one program: menu, game,
// scoreboard and wall, returning to the menu after each.
type SessionModel struct {
	settings      Settings
	width, height int
	screen        screen

	menu   MenuModel
	game   *Model
	scores ScoreboardModel
	wall   WallModel

	quitting bool
}

// NewSessionModel creates a session sized to a width x height terminal.
func NewSessionModel(s Settings, width, height int) SessionModel {
	s = s.WithDefaults()
	return SessionModel{
		settings: s,
		width:    width,
		height:   height,
		menu:     NewMenuModel(s.Store, s.Variant, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen and handles transitions.
// Sub-screens signal completion with tea.Quit; those commands are dropped
// here and the session moves on instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenWall:
		return m.updateWall(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	r := m.menu.result()
	switch {
	case m.menu.quitting:
		m.quitting = true
		return m, tea.Quit
	case r.WantsScoreboard:
		m.scores = NewScoreboardModel(m.settings, m.width, m.height)
		m.screen = screenScores
		return m, nil
	case r.WantsWall:
		m.wall = NewWallModel(m.settings, m.width, m.height)
		m.screen = screenWall
		return m, nil
	case r.GameID != "":
		m.settings.Variant = r.Variant
		return m.launch(r.GameID, nil)
	}
	return m, cmd
}

// launch mounts id and switches to the game screen.
func (m SessionModel) launch(id string, setup func(registry.Game)) (tea.Model, tea.Cmd) {
	h, err := m.settings.Launch(id, m.width, m.height)
	if err != nil {
		m.settings.Logger.Error("cannot launch game", "game", id, "err", err)
		return m.backToMenu()
	}
	if setup != nil {
		h.Do(setup)
	}
	gm := NewModel(h, m.width, m.height, m.settings)
	m.game = &gm
	m.screen = screenGame
	return m, gm.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.Leaving():
		m.game = nil
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.quitting:
		m.quitting = true
		return m, tea.Quit
	case m.scores.goingBack:
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateWall(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.wall.Update(msg)
	if wm, ok := next.(WallModel); ok {
		m.wall = wm
	}

	switch {
	case m.wall.quitting:
		m.quitting = true
		return m, tea.Quit
	case m.wall.goingBack:
		return m.backToMenu()
	case m.wall.opened != "":
		return m.launch(slap.GameID, OpenDraft(m.wall.opened))
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.settings.Store, m.settings.Variant, m.width, m.height)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenWall:
		return m.wall.View()
	default:
		return m.menu.View()
	}
}

// OpenDraft returns a launch hook that loads draft id into a SLAP game.
func OpenDraft(id string) func(registry.Game) {
	return func(g registry.Game) {
		if sg, ok := g.(*slap.Game); ok {
			sg.LoadDraft(id)
		}
	}
}
