package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/registry"
	"github.com/vovakirdan/pixelcore/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pixelcore/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database. Empty disables it.
	DBPath string

	// AppID, when set, skips the picker: sessions go straight into that app
	// and end with it.
	AppID string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.pixelcore/runs.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one engine per SSH session.
type SSHServer struct {
	config   SSHServerConfig
	settings config.Settings
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
}

// sessionKey is the ssh context key of the live app of a session.
type sessionKey struct{}

// NewSSHServer creates a new SSH server with the given configuration.
// Sessions build their engines from settings.
func NewSSHServer(cfg SSHServerConfig, settings config.Settings, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("ssh")

	if cfg.AppID != "" && !registry.Exists(cfg.AppID) {
		return nil, fmt.Errorf("unknown app %q", cfg.AppID)
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open run history", "error", err)
			// Continue without storage
			store = nil
		}
	}

	srv := &SSHServer{
		config:   cfg,
		settings: settings,
		store:    store,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pixelcore", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging wraps everything and release
	// runs once the program has exited.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.releaseMiddleware,
			bubbletea.MiddlewareWithColorProfile(srv.teaHandler, termenv.ANSI256),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a session model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	live := &liveApp{}
	sess.Context().SetValue(sessionKey{}, live)

	model := NewSessionModel(SessionConfig{
		Settings: s.settings,
		Store:    s.store,
		Logger:   s.logger.With("user", sess.User()),
		Lipgloss: bubbletea.MakeRenderer(sess),
		AppID:    s.config.AppID,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	}, live)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// releaseMiddleware ends an app left running by a dropped connection.
func (s *SSHServer) releaseMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if live, ok := sess.Context().Value(sessionKey{}).(*liveApp); ok {
			live.release()
		}
		next(sess)
	}
}

// Serve starts the SSH server and blocks until ctx is cancelled or the
// listener fails.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "app", s.config.AppID)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.closeStore()
			return fmt.Errorf("ssh server: %w", err)
		}
		s.closeStore()
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// liveApp tracks the app model of a session so it can be ended after the
// program exits.
type liveApp struct {
	model  Model
	active bool
}

func (l *liveApp) set(m Model) {
	l.model, l.active = m, !m.Done()
}

func (l *liveApp) release() {
	if l.active {
		l.model = l.model.Abort()
		l.active = false
	}
}

// SessionConfig configures one session.
type SessionConfig struct {
	Settings config.Settings
	Store    *storage.Store
	Logger   *log.Logger
	Lipgloss *lipgloss.Renderer
	// AppID pins the session to one app.
	AppID         string
	Width, Height int
}

// SessionModel manages the full session flow: menu -> app -> menu.
// Each app run gets a fresh engine.
type SessionModel struct {
	cfg      SessionConfig
	live     *liveApp
	menu     MenuModel
	app      *Model
	quitting bool
}

// NewSessionModel creates a new session model. A pinned app is started
// right away; if it fails the session falls back to the picker.
func NewSessionModel(cfg SessionConfig, live *liveApp) SessionModel {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if live == nil {
		live = &liveApp{}
	}
	m := SessionModel{
		cfg:  cfg,
		live: live,
		menu: NewMenuModel(cfg.Width, cfg.Height),
	}
	if cfg.AppID != "" {
		m, _ = m.launch(cfg.AppID)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.app != nil {
		return m.app.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Width = wsm.Width
		m.cfg.Height = wsm.Height
	}

	if m.app != nil {
		return m.updateApp(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The run history needs a terminal of its own; it stays a local screen.
	if m.menu.WantsRuns() {
		m.menu = NewMenuModel(m.cfg.Width, m.cfg.Height).WithNotice("Run history is only available locally.")
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.launch(selected.ID)
	}

	return m, cmd
}

// launch starts a fresh engine and app for id.
func (m SessionModel) launch(id string) (SessionModel, tea.Cmd) {
	app, err := registry.Create(id)
	if err != nil {
		return m.backToMenu(err.Error()), nil
	}

	e := engine.New(m.cfg.Settings, m.cfg.Logger)
	am, err := NewModel(app, e, Options{
		AppID:      id,
		Backend:    "ssh",
		Store:      m.cfg.Store,
		Logger:     m.cfg.Logger,
		Keys:       DefaultKeyMap(),
		Lipgloss:   m.cfg.Lipgloss,
		BackCloses: true,
	})
	if err != nil {
		m.cfg.Logger.Error("app failed to start", "app", id, "error", err)
		return m.backToMenu(fmt.Sprintf("%s failed to start: %v", registry.Title(id), err)), nil
	}

	m.app = &am
	m.live.set(am)
	m.cfg.Logger.Info("app started", "app", id)

	size := tea.WindowSizeMsg{Width: m.cfg.Width, Height: m.cfg.Height}
	return m, tea.Batch(am.Init(), func() tea.Msg { return size })
}

// updateApp handles updates when an app is running.
func (m SessionModel) updateApp(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.app.Update(msg)
	if am, ok := newModel.(Model); ok {
		m.app = &am
		m.live.set(am)
	}

	if !m.app.Done() {
		return m, cmd
	}

	if m.app.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	notice := ""
	if err := m.app.Err(); err != nil {
		notice = err.Error()
	}
	m.app = nil

	// A pinned session ends with its app
	if m.cfg.AppID != "" {
		m.quitting = true
		return m, tea.Quit
	}
	return m.backToMenu(notice), nil
}

func (m SessionModel) backToMenu(notice string) SessionModel {
	m.app = nil
	m.menu = NewMenuModel(m.cfg.Width, m.cfg.Height).WithNotice(notice)
	return m
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.app != nil {
		return m.app.View()
	}
	return m.menu.View()
}

// InApp reports whether an app is running.
func (m SessionModel) InApp() bool {
	return m.app != nil
}

// IsQuitting returns true if the session is over.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}
