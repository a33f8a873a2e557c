package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/storage"
)

// statusLines is the number of terminal rows reserved below the picture.
const statusLines = 1

// Options configure a terminal run.
type Options struct {
	// AppID and Backend label the run in the history store.
	AppID   string
	Backend string

	// Store receives the run stats when the app ends. May be nil.
	Store  *storage.Store
	Logger *log.Logger
	Keys   KeyMap

	// Lipgloss is the renderer styles are written for; SSH sessions pass
	// their own. Nil means the default renderer.
	Lipgloss *lipgloss.Renderer

	// BackCloses ends the app on the back key instead of passing it on.
	BackCloses bool

	// Engine options for engines built by Run.
	Engine []engine.Option
}

// surface is the terminal presentation surface: the last presented frame
// as a string of half-block cells.
type surface struct {
	renderer   *Renderer
	cols, rows int
	frame      string
}

func (s *surface) Present(fb *core.Framebuffer) error {
	s.frame = s.renderer.Render(fb, s.cols, s.rows)
	return nil
}

func (s *surface) ResizeSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("tui: invalid surface size %dx%d", width, height)
	}
	s.cols, s.rows = width, height
	return nil
}

// Model is the Bubble Tea model hosting one app run. Ticks drive the
// engine scheduler; keys accumulate into the next input frame.
type Model struct {
	sched    *engine.Scheduler
	app      engine.App
	surface  *surface
	opts     Options
	pending  *core.InputFrame
	help     help.Model
	tickRate int

	cols, rows int
	resized    bool

	err        error
	quitting   bool
	backToMenu bool
	recorded   bool
}

// NewModel starts app on e and returns the model hosting it. A failing
// App.Start is returned as is.
func NewModel(app engine.App, e *engine.Engine, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Backend == "" {
		opts.Backend = "tui"
	}
	if len(opts.Keys.Quit.Keys()) == 0 {
		opts.Keys = DefaultKeyMap()
	}

	surf := &surface{renderer: NewRenderer(opts.Lipgloss), cols: 80, rows: 24 - statusLines}
	sched := engine.NewScheduler(app, e, surf)
	if err := sched.Start(); err != nil {
		return Model{}, err
	}

	pending := core.NewInputFrame()
	return Model{
		sched:    sched,
		app:      app,
		surface:  surf,
		opts:     opts,
		pending:  &pending,
		help:     help.New(),
		tickRate: e.Settings().Render.TickRate,
		cols:     surf.cols,
		rows:     surf.rows,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cols = max(1, msg.Width)
		m.rows = max(1, msg.Height-statusLines)
		m.resized = true
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Done() {
		return m, nil
	}

	action, isQuit := m.opts.Keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m = m.close()
		return m, tea.Quit
	case action == core.ActionBack && m.opts.BackCloses:
		m.backToMenu = true
		m = m.close()
		return m, nil
	case action != core.ActionNone:
		m.pending.Set(action)
	}
	return m, nil
}

// handleTick runs one engine iteration with the keys seen since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.Done() {
		return m, nil
	}

	ev := engine.Events{
		Input:   true,
		Actions: *m.pending,
		Resized: m.resized,
		Width:   m.cols,
		Height:  m.rows,
	}
	m.resized = false
	err := m.sched.Step(ev)
	m.pending.Clear()

	if err != nil {
		m.err = err
	}
	if m.Done() {
		m = m.finish()
		return m, tea.Quit
	}

	return m, tickCmd(m.tickRate)
}

// close runs the final iteration with a close request.
func (m Model) close() Model {
	if err := m.sched.Step(engine.Events{Close: true}); err != nil {
		m.err = err
	}
	return m.finish()
}

// finish records the run once the scheduler has stopped.
func (m Model) finish() Model {
	if m.recorded || m.sched.State() != engine.StateStopped {
		return m
	}
	m.recorded = true

	if m.opts.Store != nil {
		if _, err := m.opts.Store.RecordRun(m.opts.AppID, m.opts.Backend, m.sched.Engine(), m.app); err != nil {
			m.opts.Logger.Warn("could not save run", "app", m.opts.AppID, "error", err)
		}
	}
	return m
}

// View renders the last presented frame and a status line.
func (m Model) View() string {
	if m.Done() {
		return ""
	}
	return m.surface.frame + "\n" + m.statusLine()
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

func (m Model) statusLine() string {
	e := m.sched.Engine()
	info := fmt.Sprintf(" %s  %3.0f fps  ", e.Settings().Window.Title, e.Clock().FPS())
	h := m.help
	h.Width = max(0, m.cols-lipgloss.Width(info))
	return statusStyle.Render(info) + h.ShortHelpView(m.opts.Keys.ShortHelp())
}

// Abort stops a running app without a further iteration and records the
// run. Hosts call it when the program ends without a close key.
func (m Model) Abort() Model {
	m.sched.Stop()
	return m.finish()
}

// Engine returns the engine the model drives.
func (m Model) Engine() *engine.Engine {
	return m.sched.Engine()
}

// Done reports whether the app has stopped.
func (m Model) Done() bool {
	return m.sched.State() == engine.StateStopped
}

// Err returns the error that stopped the app, if any.
func (m Model) Err() error {
	return m.err
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Result describes how a terminal run ended.
type Result struct {
	Engine *engine.Engine
	// Quit is true when the user asked to leave pixelcore rather than
	// return to a menu.
	Quit bool
}

// Run hosts app in the terminal until it stops or ctx is cancelled. The
// result carries the engine even on error so callers can read its stats.
func Run(ctx context.Context, app engine.App, settings config.Settings, opts Options) (Result, error) {
	e := engine.New(settings, opts.Logger, opts.Engine...)
	res := Result{Engine: e}
	model, err := NewModel(app, e, opts)
	if err != nil {
		return res, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	final, runErr := p.Run()
	if fm, ok := final.(Model); ok {
		model = fm
	}

	// Killed or interrupted programs never saw a close key
	model = model.Abort()
	res.Quit = model.IsQuitting() || ctx.Err() != nil

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && !errors.Is(runErr, tea.ErrInterrupted) {
		return res, fmt.Errorf("tui: %w", runErr)
	}
	return res, model.err
}
