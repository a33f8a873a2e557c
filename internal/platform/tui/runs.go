package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixelcore/internal/registry"
	"github.com/vovakirdan/pixelcore/internal/storage"
)

// Run history layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show app list sidebar
	sidebarWidth       = 20  // Width of app list sidebar
	maxRuns            = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the run history screen.
type RunsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextApp key.Binding
	PrevApp key.Binding
	Order   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextApp, k.PrevApp, k.Order, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextApp, k.PrevApp},
		{k.Order, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextApp: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next app"),
		),
		PrevApp: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev app"),
		),
		Order: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "recent/top"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run history screen.
type RunsModel struct {
	apps        []registry.AppInfo
	appCursor   int
	store       *storage.Store
	runs        []storage.RunEntry
	stats       *storage.AppStats
	byScore     bool // Top scores instead of most recent
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a new run history model.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		apps:        registry.List(),
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Backend", Width: 9},
		{Title: "Frames", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "FPS", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentApp returns the ID of the selected app, or "" with no apps.
func (m RunsModel) currentApp() string {
	if len(m.apps) == 0 {
		return ""
	}
	return m.apps[m.appCursor].ID
}

// reload fetches runs and stats for the selected app.
func (m *RunsModel) reload() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	appID := m.currentApp()
	if m.store != nil && appID != "" {
		if m.byScore {
			m.runs, m.loadErr = m.store.TopScores(appID, maxRuns)
		} else {
			m.runs, m.loadErr = m.store.RecentRuns(appID, maxRuns)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(appID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Backend,
			fmt.Sprintf("%d", r.Frames),
			r.Duration.Round(100 * time.Millisecond).String(),
			fmt.Sprintf("%.1f", r.AvgFPS),
			fmt.Sprintf("%d", r.Score),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run history model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history screen.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextApp):
			if len(m.apps) > 0 {
				m.appCursor = (m.appCursor + 1) % len(m.apps)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevApp):
			if len(m.apps) > 0 {
				m.appCursor = (m.appCursor + len(m.apps) - 1) % len(m.apps)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.byScore = !m.byScore
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	runsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	runsDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	runsBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the run history.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	order := "RECENT RUNS"
	if m.byScore {
		order = "TOP SCORES"
	}
	title := order
	if len(m.apps) > 0 {
		title = fmt.Sprintf("%s - %s", order, m.apps[m.appCursor].Title)
	}
	b.WriteString(runsTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", runsBoxStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.currentTitle()), m.width))
		b.WriteString("\n\n")
		b.WriteString(runsBoxStyle.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(runsDimStyle.Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(runsDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunsModel) currentTitle() string {
	if len(m.apps) == 0 {
		return "no apps"
	}
	return m.apps[m.appCursor].Title
}

// renderSidebar renders the app list.
func (m RunsModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Apps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, a := range m.apps {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.appCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := a.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return runsBoxStyle.Width(sidebarWidth).Render(sidebar.String())
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	switch {
	case m.store == nil:
		return empty.Render("Run history is disabled.")
	case m.loadErr != nil:
		return empty.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return empty.Render("No runs recorded yet.\nRun an app to fill this table!")
	}
	return m.table.View()
}

func (m RunsModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  %d frames  %.1f avg fps  best %d  last %s",
		m.stats.Runs, m.stats.TotalFrames, m.stats.AvgFPS, m.stats.HighScore,
		m.stats.LastRun.Format("Jan 02 15:04"))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
