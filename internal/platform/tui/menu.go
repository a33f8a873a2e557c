package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixelcore/internal/registry"
)

// menuKeys are the bindings shown in the menu footer.
type menuKeys struct {
	Nav    key.Binding
	Select key.Binding
	Runs   key.Binding
	Quit   key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Nav, k.Select, k.Runs, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Nav:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Runs:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "runs")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// MenuModel is the Bubble Tea model for the app picker.
type MenuModel struct {
	items    []registry.AppInfo
	cursor   int
	width    int
	height   int
	keys     KeyMap
	footer   menuKeys
	help     help.Model
	notice   string
	quitting bool
	selected *registry.AppInfo // Set when user selects an app
	openRuns bool              // True if user pressed Tab for the run history
}

// NewMenuModel creates a picker over the registered apps.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		items:  registry.List(),
		width:  width,
		height: height,
		keys:   DefaultKeyMap(),
		footer: defaultMenuKeys(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.footer.Runs) {
		m.openRuns = true
		return m, tea.Quit
	}

	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuNoticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  P I X E L C O R E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select an app", m.width))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(centerText(menuNoticeStyle.Render(m.notice), m.width))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString(centerText("No apps registered.", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("  %s", item.Title)
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %s", item.Title))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuFooterStyle.Render(m.help.View(m.footer)), m.width))
	b.WriteString("\n")

	return b.String()
}

// WithNotice returns the menu showing msg above the app list.
func (m MenuModel) WithNotice(msg string) MenuModel {
	m.notice = msg
	return m
}

// Selected returns the selected app, or nil if none was selected.
func (m MenuModel) Selected() *registry.AppInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user asked for the run history.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	AppID         string
	Width, Height int
	WantsRuns     bool
	Quit          bool
}

// RunMenu runs the picker and returns the selection. A non-empty notice
// is shown above the app list.
func RunMenu(width, height int, notice string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(width, height).WithNotice(notice),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}
	return m.result(), nil
}

func (m MenuModel) result() MenuResult {
	r := MenuResult{Width: m.width, Height: m.height}
	switch {
	case m.WantsRuns():
		r.WantsRuns = true
	case m.Selected() != nil:
		r.AppID = m.Selected().ID
	default:
		r.Quit = true
	}
	return r
}
