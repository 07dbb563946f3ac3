package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/gini/internal/config"
	"github.com/f3rmion/gini/internal/tui/views"
	"go.uber.org/zap"
)

// AppTitle is shown in the app bar.
const AppTitle = "Gen AI Utility"

// Options configures the application shell.
type Options struct {
	Config   *config.Config
	Improver views.Improver
	// Copy writes text to the clipboard.
	Copy   func(string) error
	Logger *zap.Logger
	// Path is the initial route.
	Path string
	// Input prefills the paragraph box.
	Input string
}

// AppModel is the top-level TUI model: app bar, drawer and the routed page.
type AppModel struct {
	config *config.Config
	logger *zap.Logger

	// Layout state
	width  int
	height int
	ready  bool

	drawer Drawer
	router Router

	improveView views.ImproveModel

	showHelp bool
}

// NewApp creates the application shell.
func NewApp(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	copyText := opts.Copy
	if copyText == nil {
		copyText = func(string) error { return nil }
	}

	page := views.NewImproveModel(opts.Improver, copyText, cfg.CopyResetDelay, logger.Named("improve"))
	if opts.Input != "" {
		page.SetInput(opts.Input)
	}

	router := NewRouter(DefaultRoutes)
	route := router.Navigate(opts.Path)
	logger.Debug("route resolved", zap.String("path", opts.Path), zap.String("route", route.Path))

	return AppModel{
		config:      cfg,
		logger:      logger,
		drawer:      NewDrawer(DefaultDrawerWidth),
		router:      router,
		improveView: page,
	}
}

// Page returns the improve page.
func (m AppModel) Page() views.ImproveModel {
	return m.improveView
}

// Drawer returns the drawer state.
func (m AppModel) Drawer() Drawer {
	return m.drawer
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return m.improveView.Init()
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Global keys
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1":
			m.showHelp = true
			return m, nil
		case "ctrl+o":
			if !m.drawer.IsOpen() {
				m.drawer.Open()
				m.drawer.Select(m.router.Index(), len(m.router.Routes()))
				m.resize()
			}
			return m, nil
		case "esc":
			if m.drawer.IsOpen() {
				m.drawer.Close()
				m.resize()
				return m, nil
			}
		}

		// The open drawer owns the keyboard.
		if m.drawer.IsOpen() {
			n := len(m.router.Routes())
			switch msg.String() {
			case "j", "down":
				m.drawer.Select(m.drawer.Selected()+1, n)
			case "k", "up":
				m.drawer.Select(m.drawer.Selected()-1, n)
			case "enter", "l", "right":
				route := m.router.Routes()[m.drawer.Selected()]
				m.router.Navigate(route.Path)
				m.drawer.Close()
				m.resize()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil
	}

	// Results, ticks and copy resets reach the page even while the drawer
	// is open.
	var cmd tea.Cmd
	switch m.router.Current().View {
	case ViewImprove:
		m.improveView, cmd = m.improveView.Update(msg)
	}
	return m, cmd
}

// resize recomputes the page size from the window and drawer state.
func (m *AppModel) resize() {
	if !m.ready {
		return
	}
	contentWidth := m.width - m.drawer.Width() - 4
	contentHeight := m.height - 1 - 2
	m.improveView.SetSize(max(contentWidth, 20), max(contentHeight, 5))
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	bar := RenderAppBar(m.drawer, m.width, AppTitle)

	var content string
	switch m.router.Current().View {
	case ViewImprove:
		content = m.improveView.View()
	}

	mainContent := ContentStyle.
		Width(m.width - m.drawer.Width()).
		Height(m.height - 1).
		Render(content)

	body := mainContent
	if m.drawer.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, RenderDrawer(m.drawer, m.router, m.status(), m.height-1), mainContent)
	}

	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

func (m AppModel) status() Status {
	return Status{
		Model:     m.config.Model,
		APIKeySet: m.config.APIKey != "",
		ConfigDir: m.config.Dir,
	}
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render(AppTitle) + "\n\n"

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += keyStyle.Render("ctrl+o") + descStyle.Render("Open navigation drawer") + "\n"
	helpText += keyStyle.Render("esc") + descStyle.Render("Close drawer") + "\n"
	helpText += keyStyle.Render("f1") + descStyle.Render("Show this help") + "\n"
	helpText += keyStyle.Render("ctrl+c") + descStyle.Render("Quit") + "\n"

	helpText += sectionStyle.Render("Improve Content") + "\n"
	helpText += keyStyle.Render("ctrl+s") + descStyle.Render("Improve paragraph") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Switch input/results") + "\n"
	helpText += keyStyle.Render("j/k ↑/↓") + descStyle.Render("Select sample") + "\n"
	helpText += keyStyle.Render("enter/y") + descStyle.Render("Copy sample") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
