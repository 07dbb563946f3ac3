package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultDrawerWidth is the number of columns the open drawer occupies.
const DefaultDrawerWidth = 30

// Drawer holds the open/closed state of the navigation drawer. It is passed
// by value to the app bar and the layout so both render from the same state.
type Drawer struct {
	open     bool
	width    int
	selected int
}

// NewDrawer creates a closed drawer.
func NewDrawer(width int) Drawer {
	if width <= 0 {
		width = DefaultDrawerWidth
	}
	return Drawer{width: width}
}

// Open shows the drawer.
func (d *Drawer) Open() { d.open = true }

// Close hides the drawer.
func (d *Drawer) Close() { d.open = false }

// IsOpen reports whether the drawer is visible.
func (d Drawer) IsOpen() bool { return d.open }

// Width returns the columns taken from the content area: zero when closed.
func (d Drawer) Width() int {
	if !d.open {
		return 0
	}
	return d.width
}

// Selected returns the highlighted route index.
func (d Drawer) Selected() int { return d.selected }

// Select highlights route i, clamped to [0, n).
func (d *Drawer) Select(i, n int) {
	if n <= 0 {
		d.selected = 0
		return
	}
	d.selected = min(max(i, 0), n-1)
}

// Status is the configuration summary shown at the bottom of the drawer.
type Status struct {
	Model     string
	APIKeySet bool
	ConfigDir string
}

// RenderAppBar renders the top bar. The menu icon is hidden while the
// drawer is open.
func RenderAppBar(d Drawer, width int, title string) string {
	left := AppBarTitleStyle.Render(title)
	if !d.IsOpen() {
		left = AppBarMenuStyle.Render("☰") + left
	}
	hint := AppBarHintStyle.Render("f1 help")

	gap := width - lipgloss.Width(left) - lipgloss.Width(hint) - 2
	if gap < 1 {
		gap = 1
	}
	bar := left + AppBarHintStyle.Render(strings.Repeat(" ", gap)) + hint
	return AppBarStyle.Width(max(width, 0)).Render(bar)
}

// RenderDrawer renders the open drawer: the route list followed by the
// status block. It returns an empty string when the drawer is closed.
func RenderDrawer(d Drawer, r Router, status Status, height int) string {
	if !d.IsOpen() {
		return ""
	}

	var items []string
	for i, route := range r.Routes() {
		label := route.Icon + " " + route.Title

		var style lipgloss.Style
		switch {
		case i == d.Selected():
			style = DrawerItemActiveStyle
		case i == r.Index():
			style = DrawerItemStyle.Bold(true).Foreground(ColorSecondary)
		default:
			style = DrawerItemStyle
		}
		items = append(items, style.Render(label))
	}

	items = append(items, DrawerHeaderStyle.Render("Status"))
	items = append(items, renderStatus(status, d.width-4)...)

	usedHeight := len(items) + 6
	for i := 0; i < height-usedHeight; i++ {
		items = append(items, "")
	}
	items = append(items, DrawerHelpStyle.Render("enter open • esc close"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return DrawerStyle.
		Width(d.width - 1).
		Height(max(height-2, 0)).
		Render(content)
}

func renderStatus(s Status, width int) []string {
	model := s.Model
	if model == "" {
		model = "(default)"
	}

	key := OKStyle.Render("set")
	if !s.APIKeySet {
		key = MissingStyle.Render("missing")
	}

	dir := s.ConfigDir
	if r := []rune(dir); width > 3 && len(r) > width {
		dir = "…" + string(r[len(r)-width+1:])
	}

	lines := []string{
		LabelStyle.Render("Model ") + ValueStyle.Render(model),
		LabelStyle.Render("API key ") + key,
	}
	if dir != "" {
		lines = append(lines, LabelStyle.Render("Config"), MutedStyle.Render(dir))
	}
	if !s.APIKeySet {
		lines = append(lines, MutedStyle.Render("Set GEMINI_API_KEY"))
	}
	return lines
}
