package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/gini/internal/config"
	"github.com/f3rmion/gini/internal/improve"
	"github.com/f3rmion/gini/internal/tui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type stubImprover struct {
	result improve.Result
}

func (s stubImprover) Improve(context.Context, string) improve.Result {
	return s.result
}

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	cfg := config.Default("/tmp/gini")
	cfg.Model = "gemini-test"
	app := NewApp(Options{
		Config: cfg,
		Improver: stubImprover{result: improve.Success(&improve.Improvement{
			Languages: []string{"en"},
			Samples:   map[string][]string{"en": {"Better text."}},
		})},
		Path: "/anything",
	})
	return send(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok)
	return app
}

func TestAppRendersShell(t *testing.T) {
	app := newTestApp(t)
	view := app.View()
	assert.Contains(t, view, AppTitle)
	assert.Contains(t, view, "☰")
	assert.Contains(t, view, "Content Improver with Gemini AI")
}

func TestAppLoadingBeforeSize(t *testing.T) {
	app := NewApp(Options{})
	assert.Equal(t, "Loading...", app.View())
}

func TestAppDrawerKeys(t *testing.T) {
	app := newTestApp(t)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.True(t, app.Drawer().IsOpen())
	view := app.View()
	assert.NotContains(t, view, "☰")
	assert.Contains(t, view, "gemini-test")
	assert.Contains(t, view, "missing")

	app = send(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.Drawer().IsOpen())
	assert.Contains(t, app.View(), "☰")
}

func TestAppDrawerEnterNavigates(t *testing.T) {
	app := newTestApp(t)
	app = send(t, app, tea.KeyMsg{Type: tea.KeyCtrlO})
	app = send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.Drawer().IsOpen())
	assert.Equal(t, "/", app.router.Current().Path)
}

func TestAppHelpOverlay(t *testing.T) {
	app := newTestApp(t)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, app.View(), "Press any key to close")

	app = send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NotContains(t, app.View(), "Press any key to close")
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestAppDeliversResultsWhileDrawerOpen(t *testing.T) {
	app := newTestApp(t)

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = next.(AppModel)
	require.NotNil(t, cmd)
	require.True(t, app.Page().Busy())

	var result views.ImproveResultMsg
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if msg, ok := c().(views.ImproveResultMsg); ok {
			result = msg
		}
	}
	require.NotEmpty(t, result.ID)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyCtrlO})
	app = send(t, app, result)

	assert.False(t, app.Page().Busy())
	assert.True(t, app.Drawer().IsOpen())
	assert.Contains(t, app.View(), "en Content")
}

func TestAppDrawerSwallowsPageKeys(t *testing.T) {
	app := newTestApp(t)
	app = send(t, app, tea.KeyMsg{Type: tea.KeyCtrlO})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.False(t, app.Page().Busy())
}
