package views

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/gini/internal/improve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeImprover struct {
	mu     sync.Mutex
	result improve.Result
	inputs []string
}

func (f *fakeImprover) Improve(_ context.Context, input string) improve.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	return f.result
}

type fakeClipboard struct {
	written []string
	err     error
}

func (f *fakeClipboard) Write(text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, text)
	return nil
}

func twoLanguages() improve.Result {
	return improve.Success(&improve.Improvement{
		Languages: []string{"en", "kn"},
		Samples: map[string][]string{
			"en": {"  The first improved sentence. ", "The second one."},
			"kn": {"ಕನ್ನಡ ಆವೃತ್ತಿ"},
		},
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// resultMsg runs a submission command and returns the delivered result.
func resultMsg(t *testing.T, cmd tea.Cmd) ImproveResultMsg {
	t.Helper()
	require.NotNil(t, cmd)

	var cmds []tea.Cmd
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		cmds = msg
	case ImproveResultMsg:
		return msg
	}
	for _, c := range cmds {
		if c == nil {
			continue
		}
		if msg, ok := c().(ImproveResultMsg); ok {
			return msg
		}
	}
	t.Fatal("no ImproveResultMsg produced")
	return ImproveResultMsg{}
}

func newModel(imp *fakeImprover, clip *fakeClipboard, delay time.Duration) ImproveModel {
	m := NewImproveModel(imp, clip.Write, delay, nil)
	m.SetSize(100, 60)
	return m
}

func TestSubmitRendersTables(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	m := newModel(imp, &fakeClipboard{}, time.Second)
	m.SetInput("this are bad")

	m, cmd := m.Update(key("ctrl+s"))
	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), "Processing...")

	msg := resultMsg(t, cmd)
	m, _ = m.Update(msg)

	assert.False(t, m.Busy())
	assert.Equal(t, []string{"this are bad"}, imp.inputs)

	view := m.View()
	assert.Contains(t, view, "en Content")
	assert.Contains(t, view, "kn Content")
	assert.Contains(t, view, "The first improved sentence.")
	assert.Contains(t, view, "ಕನ್ನಡ ಆವೃತ್ತಿ")
	assert.Less(t, strings.Index(view, "en Content"), strings.Index(view, "kn Content"))
	assert.Contains(t, view, "Improve Content")
}

func TestSubmitIgnoredWhileBusy(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	m := newModel(imp, &fakeClipboard{}, time.Second)

	m, first := m.Update(key("ctrl+s"))
	require.NotNil(t, first)

	m, second := m.Update(key("ctrl+s"))
	assert.Nil(t, second)
	assert.True(t, m.Busy())
}

func TestFailureRendersError(t *testing.T) {
	imp := &fakeImprover{result: improve.Failure(improve.KindParse, &improve.ParseError{Raw: "secret raw"})}
	m := newModel(imp, &fakeClipboard{}, time.Second)

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))

	view := m.View()
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "failed to parse the response")
	assert.NotContains(t, view, "secret raw")
	assert.False(t, m.Busy())
}

func TestEmptySuccessShowsNote(t *testing.T) {
	imp := &fakeImprover{result: improve.Success(&improve.Improvement{})}
	m := newModel(imp, &fakeClipboard{}, time.Second)

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))

	assert.Contains(t, m.View(), "no samples")
}

func TestStaleResultDropped(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	m := newModel(imp, &fakeClipboard{}, time.Second)

	m, _ = m.Update(key("ctrl+s"))
	m, _ = m.Update(ImproveResultMsg{ID: "not-the-pending-one", Result: twoLanguages()})

	assert.True(t, m.Busy())
	assert.NotContains(t, m.View(), "en Content")
}

func TestCopyMarksAndExpires(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	clip := &fakeClipboard{}
	m := newModel(imp, clip, 20*time.Millisecond)

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))
	require.Equal(t, focusResults, m.focus)

	m, _ = m.Update(key("down"))
	start := time.Now()
	m, reset := m.Update(key("y"))
	require.NotNil(t, reset)

	assert.Equal(t, []string{"The second one."}, clip.written)
	assert.True(t, m.State().Copied("The second one."))
	assert.False(t, m.State().Copied("The first improved sentence."))
	assert.Contains(t, m.View(), copiedIcon)

	msg := reset()
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	m, _ = m.Update(msg)
	assert.False(t, m.State().Copied("The second one."))
	assert.NotContains(t, m.View(), copiedIcon)
}

func TestCopyCopiesTrimmedText(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	clip := &fakeClipboard{}
	m := newModel(imp, clip, time.Second)

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))
	m, _ = m.Update(key("enter"))

	assert.Equal(t, []string{"The first improved sentence."}, clip.written)
}

func TestRecopyRestartsTimer(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	m := newModel(imp, &fakeClipboard{}, time.Millisecond)

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))

	m, first := m.Update(key("y"))
	m, second := m.Update(key("y"))

	m, _ = m.Update(first())
	assert.True(t, m.State().Copied("The first improved sentence."), "older timer must not clear the flag")

	m, _ = m.Update(second())
	assert.False(t, m.State().Copied("The first improved sentence."))
}

func TestCopyFailureIsNotShown(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	clip := &fakeClipboard{err: errors.New("no clipboard")}
	m := newModel(imp, clip, time.Second)

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))
	m, reset := m.Update(key("y"))

	assert.Nil(t, reset)
	assert.False(t, m.State().Copied("The first improved sentence."))
	assert.NotContains(t, m.View(), "no clipboard")
	assert.NotContains(t, m.View(), "Error:")
}

func TestTabTogglesFocus(t *testing.T) {
	imp := &fakeImprover{result: twoLanguages()}
	m := newModel(imp, &fakeClipboard{}, time.Second)

	m, _ = m.Update(key("tab"))
	assert.Equal(t, focusInput, m.focus, "nothing to focus before a result")

	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(resultMsg(t, cmd))
	assert.Equal(t, focusResults, m.focus)

	m, _ = m.Update(key("tab"))
	assert.Equal(t, focusInput, m.focus)
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "aaa bbb\nccc", wordWrap("aaa bbb ccc", 7))
	assert.Equal(t, "one\n\ntwo", wordWrap("one\n\ntwo", 10))
	assert.Equal(t, "abcd\nef", wordWrap("abcdef", 4))
	assert.Equal(t, "", wordWrap("", 10))
}
