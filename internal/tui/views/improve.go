package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/gini/internal/improve"
	"github.com/f3rmion/gini/internal/session"
	"go.uber.org/zap"
)

// Improver runs one submission.
type Improver interface {
	Improve(ctx context.Context, input string) improve.Result
}

// ImproveResultMsg delivers the outcome of submission ID.
type ImproveResultMsg struct {
	ID     string
	Result improve.Result
}

type copyResetMsg struct {
	ticket session.Ticket
}

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// chrome is the number of lines above the results area: title, input box
// and spacing.
const chrome = 10

// ImproveModel is the content improver page.
type ImproveModel struct {
	input   textarea.Model
	spinner spinner.Model
	results viewport.Model

	state    *session.State
	improver Improver
	copyText func(string) error
	logger   *zap.Logger

	resetDelay time.Duration
	focus      focusArea
	selected   int

	width  int
	height int
}

// NewImproveModel creates the improve page. copyText writes to the clipboard.
func NewImproveModel(improver Improver, copyText func(string) error, resetDelay time.Duration, logger *zap.Logger) ImproveModel {
	ta := textarea.New()
	ta.Placeholder = "Enter your paragraph here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	if resetDelay <= 0 {
		resetDelay = session.DefaultCopyResetDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return ImproveModel{
		input:      ta,
		spinner:    sp,
		results:    viewport.New(60, 10),
		state:      session.New(),
		improver:   improver,
		copyText:   copyText,
		logger:     logger,
		resetDelay: resetDelay,
	}
}

// SetSize updates the view dimensions.
func (m *ImproveModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := width - 24
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.input.SetWidth(inputWidth)

	m.results.Width = width
	m.results.Height = max(height-chrome, 3)
	m.refreshResults()
}

// SetInput replaces the paragraph in the input box.
func (m *ImproveModel) SetInput(text string) {
	m.input.SetValue(text)
}

// State exposes the presentation state.
func (m ImproveModel) State() *session.State {
	return m.state
}

// Busy reports whether a submission is in flight.
func (m ImproveModel) Busy() bool {
	return m.state.Busy()
}

// Init starts the cursor blink.
func (m ImproveModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (m ImproveModel) Update(msg tea.Msg) (ImproveModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return m, m.submit()
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		}

		if m.focus == focusResults {
			return m.updateResults(msg)
		}

	case ImproveResultMsg:
		if !m.state.Complete(msg.ID, msg.Result) {
			m.logger.Debug("dropping stale result", zap.String("request_id", msg.ID))
			return m, nil
		}
		m.selected = 0
		m.results.GotoTop()
		if msg.Result.Failed() {
			m.logger.Info("submission failed",
				zap.String("request_id", msg.ID),
				zap.Stringer("kind", msg.Result.Kind),
				zap.Error(msg.Result.Err))
		} else {
			m.logger.Info("submission completed",
				zap.String("request_id", msg.ID),
				zap.Int("rows", len(m.state.Rows())))
			if len(m.state.Rows()) > 0 {
				m.setFocus(focusResults)
			}
		}
		m.refreshResults()
		return m, nil

	case copyResetMsg:
		if m.state.ExpireCopied(msg.ticket) {
			m.refreshResults()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ImproveModel) updateResults(msg tea.KeyMsg) (ImproveModel, tea.Cmd) {
	rows := m.state.Rows()
	switch msg.String() {
	case "j", "down":
		if m.selected < len(rows)-1 {
			m.selected++
			m.refreshResults()
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.refreshResults()
		}
	case "g", "home":
		m.selected = 0
		m.refreshResults()
	case "G", "end":
		if len(rows) > 0 {
			m.selected = len(rows) - 1
			m.refreshResults()
		}
	case "enter", "y", "c":
		return m, m.copySelected()
	}
	return m, nil
}

// submit starts a request unless one is already in flight.
func (m *ImproveModel) submit() tea.Cmd {
	if m.improver == nil {
		return nil
	}
	m.state.Input = m.input.Value()
	id, ok := m.state.Submit()
	if !ok {
		return nil
	}
	m.selected = 0
	m.setFocus(focusInput)
	m.refreshResults()

	m.logger.Info("submitting", zap.String("request_id", id), zap.Int("input_len", len(m.state.Input)))

	input := m.state.Input
	improver := m.improver
	request := func() tea.Msg {
		return ImproveResultMsg{ID: id, Result: improver.Improve(context.Background(), input)}
	}
	return tea.Batch(m.spinner.Tick, request)
}

// copySelected writes the selected sample to the clipboard. Failures are
// logged only.
func (m *ImproveModel) copySelected() tea.Cmd {
	rows := m.state.Rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return nil
	}
	text := rows[m.selected].Text

	if err := m.copyText(text); err != nil {
		m.logger.Warn("failed to copy text", zap.Error(err))
		return nil
	}
	m.logger.Debug("text copied to clipboard", zap.String("text", text))

	ticket := m.state.MarkCopied(text)
	m.refreshResults()
	return tea.Tick(m.resetDelay, func(time.Time) tea.Msg {
		return copyResetMsg{ticket: ticket}
	})
}

func (m *ImproveModel) toggleFocus() {
	if m.focus == focusInput && len(m.state.Rows()) > 0 {
		m.setFocus(focusResults)
		return
	}
	m.setFocus(focusInput)
}

func (m *ImproveModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.refreshResults()
}

// refreshResults re-renders the results area and scrolls the selected row
// into view.
func (m *ImproveModel) refreshResults() {
	content, offsets := m.renderResults()
	m.results.SetContent(content)

	if m.selected >= len(offsets) {
		return
	}
	top := offsets[m.selected]
	bottom := lipgloss.Height(content) - 1
	if m.selected+1 < len(offsets) {
		bottom = offsets[m.selected+1] - 1
	}
	if top < m.results.YOffset {
		m.results.SetYOffset(top)
	} else if bottom >= m.results.YOffset+m.results.Height {
		m.results.SetYOffset(bottom - m.results.Height + 1)
	}
}

// View renders the improve page.
func (m ImproveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Content Improver with Gemini AI"))
	b.WriteString("\n\n")

	box := inputBoxStyle
	if m.focus == focusInput {
		box = inputBoxFocusedStyle
	}
	var button string
	if m.state.Busy() {
		button = buttonBusyStyle.Render(m.spinner.View() + " Processing...")
	} else {
		button = buttonStyle.Render("Improve Content")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, box.Render(m.input.View()), button))
	b.WriteString("\n")

	b.WriteString(m.results.View())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m ImproveModel) renderHelp() string {
	parts := []string{"ctrl+s: improve"}
	if len(m.state.Rows()) > 0 {
		parts = append(parts, "tab: switch focus")
		if m.focus == focusResults {
			parts = append(parts, "j/k: select", "enter/y: copy")
		}
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// renderResults renders the error panel or the per-language tables. The
// second return value holds the starting line of each row.
func (m ImproveModel) renderResults() (string, []int) {
	res := m.state.Result()
	if res == nil {
		return "", nil
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	if res.Failed() {
		body := errorTitleStyle.Render("Error:") + "\n" + wordWrap(res.Message(), width-8)
		return errorBoxStyle.Width(width - 2).Render(body), nil
	}

	rows := res.Improvement.Rows()
	if len(rows) == 0 {
		return mutedStyle.Render("The response contained no samples."), nil
	}

	var (
		blocks  []string
		offsets []int
		line    int
		flat    int
	)
	for _, lang := range res.Improvement.Languages {
		samples := res.Improvement.Samples[lang]

		var tb strings.Builder
		tb.WriteString(tableHeaderStyle.Render(lang + " Content"))
		// margin + border + header
		tableLine := line + 2 + 1
		innerWidth := width - 6
		indexWidth := len(fmt.Sprint(len(samples))) + 2
		textWidth := max(innerWidth-indexWidth-3, 10)

		for i := range samples {
			row := rows[flat]
			tb.WriteString("\n")
			if i > 0 {
				tb.WriteString(rowDividerStyle.Render(strings.Repeat("─", innerWidth)))
				tb.WriteString("\n")
				tableLine++
			}
			offsets = append(offsets, tableLine)

			cell := m.renderRow(row, flat == m.selected, indexWidth, textWidth)
			tb.WriteString(cell)
			tableLine += lipgloss.Height(cell)
			flat++
		}

		block := tableStyle.Width(width - 2).Render(tb.String())
		blocks = append(blocks, block)
		line += lipgloss.Height(block)
	}

	return strings.Join(blocks, "\n"), offsets
}

func (m ImproveModel) renderRow(row improve.Row, selected bool, indexWidth, textWidth int) string {
	text := sampleStyle
	if selected && m.focus == focusResults {
		text = selectedSampleStyle
	}

	icon := copyIconStyle.Width(3).Render(copyIcon)
	if m.state.Copied(row.Text) {
		icon = copiedIconStyle.Width(3).Render(copiedIcon)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		indexStyle.Width(indexWidth).Render(fmt.Sprintf("%d", row.Index)),
		text.Width(textWidth).Render(wordWrap(row.Text, textWidth)),
		icon,
	)
}
