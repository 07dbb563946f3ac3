package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/f3rmion/gini/internal/improve"
	"gopkg.in/yaml.v3"
)

// Output formats for the improve command.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a8dadc"))
	indexStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffe66d"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80"))
)

func validFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}

// writeImprovement prints imp in the given format.
func writeImprovement(w io.Writer, imp *improve.Improvement, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(imp)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(imp); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	case FormatTable:
		rows := imp.Rows()
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "The response contained no samples.")
			return err
		}
		// Rows follow Languages order, so each table takes the next
		// len(Samples[lang]) rows.
		flat := 0
		for _, lang := range imp.Languages {
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(borderStyle).
				Headers("#", lang+" Content").
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == table.HeaderRow:
						return headerStyle
					case col == 0:
						return indexStyle
					}
					return lipgloss.NewStyle()
				})
			for range imp.Samples[lang] {
				r := rows[flat]
				t.Row(strconv.Itoa(r.Index), r.Text)
				flat++
			}
			if _, err := fmt.Fprintln(w, t.Render()); err != nil {
				return err
			}
		}
		return nil
	}
	return validFormat(format)
}

// copyTarget names one sample as lang:index (1-based).
type copyTarget struct {
	Language string
	Index    int
}

func parseCopyTarget(s string) (copyTarget, error) {
	lang, idx, found := strings.Cut(strings.TrimSpace(s), ":")
	if lang == "" {
		return copyTarget{}, fmt.Errorf("invalid copy target %q: want lang[:n]", s)
	}
	if !found {
		return copyTarget{Language: lang, Index: 1}, nil
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 1 {
		return copyTarget{}, fmt.Errorf("invalid copy target %q: index must be a positive number", s)
	}
	return copyTarget{Language: lang, Index: n}, nil
}

// Select returns the trimmed sample text the target names.
func (t copyTarget) Select(imp *improve.Improvement) (string, error) {
	for _, r := range imp.Rows() {
		if r.Language == t.Language && r.Index == t.Index {
			return r.Text, nil
		}
	}
	return "", fmt.Errorf("no sample %s:%d in the response", t.Language, t.Index)
}
