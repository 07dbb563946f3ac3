package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/f3rmion/gini/internal/history"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past submissions",
	Long: `List the submissions recorded in the local history database, newest
first. Recording is enabled with 'history: true' in config.yaml.

Examples:
  gini history
  gini history --limit 5 --format json
  gini history show 12
  gini history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the samples of one past submission",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded submissions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var (
	historyLimit  int
	historyFormat string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd, historyClearCmd)
	historyCmd.PersistentFlags().StringVarP(&historyFormat, "format", "o", FormatTable, "output format: table, json, yaml")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to list (0 = all)")
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryFile)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validFormat(historyFormat); err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	return writeEntries(cmd.OutOrStdout(), entries, historyFormat)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := validFormat(historyFormat); err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyFormat != FormatTable {
		return writeEntries(out, []history.Entry{entry}, historyFormat)
	}

	fmt.Fprintf(out, "#%d  %s  %s\n\n", entry.ID, entry.CreatedAt.Format(time.DateTime), entry.Model)
	fmt.Fprintln(out, entry.Input)
	fmt.Fprintln(out)
	if entry.Failed() {
		msg := entry.Message
		if msg == "" {
			msg = "no result recorded"
		}
		fmt.Fprintf(out, "Error: %s\n", msg)
		return nil
	}
	return writeImprovement(out, entry.Improvement, FormatTable)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries from %s\n", n, store.Path())
	return nil
}

// writeEntries prints a history listing.
func writeEntries(w io.Writer, entries []history.Entry, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []history.Entry{}
		}
		return enc.Encode(entries)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	case FormatTable:
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "No submissions recorded.")
			return err
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers("ID", "When", "Result", "Input").
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return indexStyle
				}
				return lipgloss.NewStyle()
			})
		for _, e := range entries {
			t.Row(
				strconv.FormatInt(e.ID, 10),
				e.CreatedAt.Format(time.DateTime),
				entrySummary(e),
				runewidth.Truncate(strings.Join(strings.Fields(e.Input), " "), 48, "…"),
			)
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	return validFormat(format)
}

func entrySummary(e history.Entry) string {
	if e.Failed() {
		if e.Kind == "" {
			return "no result"
		}
		return e.Kind + " error"
	}
	n := len(e.Improvement.Rows())
	return fmt.Sprintf("%d samples (%s)", n, strings.Join(e.Improvement.Languages, ", "))
}
