package cmd

import (
	"errors"
	"fmt"

	"github.com/f3rmion/gini/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var improveCmd = &cobra.Command{
	Use:   "improve [text...]",
	Short: "Improve a paragraph without the TUI",
	Long: `Send a paragraph to Gemini and print the improved samples.

The paragraph is taken from the arguments, from --file, or from stdin.

Examples:
  gini improve "this sentense have some mistake"
  cat draft.txt | gini improve --format json
  gini improve --file draft.txt --copy en:2`,
	RunE: runImprove,
}

var (
	improveFile   string
	improveFormat string
	improveCopy   string
)

func init() {
	rootCmd.AddCommand(improveCmd)
	improveCmd.Flags().StringVarP(&improveFile, "file", "f", "", "read the paragraph from a file (- for stdin)")
	improveCmd.Flags().StringVarP(&improveFormat, "format", "o", FormatTable, "output format: table, json, yaml")
	improveCmd.Flags().StringVarP(&improveCopy, "copy", "c", "", "copy one sample to the clipboard, as lang:n")
}

func runImprove(cmd *cobra.Command, args []string) error {
	if err := validFormat(improveFormat); err != nil {
		return err
	}

	var target *copyTarget
	if improveCopy != "" {
		t, err := parseCopyTarget(improveCopy)
		if err != nil {
			return err
		}
		target = &t
	}

	input, err := readInput(args, improveFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewConsole(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, closeHistory, err := newImprover(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeHistory()

	cmd.SilenceUsage = true

	res := svc.Improve(cmd.Context(), input)
	if res.Failed() {
		return errors.New(res.Message())
	}

	if err := writeImprovement(cmd.OutOrStdout(), res.Improvement, improveFormat); err != nil {
		return err
	}

	if target == nil {
		return nil
	}

	text, err := target.Select(res.Improvement)
	if err != nil {
		return err
	}
	if err := newClipboard(cfg).Write(text); err != nil {
		logger.Warn("failed to copy text", zap.Error(err))
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s:%d to clipboard\n", target.Language, target.Index)

	return nil
}
