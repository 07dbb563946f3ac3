package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [text...]",
	Short: "Print the prompt that would be sent to Gemini",
	Long: `Build the instruction prompt for a paragraph and print it. No request
is made, so no API key is needed.

Examples:
  gini prompt "a paragraph to check"
  gini prompt --file draft.txt`,
	RunE: runPrompt,
}

var promptFile string

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVarP(&promptFile, "file", "f", "", "read the paragraph from a file (- for stdin)")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	input, err := readInput(args, promptFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen, err := newPromptGenerator(cfg)
	if err != nil {
		return err
	}

	out, err := gen.Generate(input)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
