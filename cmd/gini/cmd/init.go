package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/gini/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gini configuration",
	Long: `Write a config.yaml with the default settings to your config directory.

The file holds the model name, request timeout, copy indicator delay, log
file and an optional prompt template path. The API key is not stored there:
export GEMINI_API_KEY instead.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return err
	}

	if err := config.Save(path, config.Default(configDir)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. export GEMINI_API_KEY=<your key>")
	fmt.Fprintln(out, "  2. Run 'gini' to open the TUI, or 'gini improve <text>'")

	return nil
}
