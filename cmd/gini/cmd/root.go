// Package cmd contains all CLI commands for gini.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/gini/internal/clipboard"
	"github.com/f3rmion/gini/internal/config"
	"github.com/f3rmion/gini/internal/logging"
	"github.com/f3rmion/gini/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gini [text...]",
	Short: "Gen AI Utility - improve a paragraph with Gemini",
	Long: `gini sends a paragraph to Google's Gemini model and shows the
improved versions it returns, grouped by language, ready to copy.

The API key is read from the GEMINI_API_KEY (or GINI_API_KEY) environment
variable. It is never stored in the config file.

Running 'gini' without a subcommand launches the interactive TUI. Any
arguments prefill the paragraph box.`,
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/gini)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose logging")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
		return
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
		os.Exit(1)
	}
	viper.Set("config_dir", configDir)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml and GINI_* variables from the config directory.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), getConfigDir())
}

// newClipboard returns the clipboard writer. OSC 52 output goes to stderr.
func newClipboard(cfg *config.Config) *clipboard.Writer {
	var fallback io.Writer
	if cfg.OSC52 {
		fallback = os.Stderr
	}
	return clipboard.New(fallback)
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	if err := config.EnsureDir(getConfigDir()); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, closeHistory, err := newImprover(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeHistory()

	clip := newClipboard(cfg)
	if !clipboard.Available() {
		logger.Info("no native clipboard tool found", zap.Bool("osc52", cfg.OSC52))
	}

	p := tea.NewProgram(
		tui.NewApp(tui.Options{
			Config:   cfg,
			Improver: svc,
			Copy:     clip.Write,
			Logger:   logger,
			Path:     "/",
			Input:    strings.Join(args, " "),
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
