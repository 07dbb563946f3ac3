package cmd

import (
	"context"
	"errors"

	"github.com/f3rmion/gini/internal/config"
	"github.com/f3rmion/gini/internal/history"
	"github.com/f3rmion/gini/internal/improve"
	"github.com/f3rmion/gini/internal/llm"
	"github.com/f3rmion/gini/internal/prompt"
	"go.uber.org/zap"
)

// newPromptGenerator returns the built-in prompt, or the template named by
// prompt_template.
func newPromptGenerator(cfg *config.Config) (*prompt.Generator, error) {
	gen := prompt.NewGenerator()
	if cfg.PromptTemplate != "" {
		if err := gen.LoadTemplate(cfg.PromptTemplate); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

// newService wires the prompt generator and the Gemini client. A missing API
// key is not fatal here: the service reports it on the first submission.
func newService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*improve.Service, error) {
	gen, err := newPromptGenerator(cfg)
	if err != nil {
		return nil, err
	}

	var completer improve.Completer
	client, err := llm.NewGemini(ctx, llm.Options{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		logger.Warn("no API key configured", zap.Strings("env", config.APIKeyEnvVars))
	case err != nil:
		return nil, err
	default:
		logger.Debug("gemini client ready", zap.String("model", client.Model()), zap.Duration("timeout", cfg.Timeout))
		completer = client
	}

	return improve.NewService(gen, completer, logger), nil
}

// improver is what the TUI and the improve command submit through.
type improver interface {
	Improve(ctx context.Context, input string) improve.Result
}

// newImprover returns the service, wrapped in a history recorder when
// history is enabled. The returned func releases the history database.
func newImprover(ctx context.Context, cfg *config.Config, logger *zap.Logger) (improver, func(), error) {
	svc, err := newService(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.History {
		return svc, func() {}, nil
	}

	store, err := history.Open(cfg.HistoryFile)
	if err != nil {
		// History is a convenience; submissions still work without it.
		logger.Warn("opening history", zap.String("path", cfg.HistoryFile), zap.Error(err))
		return svc, func() {}, nil
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing history", zap.Error(err))
		}
	}
	return history.NewRecorder(svc, store, cfg.Model, logger), closeStore, nil
}
