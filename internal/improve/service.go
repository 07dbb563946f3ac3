package improve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrMissingAPIKey aborts a submission before any network call.
var ErrMissingAPIKey = errors.New("please provide your Gemini API key (set GEMINI_API_KEY)")

// Completer sends a prompt to the hosted model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// PromptBuilder renders the instruction prompt for a paragraph.
type PromptBuilder interface {
	Generate(input string) (string, error)
}

// Service runs one submission end to end. A nil Completer means no API key
// was configured.
type Service struct {
	prompts   PromptBuilder
	completer Completer
	logger    *zap.Logger
}

// NewService creates a submission pipeline.
func NewService(prompts PromptBuilder, completer Completer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		prompts:   prompts,
		completer: completer,
		logger:    logger,
	}
}

// Ready reports whether submissions can reach the provider.
func (s *Service) Ready() bool {
	return s.completer != nil
}

// Improve never returns a Go error: every failure becomes a Result.
func (s *Service) Improve(ctx context.Context, input string) Result {
	if s.completer == nil {
		s.logger.Warn("submission aborted", zap.Error(ErrMissingAPIKey))
		return Failure(KindConfig, ErrMissingAPIKey)
	}

	prompt, err := s.prompts.Generate(input)
	if err != nil {
		s.logger.Error("building prompt", zap.Error(err))
		return Failure(KindConfig, fmt.Errorf("building prompt: %w", err))
	}

	start := time.Now()
	s.logger.Debug("requesting completion", zap.Int("input_len", len(input)))

	resp, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("generating content", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return Failure(KindTransport, fmt.Errorf("an error occurred: %w", err))
	}

	imp, err := Normalize(resp)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			s.logger.Warn("parsing completion", zap.Error(perr.Err))
			s.logger.Debug("raw completion", zap.String("raw", perr.Raw))
		} else {
			s.logger.Warn("unexpected completion shape", zap.Error(err))
		}
		return Failure(kindOf(err), err)
	}

	s.logger.Info("completion normalized",
		zap.Strings("languages", imp.Languages),
		zap.Int("samples", len(imp.Keys())),
		zap.Duration("elapsed", time.Since(start)))

	return Success(imp)
}
