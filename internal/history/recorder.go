package history

import (
	"context"

	"github.com/f3rmion/gini/internal/improve"
	"go.uber.org/zap"
)

// Improver runs one submission.
type Improver interface {
	Improve(ctx context.Context, input string) improve.Result
}

// Recorder stores every outcome of the wrapped Improver. Storage failures
// are logged and never change the result.
type Recorder struct {
	next   Improver
	store  *Store
	model  string
	logger *zap.Logger
}

// NewRecorder wraps next.
func NewRecorder(next Improver, store *Store, model string, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{next: next, store: store, model: model, logger: logger}
}

// Improve runs the wrapped submission and records it.
func (r *Recorder) Improve(ctx context.Context, input string) improve.Result {
	res := r.next.Improve(ctx, input)

	id, err := r.store.Record(context.WithoutCancel(ctx), NewEntry(r.model, input, res))
	if err != nil {
		r.logger.Warn("recording submission", zap.Error(err))
		return res
	}
	r.logger.Debug("submission recorded", zap.Int64("history_id", id))
	return res
}
