package session

import (
	"github.com/f3rmion/gini/internal/improve"
	"github.com/google/uuid"
)

// State is the improve page's state machine. It is not safe for concurrent
// use; the UI event loop owns it.
type State struct {
	Input string

	busy    bool
	pending string
	result  *improve.Result
	gen     uint64
	copies  *CopyState
}

// New creates an idle state.
func New() *State {
	return &State{copies: NewCopyState(0, nil)}
}

// Submit starts a submission for the current input. It refuses while a
// submission is in flight, so at most one request exists at a time.
func (s *State) Submit() (id string, ok bool) {
	if s.busy {
		return "", false
	}
	s.busy = true
	s.result = nil
	s.pending = uuid.NewString()
	return s.pending, true
}

// Complete installs the result of submission id. Results for any other id
// are dropped.
func (s *State) Complete(id string, r improve.Result) bool {
	if !s.busy || id != s.pending {
		return false
	}
	s.busy = false
	s.pending = ""
	s.result = &r
	s.gen++
	s.copies = NewCopyState(s.gen, r.Improvement.Keys())
	return true
}

// Busy reports whether a submission is in flight.
func (s *State) Busy() bool {
	return s.busy
}

// Pending returns the id of the in-flight submission.
func (s *State) Pending() string {
	return s.pending
}

// Result returns the latest result, or nil before the first completion and
// while a submission is in flight.
func (s *State) Result() *improve.Result {
	return s.result
}

// Rows returns the renderable samples of a successful result.
func (s *State) Rows() []improve.Row {
	if s.result == nil || s.result.Failed() {
		return nil
	}
	return s.result.Improvement.Rows()
}

// MarkCopied records a successful clipboard write of text.
func (s *State) MarkCopied(text string) Ticket {
	return s.copies.Mark(text)
}

// ExpireCopied resets the flag named by t unless a newer copy or a newer
// result superseded it.
func (s *State) ExpireCopied(t Ticket) bool {
	return s.copies.Expire(t)
}

// Copied reports whether text was copied within the reset delay.
func (s *State) Copied(text string) bool {
	return s.copies.Copied(text)
}
