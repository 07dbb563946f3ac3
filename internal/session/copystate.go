// Package session holds the presentation state of the improve page: the
// input, the busy flag, the current result and the per-sample copy flags.
package session

import (
	"strings"
	"time"
)

// DefaultCopyResetDelay is how long a sample shows as copied.
const DefaultCopyResetDelay = 1500 * time.Millisecond

// Ticket identifies one copy action so that its expiry can be matched
// against later copies of the same text.
type Ticket struct {
	Key string
	seq uint64
	gen uint64
}

// CopyState maps trimmed sample text to a recently-copied flag.
type CopyState struct {
	gen   uint64
	flags map[string]bool
	seq   map[string]uint64
}

// NewCopyState creates a state with every key initialized to false.
func NewCopyState(gen uint64, keys []string) *CopyState {
	c := &CopyState{
		gen:   gen,
		flags: make(map[string]bool, len(keys)),
		seq:   make(map[string]uint64, len(keys)),
	}
	for _, k := range keys {
		c.flags[strings.TrimSpace(k)] = false
	}
	return c
}

// Mark sets the flag for text and returns the ticket its expiry must present.
// Marking again restarts the expiry: earlier tickets stop matching.
func (c *CopyState) Mark(text string) Ticket {
	key := strings.TrimSpace(text)
	c.seq[key]++
	c.flags[key] = true
	return Ticket{Key: key, seq: c.seq[key], gen: c.gen}
}

// Expire clears the flag if t is the latest ticket for its key.
func (c *CopyState) Expire(t Ticket) bool {
	if t.seq == 0 || t.gen != c.gen || c.seq[t.Key] != t.seq {
		return false
	}
	c.flags[t.Key] = false
	return true
}

// Copied reports the flag for text.
func (c *CopyState) Copied(text string) bool {
	return c.flags[strings.TrimSpace(text)]
}

// Len is the number of tracked keys. Identical trimmed samples share a key.
func (c *CopyState) Len() int {
	return len(c.flags)
}
