// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Writer copies text to the system clipboard, falling back to an OSC 52
// escape sequence (understood by most terminals, including over SSH) when
// no native clipboard tool is available.
type Writer struct {
	native   func(string) error
	fallback io.Writer
}

// New creates a Writer. A nil fallback disables the OSC 52 path.
func New(fallback io.Writer) *Writer {
	return &Writer{
		native:   sysclip.WriteAll,
		fallback: fallback,
	}
}

// Write copies text to the clipboard.
func (w *Writer) Write(text string) error {
	err := w.native(text)
	if err == nil {
		return nil
	}
	if w.fallback == nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	if _, ferr := osc52.New(text).WriteTo(w.fallback); ferr != nil {
		return fmt.Errorf("writing clipboard: %w", errors.Join(err, ferr))
	}
	return nil
}

// Available checks if a native clipboard tool is available.
func Available() bool {
	return !sysclip.Unsupported
}
