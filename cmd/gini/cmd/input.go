package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNoInput = errors.New("no input: pass the paragraph as arguments, with --file, or on stdin")

// readInput returns the paragraph from args, a file ("-" for stdin), or
// stdin when it is not a terminal.
func readInput(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	}

	if f, ok := stdin.(*os.File); ok && file == "" {
		info, err := f.Stat()
		if err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", errNoInput
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
