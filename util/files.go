package util

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// ReadInput reads the whole of name, or stdin when name is "-".
func ReadInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("fail to read stdin: %w", err)
		}
		return string(data), nil
	}
	if !IsFile(name) {
		return "", fmt.Errorf("file does not exist: %s", name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("fail to read %s: %w", name, err)
	}
	return string(data), nil
}

// WriteOutput writes text followed by a newline to name, or to stdout when
// name is "" or "-".
func WriteOutput(name, text string) error {
	if name == "" || name == "-" {
		_, err := fmt.Fprintln(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(name, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("fail to write %s: %w", name, err)
	}
	log.Debugf("wrote %d bytes to %s", len(text)+1, name)
	return nil
}
