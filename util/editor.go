package util

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

const defaultEditor = "vi"

// ResolveEditor returns the editor command line: configured if set, else
// $VISUAL, else $EDITOR, else vi.
func ResolveEditor(configured string) []string {
	for _, candidate := range []string{
		configured,
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
	} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	return []string{defaultEditor}
}

// EditFile runs editor on file attached to the current terminal and waits
// for it to exit.
func EditFile(editor []string, file string) error {
	if len(editor) == 0 {
		return fmt.Errorf("editor command cannot be empty")
	}

	args := append(append([]string{}, editor[1:]...), file)
	execCmd := exec.Command(editor[0], args...)
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	log.Debugf("executing editor: %s %s", strings.Join(editor, " "), file)
	if err := execCmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor[0], err)
	}
	return nil
}
