package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when neither $VISUAL nor $EDITOR is set and no
// common editor is installed.
var ErrNoEditor = errors.New("no editor found; set $EDITOR or $VISUAL")

// fallbackEditors are tried in order when no variable is set.
var fallbackEditors = []string{"nano", "vim", "vi"}

// preferredEditor returns the editor command line from the environment,
// or the first installed fallback.
func preferredEditor(getenv func(string) string) (string, error) {
	for _, v := range []string{"VISUAL", "EDITOR"} {
		if ed := strings.TrimSpace(getenv(v)); ed != "" {
			return ed, nil
		}
	}
	for _, cand := range fallbackEditors {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", ErrNoEditor
}

// openInEditor runs the user's editor on path. The command goes through
// sh so editor flags in $EDITOR ("code --wait") keep working. The editor
// stays in the terminal's foreground process group.
func openInEditor(ctx context.Context, path string) error {
	ed, err := preferredEditor(os.Getenv)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", `$MDPDF_EDITOR "$MDPDF_FILE"`)
	cmd.Env = append(os.Environ(), "MDPDF_EDITOR="+ed, "MDPDF_FILE="+path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %q: %w", ed, err)
	}
	return nil
}
