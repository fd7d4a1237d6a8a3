package picker

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FZF pipes items to the external fzf binary and reads the selection back.
type FZF struct {
	Header string
	// Binds are extra --bind expressions, e.g. the ctrl-x remove binding on
	// the interactive session list.
	Binds []string
}

// Choose runs fzf. Exit 130 (interrupt) and 1 (no match) report a cancelled
// selection; any other failure surfaces verbatim and is never retried.
func (f *FZF) Choose(items []string) (string, bool, error) {
	fzfBin, err := exec.LookPath("fzf")
	if err != nil {
		return "", false, fmt.Errorf("fzf not found: %w", err)
	}

	args := []string{"--delimiter", "\t"}
	if f.Header != "" {
		args = append(args, "--header", f.Header)
	}
	for _, b := range f.Binds {
		args = append(args, "--bind", b)
	}

	var out bytes.Buffer
	cmd := exec.Command(fzfBin, args...)
	cmd.Stdin = strings.NewReader(strings.Join(items, "\n"))
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case 1, 130:
				return "", false, nil
			}
		}
		return "", false, fmt.Errorf("fzf: %w", err)
	}

	choice := strings.TrimRight(out.String(), "\n")
	if choice == "" {
		return "", false, nil
	}
	return choice, true, nil
}
