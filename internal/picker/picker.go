// Package picker presents an ordered candidate list and returns the user's
// choice. The external fzf binary is preferred; a built-in filtering picker
// takes over when fzf isn't installed.
package picker

import "os/exec"

// Selector presents display strings in order and returns the chosen one.
// Cancellation is a result, not an error: no side effect may fire on it.
type Selector interface {
	Choose(items []string) (choice string, ok bool, err error)
}

// Default returns fzf when available, otherwise the built-in picker. binds
// are fzf --bind expressions; the built-in picker ignores them.
func Default(header string, binds ...string) Selector {
	if _, err := exec.LookPath("fzf"); err == nil {
		return &FZF{Header: header, Binds: binds}
	}
	return &Builtin{Header: header}
}
