// Package candidate merges scanned directories, declared session names and
// usage history into one ranked, deduplicated list of session targets.
package candidate

import (
	"path/filepath"
	"strings"
)

// Origin records where a candidate came from.
type Origin int

const (
	Scanned Origin = iota
	History
	Explicit
)

func (o Origin) String() string {
	switch o {
	case History:
		return "history"
	case Explicit:
		return "explicit"
	case Scanned:
		return "scanned"
	default:
		return "unknown"
	}
}

// Candidate is a session target. ID doubles as the tmux session name; Path
// is the working directory when known, empty otherwise.
type Candidate struct {
	ID     string
	Path   string
	Origin Origin
}

// Identifier derives the session name for a directory: its base name with
// "." replaced by "·", since tmux treats a dot in a target as a window
// separator.
func Identifier(path string) string {
	return SafeName(filepath.Base(filepath.Clean(path)))
}

// SafeName applies the same dot substitution to a plain session name so
// history, config and tmux all agree on one canonical form.
func SafeName(name string) string {
	return strings.ReplaceAll(name, ".", "·")
}

// Display is the line handed to the selector: the identifier, plus the
// directory when one is known so fuzzy matching can hit either.
func (c Candidate) Display() string {
	if c.Path == "" {
		return c.ID
	}
	return c.ID + "\t" + c.Path
}

// Build merges the three sources into one ordered list: history first in
// recency order, then explicit names in config order, then scanned paths in
// rule-then-lexical order. The first occurrence of an identifier wins its
// position and origin; a later duplicate that knows the filesystem path
// backfills it, so a history entry can still drive "create in this
// directory".
func Build(history, explicit, scanned []string) []Candidate {
	index := make(map[string]int)
	var out []Candidate

	add := func(c Candidate) {
		if i, ok := index[c.ID]; ok {
			if out[i].Path == "" && c.Path != "" {
				out[i].Path = c.Path
			}
			return
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}

	for _, id := range history {
		add(Candidate{ID: id, Origin: History})
	}
	for _, name := range explicit {
		add(Candidate{ID: SafeName(name), Origin: Explicit})
	}
	for _, path := range scanned {
		add(Candidate{ID: Identifier(path), Path: path, Origin: Scanned})
	}
	return out
}
