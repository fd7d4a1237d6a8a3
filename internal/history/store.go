// Package history tracks previously used session names in recency order and
// reconciles them against live tmux sessions.
package history

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when removing a name the store doesn't hold.
	ErrNotFound = errors.New("not in history")
	// ErrCorrupt marks a persisted store that can't be read back. Surfaced
	// as fatal rather than silently starting over.
	ErrCorrupt = errors.New("history store corrupt")
)

// Store is the in-memory history: names ordered most recent first. It is a
// plain value; persistence happens at an explicit load/save boundary (see
// Backend), so all reconciliation logic is testable without a filesystem.
type Store struct {
	names []string
}

// New builds a store from names already in recency order.
func New(names []string) *Store {
	s := &Store{names: make([]string, len(names))}
	copy(s.names, names)
	return s
}

// Record moves name to the front, inserting it if absent. Recording the
// current front entry is a no-op.
func (s *Store) Record(name string) {
	for i, n := range s.names {
		if n != name {
			continue
		}
		if i == 0 {
			return
		}
		copy(s.names[1:i+1], s.names[:i])
		s.names[0] = name
		return
	}
	s.names = append([]string{name}, s.names...)
}

// Remove deletes name from the store. Removing an unknown name fails with
// ErrNotFound and leaves the store unchanged.
func (s *Store) Remove(name string) error {
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Contains reports whether name is recorded.
func (s *Store) Contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// List returns the names most recent first. The slice is a copy.
func (s *Store) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of recorded names.
func (s *Store) Len() int {
	return len(s.names)
}

// Next returns the entry after current in recency order, wrapping around.
// Reports false when the store is empty or current isn't recorded.
func (s *Store) Next(current string) (string, bool) {
	return s.step(current, 1)
}

// Previous returns the entry before current, wrapping around.
func (s *Store) Previous(current string) (string, bool) {
	return s.step(current, -1)
}

func (s *Store) step(current string, delta int) (string, bool) {
	n := len(s.names)
	if n == 0 {
		return "", false
	}
	for i, name := range s.names {
		if name == current {
			return s.names[((i+delta)%n+n)%n], true
		}
	}
	return "", false
}
