package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    name TEXT PRIMARY KEY,
    rank INTEGER NOT NULL
);
`

// Backend persists a Store. Mutating commands load, mutate in memory, then
// save once; a failed save leaves the prior persisted state intact.
type Backend interface {
	Load() (*Store, error)
	Save(*Store) error
}

// SQLiteBackend stores history in a single-table SQLite database. Each save
// replaces the whole table in one transaction, so a concurrent reader sees
// either the previous store or the new one, never a torn state
// (last-writer-wins across concurrent invocations).
type SQLiteBackend struct {
	db *sql.DB
}

// Open creates or opens the history database at
// $XDG_STATE_HOME/sessionizer/history.db.
func Open() (*SQLiteBackend, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "sessionizer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "history.db"))
}

// OpenPath opens a history database at an explicit location.
func OpenPath(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	// WAL mode for safe concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load reads the persisted store, most recent first.
func (b *SQLiteBackend) Load() (*Store, error) {
	rows, err := b.db.Query("SELECT name FROM history ORDER BY rank")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return New(names), nil
}

// Save replaces the persisted store with s in one transaction.
func (b *SQLiteBackend) Save(s *Store) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return err
	}
	for rank, name := range s.List() {
		if _, err := tx.Exec("INSERT INTO history (name, rank) VALUES (?, ?)", name, rank); err != nil {
			return err
		}
	}
	return tx.Commit()
}
