package ledger

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_sheets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Ledger tracks processed cue sheets in a SQLite database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing ledger %s: %w", path, err)
	}

	return &Ledger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// IsProcessed reports whether path has been marked as processed.
func (l *Ledger) IsProcessed(path string) (bool, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM processed_sheets WHERE path = ?", path).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkProcessed records path as processed. Marking the same path twice
// is not an error.
func (l *Ledger) MarkProcessed(path string) error {
	_, err := l.db.Exec("INSERT OR IGNORE INTO processed_sheets (path) VALUES (?)", path)
	return err
}

// Forget removes path from the ledger so it will be split again.
func (l *Ledger) Forget(path string) error {
	_, err := l.db.Exec("DELETE FROM processed_sheets WHERE path = ?", path)
	return err
}
