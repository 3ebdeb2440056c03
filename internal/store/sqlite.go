package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
)

// historyKey is the single logical entry holding the serialized collection.
const historyKey = "reports_history"

// SQLiteBackend persists the collection as one versioned JSON blob in a
// key-value table. The whole blob is read once at open and rewritten in
// full on every save, matching the durable-store contract.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite initializes the database at baseDir/bamab.db. The baseDir
// parameter allows tests to use t.TempDir() instead of ~/.bamab.
func OpenSQLite(baseDir string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	dbPath := filepath.Join(baseDir, "bamab.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	_ = os.Chmod(dbPath, 0600)

	return &SQLiteBackend{db: db}, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("failed to get user_version: %w", err)
	}

	// Migration 0 -> 1: single-entry history table
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS history (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if _, err := db.Exec("PRAGMA user_version = 1;"); err != nil {
			return fmt.Errorf("failed to set user_version: %w", err)
		}
	}

	return nil
}

// Load reads and decodes the history blob. A missing entry yields an empty
// collection; a corrupt blob yields an error the Store recovers from by
// starting empty.
func (b *SQLiteBackend) Load() ([]report.SavedReportRecord, error) {
	var value string
	err := b.db.QueryRow("SELECT value FROM history WHERE key = ?", historyKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return DecodeHistory([]byte(value))
}

// Save rewrites the history blob in full. The write is synchronous: once
// Save returns, a fresh Load (including from a new process) sees the data.
func (b *SQLiteBackend) Save(records []report.SavedReportRecord) error {
	data, err := EncodeHistory(records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	_, err = b.db.Exec(`
		INSERT INTO history (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, historyKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
