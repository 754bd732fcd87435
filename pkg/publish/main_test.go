package publish

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestLedger creates a new SQLite database file and a Ledger for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestLedger(t *testing.T) (*sql.DB, *Ledger) {
	dbFile := filepath.Join(t.TempDir(), "ledger.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	l, err := NewLedger(db)
	if err != nil {
		t.Fatalf("NewLedger() error = %v", err)
	}
	t.Cleanup(l.Close)

	return db, l
}

// envMap returns a LookupFunc backed by a map.
func envMap(m map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}
