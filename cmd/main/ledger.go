package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gkchan/HB-markov-twitter/pkg/publish"
	"github.com/mitchellh/go-homedir"
)

// openLedger opens the ledger database at path, creating it and its schema if
// needed. The caller closes both the ledger and the database.
func openLedger(path string) (*sql.DB, *publish.Ledger, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to expand ledger path: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err = publish.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup ledger schema: %w", err)
	}

	ledger, err := publish.NewLedger(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare ledger: %w", err)
	}
	return db, ledger, nil
}
