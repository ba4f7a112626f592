package store

import (
	"fmt"
	"os"
	"path/filepath"

	"safecircle/config"
	"safecircle/config/database"
)

// NewPersister creates a Persister for the configured backend.
//
// Supported backends:
//
//	"file"     - single JSON file at cfg.File (default)
//	"postgres" - store_snapshots table reached through cfg.DatabaseURL
//	"sqlite"   - store_snapshots table in cfg.DataDir/safecircle.db
//	"memory"   - in-memory (ephemeral, for testing)
func NewPersister(cfg config.StoreConfig) (Persister, error) {
	switch cfg.Backend {
	case "file", "":
		return NewFilePersister(cfg.File), nil
	case "postgres":
		db, err := database.Connect("postgres", database.PostgresDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		p := NewPostgresPersister(db, cfg.Name)
		if err := p.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return p, nil
	case "sqlite":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, err
		}
		db, err := database.Connect("sqlite3", filepath.Join(cfg.DataDir, "safecircle.db"))
		if err != nil {
			return nil, err
		}
		p := NewSqlitePersister(db, cfg.Name)
		if err := p.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return p, nil
	case "memory":
		return NewMemoryPersister(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, postgres, sqlite, memory)", cfg.Backend)
	}
}
