package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SQLPersister keeps each snapshot as one JSON row in a store_snapshots
// table, keyed by name. It works with Postgres (lib/pq) and SQLite
// (mattn/go-sqlite3).
type SQLPersister struct {
	db   *sql.DB
	name string

	createTable string
	selectData  string
	upsertData  string
}

func NewPostgresPersister(db *sql.DB, name string) *SQLPersister {
	return &SQLPersister{
		db:   db,
		name: name,
		createTable: `CREATE TABLE IF NOT EXISTS store_snapshots (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		selectData: `SELECT data FROM store_snapshots WHERE name = $1`,
		upsertData: `INSERT INTO store_snapshots (name, data, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
	}
}

func NewSqlitePersister(db *sql.DB, name string) *SQLPersister {
	return &SQLPersister{
		db:   db,
		name: name,
		createTable: `CREATE TABLE IF NOT EXISTS store_snapshots (
			name TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		selectData: `SELECT data FROM store_snapshots WHERE name = ?`,
		upsertData: `INSERT INTO store_snapshots (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
	}
}

// Migrate creates the snapshot table if it does not exist.
func (p *SQLPersister) Migrate() error {
	if _, err := p.db.Exec(p.createTable); err != nil {
		return fmt.Errorf("create store_snapshots: %w", err)
	}
	return nil
}

func (p *SQLPersister) Load() (*Snapshot, error) {
	var data []byte
	err := p.db.QueryRow(p.selectData, p.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", p.name, err)
	}
	return decodeSnapshot(data)
}

func (p *SQLPersister) Save(snap *Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if _, err := p.db.Exec(p.upsertData, p.name, string(data)); err != nil {
		return fmt.Errorf("save snapshot %s: %w", p.name, err)
	}
	return nil
}

func (p *SQLPersister) Close() error {
	return p.db.Close()
}
