package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaEquipment = `
CREATE TABLE IF NOT EXISTS equipment (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    brand TEXT NOT NULL,
    model TEXT NOT NULL,
    active INTEGER NOT NULL DEFAULT 1,
    power_min_kw NUMERIC,
    power_max_kw NUMERIC,
    flow_min_m3h NUMERIC,
    flow_max_m3h NUMERIC,
    dn_size INTEGER,
    fuel_type TEXT,
    connection_key TEXT,
    price NUMERIC NOT NULL,
    delivery_days INTEGER
);
`

const schemaHeatingRequests = `
CREATE TABLE IF NOT EXISTS heating_requests (
    id TEXT PRIMARY KEY,
    customer_id TEXT,
    power_kw NUMERIC NOT NULL,
    t_supply_c NUMERIC NOT NULL,
    t_return_c NUMERIC NOT NULL,
    fuel_type TEXT NOT NULL,
    notes TEXT,
    status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaConfigCandidates = `
CREATE TABLE IF NOT EXISTS config_candidates (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL REFERENCES heating_requests(id) ON DELETE CASCADE,
    total_price NUMERIC NOT NULL,
    currency TEXT NOT NULL,
    max_delivery_days INTEGER NOT NULL DEFAULT 0,
    connection_key TEXT,
    dn_size INTEGER,
    created_at TIMESTAMP NOT NULL
);
`

const schemaConfigComponents = `
CREATE TABLE IF NOT EXISTS config_components (
    candidate_id TEXT NOT NULL REFERENCES config_candidates(id) ON DELETE CASCADE,
    equipment_id TEXT NOT NULL,
    category TEXT NOT NULL,
    brand TEXT NOT NULL,
    model TEXT NOT NULL,
    qty NUMERIC NOT NULL,
    unit_price NUMERIC NOT NULL,
    subtotal NUMERIC NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (candidate_id, equipment_id)
);
`

const schemaLeads = `
CREATE TABLE IF NOT EXISTS leads (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    comment TEXT,
    created_at TIMESTAMP NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    role TEXT NOT NULL DEFAULT 'manager',
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaEquipment,
		schemaHeatingRequests,
		schemaConfigCandidates,
		schemaConfigComponents,
		schemaLeads,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
