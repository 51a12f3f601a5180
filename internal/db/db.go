package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS crop_prices (
    id             INTEGER PRIMARY KEY,
    name           TEXT NOT NULL UNIQUE,
    emoji          TEXT,
    price          INTEGER NOT NULL CHECK(price >= 0),
    unit           TEXT NOT NULL,
    change_percent INTEGER NOT NULL DEFAULT 0,
    quality        TEXT,
    supply         TEXT CHECK(supply IN ('Excellent','Good','Limited') OR supply IS NULL)
);

CREATE TABLE IF NOT EXISTS schemes (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    full_name   TEXT,
    category    TEXT NOT NULL CHECK(category IN ('financial','insurance','equipment','training')),
    amount      TEXT,
    description TEXT,
    eligibility TEXT,
    status      TEXT,
    deadline    TEXT
);

CREATE TABLE IF NOT EXISTS scheme_items (
    scheme_id INTEGER NOT NULL REFERENCES schemes(id),
    kind      TEXT NOT NULL CHECK(kind IN ('benefit','document')),
    position  INTEGER NOT NULL,
    text      TEXT NOT NULL,
    PRIMARY KEY (scheme_id, kind, position)
);

CREATE INDEX IF NOT EXISTS idx_schemes_category ON schemes(category);
`

// Open opens or creates the SQLite catalog, initializes the schema and
// seeds the static content when the catalog is empty.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		dbPath = MemoryPath
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	// Every new connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping catalog: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := Seed(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return db, nil
}
