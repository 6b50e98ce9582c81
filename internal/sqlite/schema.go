// Package sqlite implements the era catalog: eras.jsonl in the data
// directory is the source of truth and SQLite is the query engine.
// This file holds the schema.
package sqlite

// Schema DDL. value and since are unique so the index itself rejects two eras
// sharing a number or a start date.
const (
	createEras = `CREATE TABLE eras (
    era_id TEXT PRIMARY KEY,
    value INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL UNIQUE,
    abbr TEXT NOT NULL UNIQUE,
    since TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);`

	idxErasSince = `CREATE INDEX idx_eras_since ON eras(since);`
)

// schemaDDL lists all statements run on attach, in order.
var schemaDDL = []string{
	createEras,
	idxErasSince,
}

// erasFile is the JSONL file holding the catalog.
const erasFile = "eras.jsonl"

// dbFile is the SQLite index, rebuilt from eras.jsonl on every attach.
const dbFile = "catalog.db"
