// This file loads eras.jsonl into SQLite on attach and reads rows back.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/wareki/internal/eras"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

const eraColumns = "era_id, value, name, abbr, since, created_at"

// loadEras reads eras.jsonl and inserts every record in one transaction.
// The file must describe a valid era table; a hand-edited file that breaks
// contiguity is rejected with ErrInvalidEraConfig and nothing is loaded.
func loadEras(db *sql.DB, dataDir string) error {
	recs, err := loadErasJSONL(dataDir)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	list, err := recordsToEras(recs)
	if err != nil {
		return err
	}
	if _, err := eras.New(eras.Seed(), list); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertEras(tx, recs); err != nil {
		return err
	}
	return tx.Commit()
}

// insertEras inserts records within tx.
func insertEras(tx *sql.Tx, recs []eraRecord) error {
	stmt, err := tx.Prepare("INSERT INTO eras (" + eraColumns + ") VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range recs {
		if r.EraID == "" {
			return fmt.Errorf("%w: era %s has no era_id", types.ErrInvalidEraConfig, r.Name)
		}
		if _, err := stmt.Exec(r.EraID, r.Value, r.Name, r.Abbr, r.Since, r.CreatedAt); err != nil {
			return fmt.Errorf("inserting era %s: %w", r.Name, err)
		}
	}
	return nil
}

// queryEras returns all rows ordered by value.
func queryEras(db *sql.DB) ([]eraRecord, error) {
	rows, err := db.Query("SELECT " + eraColumns + " FROM eras ORDER BY value ASC")
	if err != nil {
		return nil, fmt.Errorf("querying eras: %w", err)
	}
	defer rows.Close()

	var out []eraRecord
	for rows.Next() {
		var r eraRecord
		if err := rows.Scan(&r.EraID, &r.Value, &r.Name, &r.Abbr, &r.Since, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning era: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
