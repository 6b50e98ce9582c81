// This file seeds the built-in eras on first attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/wareki/internal/eras"
)

// seedBuiltInEras inserts the built-in eras when the eras table is empty
// (first run) and persists them to eras.jsonl. It does nothing otherwise.
func seedBuiltInEras(db *sql.DB, dataDir string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM eras").Scan(&count); err != nil {
		return fmt.Errorf("counting eras: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	seed := eras.Seed()
	recs := make([]eraRecord, 0, len(seed))
	for _, era := range seed {
		recs = append(recs, eraRecord{
			EraID:     generateUUID(),
			Value:     era.Value,
			Name:      era.Name,
			Abbr:      era.Abbr,
			Since:     era.Since.String(),
			CreatedAt: now,
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertEras(tx, recs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	if err := persistErasJSONL(dataDir, recs); err != nil {
		return fmt.Errorf("persisting seeded eras: %w", err)
	}
	return nil
}
