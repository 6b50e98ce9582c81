package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wareki/internal/eras"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Catalog implements types.Catalog using SQLite as the query engine and
// eras.jsonl as the source of truth.
type Catalog struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewCatalog creates a catalog that is not attached; call Attach with a
// Config to initialize it.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Exists reports whether dataDir holds an initialized catalog.
func Exists(dataDir string) bool {
	_, err := os.Stat(filepath.Join(dataDir, erasFile))
	return err == nil
}

// Attach creates DataDir if needed, rebuilds the SQLite index from
// eras.jsonl and seeds the built-in eras when the catalog is empty.
// Returns ErrAlreadyAttached if already attached.
func (c *Catalog) Attach(config types.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The index is derived state; start from a fresh schema every time.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := loadEras(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load %s: %w", erasFile, err)
	}
	if err := seedBuiltInEras(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("seed: %w", err)
	}

	c.db = db
	c.config = config
	c.config.DataDir = dataDir
	c.attached = true

	slog.Debug("catalog attached", slog.String("data_dir", dataDir))
	return nil
}

// Detach closes the SQLite connection. Detach is idempotent.
func (c *Catalog) Detach() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return nil
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return err
		}
		c.db = nil
	}
	c.attached = false
	return nil
}

// Eras returns every era in the catalog, oldest first.
func (c *Catalog) Eras() ([]types.Era, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return nil, types.ErrCatalogDetached
	}
	recs, err := queryEras(c.db)
	if err != nil {
		return nil, err
	}
	return recordsToEras(recs)
}

// Append adds era after the current era and persists eras.jsonl.
func (c *Catalog) Append(era types.Era) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return "", types.ErrCatalogDetached
	}
	recs, err := queryEras(c.db)
	if err != nil {
		return "", err
	}
	current, err := recordsToEras(recs)
	if err != nil {
		return "", err
	}
	if _, err := eras.New(eras.Seed(), append(current, era)); err != nil {
		return "", err
	}

	ids, err := c.insertLocked(recs, []types.Era{era})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// Import appends the tail of records that the catalog does not have yet.
func (c *Catalog) Import(records []types.Era) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return 0, types.ErrCatalogDetached
	}
	if _, err := eras.New(eras.Seed(), records); err != nil {
		return 0, err
	}

	recs, err := queryEras(c.db)
	if err != nil {
		return 0, err
	}
	current, err := recordsToEras(recs)
	if err != nil {
		return 0, err
	}
	if len(records) < len(current) {
		return 0, fmt.Errorf("%w: import has %d eras, catalog has %d",
			types.ErrInvalidEraConfig, len(records), len(current))
	}
	for i, era := range current {
		if records[i] != era {
			return 0, fmt.Errorf("%w: era %d (%s) differs from catalog era %s",
				types.ErrInvalidEraConfig, records[i].Value, records[i].Name, era.Name)
		}
	}

	tail := records[len(current):]
	if len(tail) == 0 {
		return 0, nil
	}
	if _, err := c.insertLocked(recs, tail); err != nil {
		return 0, err
	}
	return len(tail), nil
}

// insertLocked writes the new eras to SQLite and rewrites eras.jsonl with
// existing plus the new records. The caller holds c.mu.
func (c *Catalog) insertLocked(existing []eraRecord, add []types.Era) ([]string, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	added := make([]eraRecord, 0, len(add))
	for _, era := range add {
		added = append(added, eraRecord{
			EraID:     generateUUID(),
			Value:     era.Value,
			Name:      era.Name,
			Abbr:      era.Abbr,
			Since:     era.Since.String(),
			CreatedAt: now,
		})
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer tx.Rollback()
	if err := insertEras(tx, added); err != nil {
		return nil, err
	}

	all := append(append([]eraRecord(nil), existing...), added...)
	if err := persistErasJSONL(c.config.DataDir, all); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", erasFile, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing insert transaction: %w", err)
	}

	ids := make([]string, len(added))
	for i, rec := range added {
		ids[i] = rec.EraID
		slog.Info("era added",
			slog.Int("value", rec.Value),
			slog.String("name", rec.Name),
			slog.String("since", rec.Since),
		)
	}
	return ids, nil
}

func recordsToEras(recs []eraRecord) ([]types.Era, error) {
	out := make([]types.Era, 0, len(recs))
	for _, r := range recs {
		era, err := r.toEra()
		if err != nil {
			return nil, err
		}
		out = append(out, era)
	}
	return out, nil
}

// generateUUID generates a new UUID v7 for record IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
