// This file provides JSONL read/write helpers with atomic persistence and the
// JSON form of a catalog row.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// eraRecord is one line of eras.jsonl.
type eraRecord struct {
	EraID     string `json:"era_id"`
	Value     int    `json:"value"`
	Name      string `json:"name"`
	Abbr      string `json:"abbr"`
	Since     string `json:"since"`
	CreatedAt string `json:"created_at"`
}

func (r eraRecord) toEra() (types.Era, error) {
	since, err := types.ParseDate(r.Since)
	if err != nil {
		return types.Era{}, fmt.Errorf("%w: era %s: %v", types.ErrInvalidEraConfig, r.EraID, err)
	}
	return types.Era{Value: r.Value, Name: r.Name, Abbr: r.Abbr, Since: since}, nil
}

// readJSONL reads a JSONL file and returns each non-empty line as a
// json.RawMessage. A missing file reads as empty. Unlike free-form stores, an
// era catalog with a malformed line is unusable, so the first malformed line
// is an error.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		if !json.Valid(b) {
			return nil, fmt.Errorf("%w: %s line %d is not JSON", types.ErrInvalidEraConfig, filepath.Base(path), line)
		}
		cp := make([]byte, len(b))
		copy(cp, b)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// loadErasJSONL reads eras.jsonl from dataDir.
func loadErasJSONL(dataDir string) ([]eraRecord, error) {
	raw, err := readJSONL(filepath.Join(dataDir, erasFile))
	if err != nil {
		return nil, err
	}
	out := make([]eraRecord, 0, len(raw))
	for i, r := range raw {
		var rec eraRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", types.ErrInvalidEraConfig, erasFile, i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// persistErasJSONL writes all era records to eras.jsonl atomically.
func persistErasJSONL(dataDir string, records []eraRecord) error {
	raw := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling era %s: %w", rec.Name, err)
		}
		raw = append(raw, b)
	}
	return writeJSONL(filepath.Join(dataDir, erasFile), raw)
}
