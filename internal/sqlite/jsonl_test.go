package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    int
		wantErr error
	}{
		{"missing file", nil, 0, nil},
		{"empty file", ptr(""), 0, nil},
		{"blank lines skipped", ptr("{\"a\":1}\n\n{\"b\":2}\n"), 2, nil},
		{"malformed line", ptr("{\"a\":1}\nnope\n"), 0, types.ErrInvalidEraConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "x.jsonl")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			got, err := readJSONL(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestWriteJSONL_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	recs := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}
	require.NoError(t, writeJSONL(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestPersistAndLoadEras(t *testing.T) {
	dir := t.TempDir()
	recs := []eraRecord{
		{EraID: "a", Value: 1, Name: "Meiji", Abbr: "M", Since: "1868-01-01", CreatedAt: "2025-01-01T00:00:00Z"},
		{EraID: "b", Value: 2, Name: "Taisho", Abbr: "T", Since: "1912-07-30", CreatedAt: "2025-01-01T00:00:00Z"},
	}
	require.NoError(t, persistErasJSONL(dir, recs))

	got, err := loadErasJSONL(dir)
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	era, err := got[1].toEra()
	require.NoError(t, err)
	assert.Equal(t, "Taisho", era.Name)
	assert.Equal(t, 30, era.Since.Day())
}

func ptr(s string) *string { return &s }
