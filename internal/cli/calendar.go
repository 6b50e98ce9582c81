package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mesh-intelligence/wareki/internal/eraconfig"
	"github.com/mesh-intelligence/wareki/internal/server"
	"github.com/mesh-intelligence/wareki/internal/sqlite"
	"github.com/mesh-intelligence/wareki/pkg/types"
	"github.com/mesh-intelligence/wareki/pkg/wareki"
)

// Era sources, in order of precedence.
const (
	sourceFile    = "file"
	sourceCatalog = "catalog"
	sourceBuiltIn = "built-in"
)

// eraRecords returns the external era list for this invocation: the era
// config file when one is configured, else the catalog when it has been
// initialized, else the default era config shipped with wareki.
func eraRecords(cfg types.Config) ([]types.Era, string, error) {
	if cfg.ErasFile != "" {
		records, err := eraconfig.Load(cfg.ErasFile)
		return records, sourceFile, err
	}
	if sqlite.Exists(cfg.DataDir) {
		records, err := catalogEras(cfg)
		return records, sourceCatalog, err
	}
	records, err := eraconfig.Parse(eraconfig.DefaultYAML)
	return records, sourceBuiltIn, err
}

// catalogEras attaches the catalog long enough to read its eras.
func catalogEras(cfg types.Config) ([]types.Era, error) {
	catalog, err := attachCatalog(cfg)
	if err != nil {
		return nil, err
	}
	defer catalog.Detach()
	return catalog.Eras()
}

// attachCatalog creates and attaches the catalog. The caller must Detach.
func attachCatalog(cfg types.Config) (*sqlite.Catalog, error) {
	catalog := sqlite.NewCatalog()
	if err := catalog.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach catalog: %w", err)
	}
	return catalog, nil
}

// calendar builds the Calendar for this invocation.
func (a *app) calendar() (*wareki.Calendar, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	records, source, err := eraRecords(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("era source", slog.String("source", source), slog.Int("records", len(records)))
	return wareki.New(cfg, records)
}

// dateView describes d with its localized rendering. A missing localized
// name is not fatal for display: it is logged and the rendering omitted.
func dateView(cal *wareki.Calendar, d wareki.Date) (server.DateView, error) {
	lang := ""
	v, err := server.NewDateView(cal, d, &lang)
	if errors.Is(err, types.ErrResourceLookup) {
		slog.Warn("no localized rendering", slog.String("date", d.String()), slog.Any("error", err))
		return server.NewDateView(cal, d, nil)
	}
	return v, err
}

// eraView describes era with its localized long name, tolerating a missing
// name the same way dateView does.
func eraView(cal *wareki.Calendar, era types.Era) (server.EraView, error) {
	lang := ""
	v, err := server.NewEraView(cal, era, &lang)
	if errors.Is(err, types.ErrResourceLookup) {
		slog.Warn("no localized name", slog.String("era", era.Name), slog.Any("error", err))
		return server.NewEraView(cal, era, nil)
	}
	return v, err
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
