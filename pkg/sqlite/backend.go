// Package sqlite provides the public API for the SQLite era catalog.
// It exposes the factory while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/wareki/internal/sqlite"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

// NewCatalog creates a new SQLite era catalog.
// The catalog is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewCatalog()
//	err := catalog.Attach(types.Config{DataDir: ".wareki"})
//	defer catalog.Detach()
//	eras, err := catalog.Eras()
//	cal, err := wareki.New(types.Config{}, eras)
func NewCatalog() types.Catalog {
	return sqlite.NewCatalog()
}
