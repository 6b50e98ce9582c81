package types

import "errors"

// Catalog is the persistent, runtime-extensible list of eras. Callers attach
// to a data directory, read or extend the list, and detach when done.
type Catalog interface {
	// Attach opens the catalog in config.DataDir, creating it and seeding
	// the built-in eras on first use. Returns ErrAlreadyAttached if called
	// while already attached.
	Attach(config Config) error

	// Detach releases resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrCatalogDetached.
	Detach() error

	// Eras returns every era, oldest first.
	Eras() ([]Era, error)

	// Append adds era after the current era. The resulting list must still
	// form a valid era table; otherwise ErrInvalidEraConfig is returned and
	// nothing is written. Returns the generated record ID.
	Append(era Era) (string, error)

	// Import appends the records of an era config file that the catalog
	// does not have yet. Records the catalog already has must match exactly.
	// Returns the number of eras added.
	Import(records []Era) (int, error)
}

// Catalog lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)
