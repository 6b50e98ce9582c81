// Package eras owns the era table: the built-in seed, validation of external
// era records against it, and lookups by value, name, abbreviation and date.
package eras

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Table is a validated, immutable list of eras ordered by value and by start
// date at the same time. It is safe for concurrent use.
type Table struct {
	eras []types.Era
}

// New builds a table from the seed and the external candidates, in file
// order.
//
// Candidates reconfirm the seed and then extend it: candidate i, for i within
// the seed, must equal seed[i] in every field; each later candidate must have
// the next value and a strictly later start date. A nil or empty candidate
// list yields the seed alone. Any violation returns ErrInvalidEraConfig and
// no table.
func New(seed, candidates []types.Era) (*Table, error) {
	if len(seed) < len(Seed()) {
		return nil, fmt.Errorf("%w: seed has %d eras, need at least %d",
			types.ErrInvalidEraConfig, len(seed), len(Seed()))
	}

	eras := make([]types.Era, 0, max(len(seed), len(candidates)))
	for i, era := range seed {
		if i == 0 {
			if era.Value != offset {
				return nil, invalidConfig(era, "first era must have value %d", offset)
			}
			if err := checkFields(era); err != nil {
				return nil, err
			}
			eras = append(eras, era)
			continue
		}
		if err := checkNext(eras, era); err != nil {
			return nil, err
		}
		eras = append(eras, era)
	}

	for i, era := range candidates {
		if i < len(seed) {
			if era != seed[i] {
				return nil, invalidConfig(era, "does not match built-in era %d (%s)", seed[i].Value, seed[i].Name)
			}
			continue
		}
		if err := checkNext(eras, era); err != nil {
			return nil, err
		}
		eras = append(eras, era)
	}

	slog.Debug("era table built",
		slog.Int("eras", len(eras)),
		slog.String("current", eras[len(eras)-1].Name),
	)
	return &Table{eras: eras}, nil
}

// checkNext verifies that era may follow the eras accepted so far.
func checkNext(eras []types.Era, era types.Era) error {
	prev := eras[len(eras)-1]
	if era.Value != prev.Value+1 {
		return invalidConfig(era, "value must be %d", prev.Value+1)
	}
	if !era.Since.After(prev.Since) {
		return invalidConfig(era, "since %s must be after %s", era.Since, prev.Since)
	}
	if err := checkFields(era); err != nil {
		return err
	}
	for _, e := range eras {
		if e.Name == era.Name {
			return invalidConfig(era, "duplicate name")
		}
		if e.Abbr == era.Abbr {
			return invalidConfig(era, "duplicate abbreviation %q", era.Abbr)
		}
	}
	return nil
}

func checkFields(era types.Era) error {
	switch {
	case era.Name == "":
		return invalidConfig(era, "name is empty")
	case era.Abbr == "":
		return invalidConfig(era, "abbr is empty")
	case era.Since.IsZero():
		return invalidConfig(era, "since is missing")
	}
	return nil
}

func invalidConfig(era types.Era, format string, args ...any) error {
	return fmt.Errorf("%w: %d (%s): %s", types.ErrInvalidEraConfig,
		era.Value, era.Name, fmt.Sprintf(format, args...))
}

// Len returns the number of eras.
func (t *Table) Len() int {
	return len(t.eras)
}

// All returns the eras, oldest first. Each call returns a fresh slice.
func (t *Table) All() []types.Era {
	out := make([]types.Era, len(t.eras))
	copy(out, t.eras)
	return out
}

// First returns the oldest era.
func (t *Table) First() types.Era {
	return t.eras[0]
}

// Current returns the most recent era.
func (t *Table) Current() types.Era {
	return t.eras[len(t.eras)-1]
}

// Next returns the era that follows era, if any.
func (t *Table) Next(era types.Era) (types.Era, bool) {
	i := era.Value - offset + 1
	if i <= 0 || i >= len(t.eras) {
		return types.Era{}, false
	}
	return t.eras[i], true
}

// ByValue returns the era with the given value.
// Returns ErrInvalidEraValue if no era has that value.
func (t *Table) ByValue(value int) (types.Era, error) {
	i := value - offset
	if i < 0 || i >= len(t.eras) {
		return types.Era{}, fmt.Errorf("%w: %d", types.ErrInvalidEraValue, value)
	}
	return t.eras[i], nil
}

// ByName returns the era with the given canonical name.
// Returns ErrInvalidEraName if no era has that name.
func (t *Table) ByName(name string) (types.Era, error) {
	for _, era := range t.eras {
		if era.Name == name {
			return era, nil
		}
	}
	return types.Era{}, fmt.Errorf("%w: %q", types.ErrInvalidEraName, name)
}

// ByAbbr returns the era with the given abbreviation.
// Returns ErrInvalidEraName if no era has that abbreviation.
func (t *Table) ByAbbr(abbr string) (types.Era, error) {
	for _, era := range t.eras {
		if era.Abbr == abbr {
			return era, nil
		}
	}
	return types.Era{}, fmt.Errorf("%w: abbreviation %q", types.ErrInvalidEraName, abbr)
}

// ByDate returns the era in effect on d: the one with the greatest start
// date not after d. Recent dates are the common case, so the scan runs from
// the newest era backwards.
// Returns ErrUnsupportedDate if d precedes the first era.
func (t *Table) ByDate(d types.Date) (types.Era, error) {
	for i := len(t.eras) - 1; i >= 0; i-- {
		if !t.eras[i].Since.After(d) {
			return t.eras[i], nil
		}
	}
	return types.Era{}, fmt.Errorf("%w: %s", types.ErrUnsupportedDate, d)
}

// Contains reports whether era is a member of the table, field for field.
func (t *Table) Contains(era types.Era) bool {
	got, err := t.ByValue(era.Value)
	return err == nil && got == era
}
