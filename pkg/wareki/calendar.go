// Package wareki converts between proleptic Gregorian dates and Japanese era
// dates (era name plus year of era).
//
// A Calendar is built once from the built-in eras plus an external era list
// and is immutable afterwards; share it freely between goroutines.
//
// Example:
//
//	cal, err := wareki.New(types.Config{}, records)
//	d, err := cal.DateProleptic(1989, time.January, 8)
//	fmt.Println(d) // H01.01.08
package wareki

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/text/language"

	"github.com/mesh-intelligence/wareki/internal/eras"
	"github.com/mesh-intelligence/wareki/internal/locale"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Built-in eras. They are always present, in this order, at the start of
// every Calendar.
var (
	Meiji  = eras.Seed()[0]
	Taisho = eras.Seed()[1]
	Showa  = eras.Seed()[2]
	Heisei = eras.Seed()[3]
)

// StartDate is the earliest date a Calendar accepts.
var StartDate = eras.StartDate

// Calendar resolves dates against one era table.
type Calendar struct {
	table *eras.Table
	names *locale.Provider
}

// New validates cfg and builds the era table from the built-in eras and the
// external candidates (in file order). Candidates must reproduce the built-in
// eras and may then extend them; nil candidates use the built-in eras alone.
// Any inconsistency returns an error wrapping ErrConfiguration.
func New(cfg types.Config, candidates []types.Era) (*Calendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := eras.New(eras.Seed(), candidates)
	if err != nil {
		return nil, err
	}

	sources := []locale.Source{locale.Embedded()}
	if cfg.ResourceDir != "" {
		sources = append(sources, locale.FSSource{FS: os.DirFS(cfg.ResourceDir)})
	}

	slog.Debug("calendar ready",
		slog.Int("eras", table.Len()),
		slog.String("locale", cfg.LocaleTag().String()),
	)
	return &Calendar{
		table: table,
		names: locale.NewProvider(cfg.LocaleTag(), sources...),
	}, nil
}

// Eras returns every era, oldest first.
func (c *Calendar) Eras() []types.Era {
	return c.table.All()
}

// EraOf returns the era with the given value.
// Returns ErrInvalidEraValue if no era has that value.
func (c *Calendar) EraOf(value int) (types.Era, error) {
	return c.table.ByValue(value)
}

// EraByName returns the era with the given canonical name.
// Returns ErrInvalidEraName if no era has that name.
func (c *Calendar) EraByName(name string) (types.Era, error) {
	return c.table.ByName(name)
}

// EraByAbbr returns the era with the given abbreviation.
func (c *Calendar) EraByAbbr(abbr string) (types.Era, error) {
	return c.table.ByAbbr(abbr)
}

// LookupEra finds an era by value ("5"), abbreviation ("R") or canonical
// name ("Reiwa"), in that order.
func (c *Calendar) LookupEra(key string) (types.Era, error) {
	if v, err := strconv.Atoi(key); err == nil {
		return c.table.ByValue(v)
	}
	if era, err := c.table.ByAbbr(key); err == nil {
		return era, nil
	}
	return c.table.ByName(key)
}

// FirstEra returns Meiji.
func (c *Calendar) FirstEra() types.Era {
	return c.table.First()
}

// CurrentEra returns the most recent era.
func (c *Calendar) CurrentEra() types.Era {
	return c.table.Current()
}

// LastDay returns the last day of era, or false for the current era, which
// has no end.
func (c *Calendar) LastDay(era types.Era) (types.Date, bool) {
	next, ok := c.table.Next(era)
	if !ok {
		return types.Date{}, false
	}
	return next.Since.AddDays(-1), true
}

// IsLeapYear reports whether the proleptic year is a leap year.
func (c *Calendar) IsLeapYear(prolepticYear int) bool {
	return types.IsLeapYear(prolepticYear)
}

// EraName returns the localized name of era in the given tier. lang is a
// BCP 47 tag; empty selects the default locale. A name missing from both the
// requested and the default locale returns ErrMissingLocalizedName.
func (c *Calendar) EraName(era types.Era, tier types.NameTier, lang string) (string, error) {
	tag, err := parseLang(lang)
	if err != nil {
		return "", err
	}
	return c.names.Name(era.Value, tier, tag)
}

// FirstYearText returns the localized word for year 1 of an era.
func (c *Calendar) FirstYearText(lang string) (string, error) {
	tag, err := parseLang(lang)
	if err != nil {
		return "", err
	}
	return c.names.FirstYear(tag)
}

func parseLang(lang string) (language.Tag, error) {
	if lang == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", types.ErrInvalidLocale, lang)
	}
	return tag, nil
}
