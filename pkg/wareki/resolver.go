package wareki

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// DateOf resolves a proleptic date to its era and year of era.
// Returns ErrBeforeCalendarStart for dates before StartDate.
func (c *Calendar) DateOf(iso types.Date) (Date, error) {
	if iso.Before(StartDate) {
		return Date{}, fmt.Errorf("%w: %s is before %s", types.ErrBeforeCalendarStart, iso, StartDate)
	}
	era, err := c.table.ByDate(iso)
	if err != nil {
		return Date{}, err
	}
	return Date{
		iso:       iso,
		era:       era,
		yearOfEra: iso.Year() - era.Since.Year() + 1,
	}, nil
}

// DateProleptic resolves the proleptic year, month and day.
func (c *Calendar) DateProleptic(year int, month time.Month, day int) (Date, error) {
	iso, err := types.NewDate(year, month, day)
	if err != nil {
		return Date{}, err
	}
	return c.DateOf(iso)
}

// DateProlepticYearDay resolves the proleptic year and day of year.
func (c *Calendar) DateProlepticYearDay(year, dayOfYear int) (Date, error) {
	iso, err := types.DateOfYearDay(year, dayOfYear)
	if err != nil {
		return Date{}, err
	}
	return c.DateOf(iso)
}

// DateEpochDay resolves the date n days after 1970-01-01.
func (c *Calendar) DateEpochDay(n int64) (Date, error) {
	iso, err := types.DateOfEpochDay(n)
	if err != nil {
		return Date{}, err
	}
	return c.DateOf(iso)
}

// DateOfTime resolves the calendar date of t in t's location.
func (c *Calendar) DateOfTime(t time.Time) (Date, error) {
	return c.DateOf(types.DateOfTime(t))
}

// Now resolves today's date in loc. A nil loc means time.Local.
func (c *Calendar) Now(loc *time.Location) (Date, error) {
	if loc == nil {
		loc = time.Local
	}
	return c.DateOfTime(time.Now().In(loc))
}

// Date builds the date for era, year of era, month and day.
//
// The era and year are trusted as given: the result carries them without
// re-resolving the proleptic date, so Date(Meiji, 45, 7, 30) yields a date
// equal to Taisho 1-07-30 that still reports Meiji 45.
func (c *Calendar) Date(era types.Era, yearOfEra int, month time.Month, day int) (Date, error) {
	year, err := c.ProlepticYear(era, yearOfEra)
	if err != nil {
		return Date{}, err
	}
	iso, err := types.NewDate(year, month, day)
	if err != nil {
		return Date{}, err
	}
	return c.assemble(era, yearOfEra, iso)
}

// DateYearDay builds the date for era, year of era and proleptic day of year.
func (c *Calendar) DateYearDay(era types.Era, yearOfEra, dayOfYear int) (Date, error) {
	year, err := c.ProlepticYear(era, yearOfEra)
	if err != nil {
		return Date{}, err
	}
	iso, err := types.DateOfYearDay(year, dayOfYear)
	if err != nil {
		return Date{}, err
	}
	return c.assemble(era, yearOfEra, iso)
}

func (c *Calendar) assemble(era types.Era, yearOfEra int, iso types.Date) (Date, error) {
	if iso.Before(StartDate) {
		return Date{}, fmt.Errorf("%w: %s is before %s", types.ErrBeforeCalendarStart, iso, StartDate)
	}
	return Date{iso: iso, era: era, yearOfEra: yearOfEra}, nil
}

// ProlepticYear converts era and year of era to the proleptic year.
// Returns ErrInvalidEraValue for an era not in this calendar,
// ErrInvalidYearOfEra for yearOfEra <= 0 and ErrInvalidProlepticYear when the
// result is before the start year or after types.MaxYear.
func (c *Calendar) ProlepticYear(era types.Era, yearOfEra int) (int, error) {
	if !c.table.Contains(era) {
		return 0, fmt.Errorf("%w: %d (%s) is not in this calendar", types.ErrInvalidEraValue, era.Value, era.Name)
	}
	if yearOfEra <= 0 {
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidYearOfEra, yearOfEra)
	}
	start := era.Since.Year()
	if yearOfEra > types.MaxYear-start+1 {
		return 0, fmt.Errorf("%w: %s %d", types.ErrInvalidProlepticYear, era.Name, yearOfEra)
	}
	year := start + yearOfEra - 1
	if year < StartDate.Year() {
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidProlepticYear, year)
	}
	return year, nil
}

// Parse reads the display form produced by Date.String, such as "M06.01.01".
// The era is found by abbreviation and the date is built with Date, so the
// era and year are kept as written.
func (c *Calendar) Parse(s string) (Date, error) {
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return Date{}, fmt.Errorf("%w: %q", types.ErrInvalidDisplay, s)
	}
	era, err := c.table.ByAbbr(s[:i])
	if err != nil {
		return Date{}, err
	}
	parts := strings.Split(s[i:], ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", types.ErrInvalidDisplay, s)
	}
	nums := make([]int, 3)
	for j, p := range parts {
		if len(p) < 2 || strings.IndexFunc(p, notDigit) >= 0 {
			return Date{}, fmt.Errorf("%w: %q", types.ErrInvalidDisplay, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", types.ErrInvalidDisplay, s)
		}
		nums[j] = n
	}
	return c.Date(era, nums[0], time.Month(nums[1]), nums[2])
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

// FormatLocalized renders d with the localized date pattern, using the long
// era name and the localized word for year 1, e.g. "平成元年1月8日".
func (c *Calendar) FormatLocalized(d Date, lang string) (string, error) {
	tag, err := parseLang(lang)
	if err != nil {
		return "", err
	}
	name, err := c.names.Name(d.era.Value, types.TierLong, tag)
	if err != nil {
		return "", err
	}
	pattern, err := c.names.DateFormat(tag)
	if err != nil {
		return "", err
	}
	year := strconv.Itoa(d.yearOfEra)
	if d.yearOfEra == 1 {
		if year, err = c.names.FirstYear(tag); err != nil {
			return "", err
		}
	}
	return strings.NewReplacer(
		"{era}", name,
		"{year}", year,
		"{month}", strconv.Itoa(int(d.Month())),
		"{day}", strconv.Itoa(d.Day()),
	).Replace(pattern), nil
}

// DefaultLocale returns the tag used when lang is empty.
func (c *Calendar) DefaultLocale() language.Tag {
	return c.names.Default()
}
