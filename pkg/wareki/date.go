package wareki

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Date is a proleptic date together with its era and year of era. It is
// immutable and only produced by Calendar methods.
type Date struct {
	iso       types.Date
	era       types.Era
	yearOfEra int
}

// Era returns the era the date belongs to.
func (d Date) Era() types.Era { return d.era }

// YearOfEra returns the 1-based year within the era.
func (d Date) YearOfEra() int { return d.yearOfEra }

// Year returns the proleptic year.
func (d Date) Year() int { return d.iso.Year() }

// Month returns the month of year.
func (d Date) Month() time.Month { return d.iso.Month() }

// Day returns the day of month.
func (d Date) Day() int { return d.iso.Day() }

// YearDay returns the proleptic day of year.
func (d Date) YearDay() int { return d.iso.YearDay() }

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int64 { return d.iso.EpochDay() }

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int { return d.iso.LengthOfMonth() }

// IsLeapYear reports whether the date's proleptic year is a leap year.
func (d Date) IsLeapYear() bool { return d.iso.IsLeapYear() }

// ISO returns the underlying proleptic date.
func (d Date) ISO() types.Date { return d.iso }

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time { return d.iso.Time(loc) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.iso.IsZero() }

// Equal reports whether d and other denote the same proleptic day.
func (d Date) Equal(other Date) bool { return d.iso == other.iso }

// Compare orders dates by proleptic day.
func (d Date) Compare(other Date) int { return d.iso.Compare(other.iso) }

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.iso.Before(other.iso) }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.iso.After(other.iso) }

// String returns the display form <abbr><yy>.<mm>.<dd>, e.g. "H01.01.08".
func (d Date) String() string {
	return fmt.Sprintf("%s%02d.%02d.%02d", d.era.Abbr, d.yearOfEra, int(d.Month()), d.Day())
}

// MarshalText implements encoding.TextMarshaler using the display form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
