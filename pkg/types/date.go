package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Range of proleptic years accepted by Date.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// dateLayout is the ISO-8601 calendar date layout.
const dateLayout = "2006-01-02"

// Date is a proleptic Gregorian calendar date without time or zone.
// The zero value is not a valid date; build one with NewDate, DateOfYearDay,
// DateOfTime or ParseDate. Date is comparable with ==.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the date for year, month and day. It returns ErrInvalidDate
// when the day does not exist in that month (including February 29 in a
// common year) or the year is out of range.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on an invalid date. It is intended for
// package-level tables of known-good dates.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOfYearDay returns the date for the given day of year (1-based).
func DateOfYearDay(year, dayOfYear int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	if dayOfYear < 1 || dayOfYear > DaysInYear(year) {
		return Date{}, fmt.Errorf("%w: day %d of year %d", ErrInvalidDate, dayOfYear, year)
	}
	return DateOfTime(time.Date(year, time.January, dayOfYear, 0, 0, 0, 0, time.UTC)), nil
}

// DateOfTime returns the calendar date of t in t's location.
func DateOfTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// DateOfEpochDay returns the date that is n days after 1970-01-01.
func DateOfEpochDay(n int64) (Date, error) {
	if n < minEpochDay || n > maxEpochDay {
		return Date{}, fmt.Errorf("%w: epoch day %d out of range", ErrInvalidDate, n)
	}
	return DateOfTime(time.Unix(0, 0).UTC().AddDate(0, 0, int(n))), nil
}

var (
	minEpochDay = Date{year: MinYear, month: time.January, day: 1}.EpochDay()
	maxEpochDay = Date{year: MaxYear, month: time.December, day: 31}.EpochDay()
)

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD). Years outside
// 0000-9999 may be written with a sign and more digits (+12345-01-01).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	neg := false
	body := s
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		neg = body[0] == '-'
		body = body[1:]
	}
	parts := strings.Split(body, "-")
	if len(parts) != 3 || len(parts[0]) < 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	if neg {
		nums[0] = -nums[0]
	}
	return NewDate(nums[0], time.Month(nums[1]), nums[2])
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// Year returns the proleptic year.
func (d Date) Year() int { return d.year }

// Month returns the month of year.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of month.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// YearDay returns the day of year, 1 through 365 or 366.
func (d Date) YearDay() int {
	return d.Time(time.UTC).YearDay()
}

// LengthOfMonth returns the number of days in d's month.
func (d Date) LengthOfMonth() int {
	return daysIn(d.year, d.month)
}

// IsLeapYear reports whether d falls in a leap year.
func (d Date) IsLeapYear() bool {
	return IsLeapYear(d.year)
}

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int64 {
	return floorDiv(d.Time(time.UTC).Unix(), 86400)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOfTime(d.Time(time.UTC).AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	if d.year >= 0 && d.year <= 9999 {
		return d.Time(time.UTC).Format(dateLayout)
	}
	sign := "+"
	y := d.year
	if y < 0 {
		sign = "-"
		y = -y
	}
	return fmt.Sprintf("%s%04d-%02d-%02d", sign, y, int(d.month), d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
