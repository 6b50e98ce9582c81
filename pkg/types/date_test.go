package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantErr error
	}{
		{name: "ordinary date", year: 1989, month: time.January, day: 8},
		{name: "leap day in leap year", year: 2000, month: time.February, day: 29},
		{name: "leap day in century year", year: 1900, month: time.February, day: 29, wantErr: ErrInvalidDate},
		{name: "leap day in common year", year: 1989, month: time.February, day: 29, wantErr: ErrInvalidDate},
		{name: "day 31 in a 30-day month", year: 1989, month: time.April, day: 31, wantErr: ErrInvalidDate},
		{name: "day zero", year: 1989, month: time.January, day: 0, wantErr: ErrInvalidDate},
		{name: "month 13", year: 1989, month: 13, day: 1, wantErr: ErrInvalidDate},
		{name: "year above range", year: MaxYear + 1, month: time.January, day: 1, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDate(tt.year, tt.month, tt.day)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrDomain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, d.Year())
			assert.Equal(t, tt.month, d.Month())
			assert.Equal(t, tt.day, d.Day())
		})
	}
}

func TestDateOfYearDay(t *testing.T) {
	d, err := DateOfYearDay(1989, 8)
	require.NoError(t, err)
	assert.Equal(t, MustDate(1989, time.January, 8), d)

	d, err = DateOfYearDay(2000, 366)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2000, time.December, 31), d)

	_, err = DateOfYearDay(1999, 366)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = DateOfYearDay(1999, 0)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1912-07-30")
	require.NoError(t, err)
	assert.Equal(t, MustDate(1912, time.July, 30), d)
	assert.Equal(t, "1912-07-30", d.String())

	d, err = ParseDate("+12345-01-02")
	require.NoError(t, err)
	assert.Equal(t, 12345, d.Year())
	assert.Equal(t, "+12345-01-02", d.String())

	for _, s := range []string{"", "1912-7-30", "1912/07/30", "1912-02-30", "abcd-01-01", "1912-07-30T00:00:00Z"} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", s)
	}
}

func TestDate_EpochDay(t *testing.T) {
	assert.Equal(t, int64(0), MustDate(1970, time.January, 1).EpochDay())
	assert.Equal(t, int64(-1), MustDate(1969, time.December, 31).EpochDay())
	assert.Equal(t, int64(6947), MustDate(1989, time.January, 8).EpochDay())

	d, err := DateOfEpochDay(6947)
	require.NoError(t, err)
	assert.Equal(t, MustDate(1989, time.January, 8), d)

	d, err = DateOfEpochDay(-35794)
	require.NoError(t, err)
	assert.Equal(t, MustDate(1872, time.January, 1), d)
}

func TestDate_Compare(t *testing.T) {
	a := MustDate(1989, time.January, 7)
	b := MustDate(1989, time.January, 8)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, b, a.AddDays(1))
	assert.Equal(t, a, b.AddDays(-1))
}

func TestDate_Calendar(t *testing.T) {
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(1988))
	assert.Equal(t, 29, MustDate(1988, time.February, 1).LengthOfMonth())
	assert.Equal(t, 28, MustDate(1989, time.February, 1).LengthOfMonth())
	assert.Equal(t, 366, MustDate(1988, time.December, 31).YearDay())
	assert.True(t, (Date{}).IsZero())
}

func TestDate_Text(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2019-05-01")))
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2019-05-01", string(b))

	assert.Error(t, d.UnmarshalText([]byte("2019-13-01")))
}
