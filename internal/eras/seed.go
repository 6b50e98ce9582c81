package eras

import (
	"time"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Values of the built-in eras.
const (
	MeijiValue  = 1
	TaishoValue = 2
	ShowaValue  = 3
	HeiseiValue = 4
)

// offset is the value of the first era.
const offset = MeijiValue

// StartDate is the first date the calendar supports (Meiji 6-01-01, the day
// the Gregorian calendar was adopted). It is independent of era boundaries.
var StartDate = types.MustDate(1873, time.January, 1)

// Seed returns the built-in eras that every table must contain, oldest first.
// Each call returns a fresh slice.
func Seed() []types.Era {
	return []types.Era{
		{Value: MeijiValue, Name: "Meiji", Abbr: "M", Since: types.MustDate(1868, time.January, 1)},
		{Value: TaishoValue, Name: "Taisho", Abbr: "T", Since: types.MustDate(1912, time.July, 30)},
		{Value: ShowaValue, Name: "Showa", Abbr: "S", Since: types.MustDate(1926, time.December, 25)},
		{Value: HeiseiValue, Name: "Heisei", Abbr: "H", Since: types.MustDate(1989, time.January, 8)},
	}
}
