package server

import (
	"github.com/mesh-intelligence/wareki/pkg/types"
	"github.com/mesh-intelligence/wareki/pkg/wareki"
)

// EraView is the JSON form of an era.
type EraView struct {
	Value    int    `json:"value"`
	Name     string `json:"name"`
	Abbr     string `json:"abbr"`
	Since    string `json:"since"`
	Until    string `json:"until,omitempty"`
	LongName string `json:"long_name,omitempty"`
}

// DateView is the JSON form of an era date.
type DateView struct {
	Display   string `json:"display"`
	Era       string `json:"era"`
	EraValue  int    `json:"era_value"`
	YearOfEra int    `json:"year_of_era"`
	ISO       string `json:"iso"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	YearDay   int    `json:"year_day"`
	Localized string `json:"localized,omitempty"`
}

// NewEraView describes era. When lang is non-nil the long name in that
// locale is included; an empty lang selects the default locale.
func NewEraView(cal *wareki.Calendar, era types.Era, lang *string) (EraView, error) {
	v := EraView{
		Value: era.Value,
		Name:  era.Name,
		Abbr:  era.Abbr,
		Since: era.Since.String(),
	}
	if last, ok := cal.LastDay(era); ok {
		v.Until = last.String()
	}
	if lang != nil {
		name, err := cal.EraName(era, types.TierLong, *lang)
		if err != nil {
			return EraView{}, err
		}
		v.LongName = name
	}
	return v, nil
}

// NewDateView describes d. When lang is non-nil the localized rendering is
// included.
func NewDateView(cal *wareki.Calendar, d wareki.Date, lang *string) (DateView, error) {
	v := DateView{
		Display:   d.String(),
		Era:       d.Era().Name,
		EraValue:  d.Era().Value,
		YearOfEra: d.YearOfEra(),
		ISO:       d.ISO().String(),
		Year:      d.Year(),
		Month:     int(d.Month()),
		Day:       d.Day(),
		YearDay:   d.YearDay(),
	}
	if lang != nil {
		s, err := cal.FormatLocalized(d, *lang)
		if err != nil {
			return DateView{}, err
		}
		v.Localized = s
	}
	return v, nil
}
