// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// All disables a month or weekday filter.
const All = "all"

// City identifies a supported bike-share dataset.
type City string

// Supported cities.
const (
	Chicago     City = "chicago"
	NewYorkCity City = "new york city"
	Washington  City = "washington"
)

// Cities lists supported cities in prompt order.
var Cities = []City{Chicago, NewYorkCity, Washington}

// Months lists filterable months; the 1-based position is the month number.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Weekdays lists filterable weekdays.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// FileName returns the CSV file name backing the city.
func (c City) FileName() string {
	return strings.ReplaceAll(string(c), " ", "_") + ".csv"
}

// CityNames returns the city vocabulary as strings.
func CityNames() []string {
	out := make([]string, len(Cities))
	for i, c := range Cities {
		out[i] = string(c)
	}
	return out
}

// MonthOptions returns the month vocabulary including All.
func MonthOptions() []string {
	return append([]string{All}, Months...)
}

// WeekdayOptions returns the weekday vocabulary including All.
func WeekdayOptions() []string {
	return append([]string{All}, Weekdays...)
}

// Filter is the validated selection for one session iteration.
type Filter struct {
	City  City
	Month string
	Day   string
}

// MonthIndex returns the 1-based month number, or 0 when unfiltered.
func (f Filter) MonthIndex() int {
	for i, m := range Months {
		if m == f.Month {
			return i + 1
		}
	}
	return 0
}

// WeekdayName returns the title-cased weekday, or "" when unfiltered.
func (f Filter) WeekdayName() string {
	if f.Day == "" || f.Day == All {
		return ""
	}
	return strings.ToUpper(f.Day[:1]) + f.Day[1:]
}

// MonthName returns the title-cased name for a 1-based month number.
func MonthName(month int) string {
	return time.Month(month).String()
}

// Columns records which optional columns a source file carried.
type Columns struct {
	Gender    bool
	BirthYear bool
}

// Trip is one bike rental with its derived time columns.
type Trip struct {
	StartTime    time.Time
	StartStation string
	EndStation   string
	Duration     float64
	UserType     string
	Gender       string
	BirthYear    *float64

	Month   int
	Weekday string
	Hour    int
}

// Derive fills Month, Weekday and Hour from StartTime.
func (t *Trip) Derive() {
	t.Month = int(t.StartTime.Month())
	t.Weekday = t.StartTime.Weekday().String()
	t.Hour = t.StartTime.Hour()
}

// Count is one row of a value-count table.
type Count struct {
	Value string
	Count int64
}
