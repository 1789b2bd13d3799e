// Package dataset loads per-city trip files and applies month/day filters.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/store"
)

// ErrDataUnavailable marks a missing or malformed city file.
var ErrDataUnavailable = errors.New("data unavailable")

// Source column headers.
const (
	HeaderStartTime    = "Start Time"
	HeaderStartStation = "Start Station"
	HeaderEndStation   = "End Station"
	HeaderDuration     = "Trip Duration"
	HeaderUserType     = "User Type"
	HeaderGender       = "Gender"
	HeaderBirthYear    = "Birth Year"
)

var requiredHeaders = []string{
	HeaderStartTime,
	HeaderStartStation,
	HeaderEndStation,
	HeaderDuration,
	HeaderUserType,
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Loader reads city files from a directory.
type Loader struct {
	Dir string
}

// Path returns the file location for a city.
func (l Loader) Path(city model.City) string {
	return filepath.Join(l.Dir, city.FileName())
}

// Load reads the city file, keeps the rows matching the filter and returns
// them in a fresh in-memory store. The caller owns and must close the store.
func (l Loader) Load(ctx context.Context, filter model.Filter) (*store.Store, error) {
	started := time.Now()
	path := l.Path(filter.City)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only data file.
			_ = cerr
		}
	}()

	trips, cols, err := ReadTrips(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	total := len(trips)
	trips = Apply(trips, filter)

	st, err := store.Open(cols)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset store: %w", err)
	}
	if err := st.InsertTrips(ctx, trips); err != nil {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close on insert failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to store trips: %w", err)
	}

	log.WithFields(log.Fields{
		"path":     path,
		"rows":     total,
		"kept":     len(trips),
		"month":    filter.Month,
		"day":      filter.Day,
		"duration": time.Since(started),
	}).Debug("dataset loaded")
	return st, nil
}

// ReadTrips decodes a Latin-1 CSV trip file and derives time columns.
func ReadTrips(r io.Reader) ([]model.Trip, model.Columns, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.Columns{}, fmt.Errorf("%w: empty file", ErrDataUnavailable)
		}
		return nil, model.Columns{}, fmt.Errorf("%w: failed to read header: %v", ErrDataUnavailable, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredHeaders {
		if _, ok := index[name]; !ok {
			return nil, model.Columns{}, fmt.Errorf("%w: missing column %q", ErrDataUnavailable, name)
		}
	}
	genderIdx, hasGender := index[HeaderGender]
	birthIdx, hasBirth := index[HeaderBirthYear]
	cols := model.Columns{Gender: hasGender, BirthYear: hasBirth}

	var trips []model.Trip
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, cols, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		field := func(i int) string {
			return strings.TrimSpace(record[i])
		}

		start, err := parseTime(field(index[HeaderStartTime]))
		if err != nil {
			return nil, cols, fmt.Errorf("%w: line %d: %v", ErrDataUnavailable, line, err)
		}
		duration, err := strconv.ParseFloat(field(index[HeaderDuration]), 64)
		if err != nil {
			return nil, cols, fmt.Errorf("%w: line %d: invalid trip duration: %v", ErrDataUnavailable, line, err)
		}
		trip := model.Trip{
			StartTime:    start,
			StartStation: field(index[HeaderStartStation]),
			EndStation:   field(index[HeaderEndStation]),
			Duration:     duration,
			UserType:     field(index[HeaderUserType]),
		}
		if hasGender {
			trip.Gender = field(genderIdx)
		}
		if hasBirth {
			if raw := field(birthIdx); raw != "" {
				year, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, cols, fmt.Errorf("%w: line %d: invalid birth year: %v", ErrDataUnavailable, line, err)
				}
				trip.BirthYear = &year
			}
		}
		trip.Derive()
		trips = append(trips, trip)
	}
	return trips, cols, nil
}

// Apply keeps trips whose derived month and weekday match the filter.
func Apply(trips []model.Trip, filter model.Filter) []model.Trip {
	month := filter.MonthIndex()
	weekday := filter.WeekdayName()
	if month == 0 && weekday == "" {
		return trips
	}
	out := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if month != 0 && t.Month != month {
			continue
		}
		if weekday != "" && t.Weekday != weekday {
			continue
		}
		out = append(out, t)
	}
	return out
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", value)
}
