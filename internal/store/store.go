// Package store holds a filtered trip dataset in an in-memory SQLite table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verte-zerg/bikeshare/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Column names an aggregatable expression over the trips table.
type Column string

// Aggregatable columns.
const (
	ColMonth        Column = "month"
	ColWeekday      Column = "weekday"
	ColHour         Column = "hour"
	ColStartStation Column = "start_station"
	ColEndStation   Column = "end_station"
	ColRoute        Column = "route"
	ColDuration     Column = "duration"
	ColUserType     Column = "user_type"
	ColGender       Column = "gender"
	ColBirthYear    Column = "birth_year"
)

// RouteSeparator joins start and end station names into a route.
const RouteSeparator = " to "

var columnExprs = map[Column]string{
	ColMonth:        "month",
	ColWeekday:      "weekday",
	ColHour:         "hour",
	ColStartStation: "start_station",
	ColEndStation:   "end_station",
	ColRoute:        "start_station || '" + RouteSeparator + "' || end_station",
	ColDuration:     "duration",
	ColUserType:     "user_type",
	ColGender:       "gender",
	ColBirthYear:    "birth_year",
}

// Store wraps one in-memory trips table. It lives for a single session iteration.
type Store struct {
	db      *sql.DB
	columns model.Columns
}

// Open creates an empty in-memory database and applies the schema.
func Open(columns model.Columns) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every new connection would see its own empty :memory: database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, columns: columns}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Columns reports which optional columns the source carried.
func (s *Store) Columns() model.Columns {
	return s.columns
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE trips (
			id INTEGER PRIMARY KEY,
			start_time TEXT NOT NULL,
			month INTEGER NOT NULL,
			weekday TEXT NOT NULL,
			hour INTEGER NOT NULL,
			start_station TEXT,
			end_station TEXT,
			duration REAL,
			user_type TEXT,
			gender TEXT,
			birth_year REAL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertTrips appends trips in order; row order defines tie-breaks.
func (s *Store) InsertTrips(ctx context.Context, trips []model.Trip) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trips (start_time, month, weekday, hour, start_station, end_station, duration, user_type, gender, birth_year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, t := range trips {
		var birthYear any
		if t.BirthYear != nil {
			birthYear = *t.BirthYear
		}
		if _, err = stmt.ExecContext(ctx,
			t.StartTime.Format("2006-01-02 15:04:05"),
			t.Month,
			t.Weekday,
			t.Hour,
			nullString(t.StartStation),
			nullString(t.EndStation),
			t.Duration,
			nullString(t.UserType),
			nullString(t.Gender),
			birthYear,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Count returns the number of stored trips.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Mode returns the most frequent non-null value of col. Ties go to the value
// seen first in row order. ok is false when the column has no values.
func (s *Store) Mode(ctx context.Context, col Column) (value string, ok bool, err error) {
	expr, err := exprFor(col)
	if err != nil {
		return "", false, err
	}
	query := fmt.Sprintf(`SELECT %[1]s AS v
		FROM trips
		WHERE %[1]s IS NOT NULL
		GROUP BY v
		ORDER BY COUNT(*) DESC, MIN(id) ASC
		LIMIT 1`, expr)
	err = s.db.QueryRowContext(ctx, query).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// ValueCounts returns the frequency of each non-null value of col, most
// frequent first, ties in row order.
func (s *Store) ValueCounts(ctx context.Context, col Column) ([]model.Count, error) {
	expr, err := exprFor(col)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %[1]s AS v, COUNT(*) AS n
		FROM trips
		WHERE %[1]s IS NOT NULL
		GROUP BY v
		ORDER BY n DESC, MIN(id) ASC`, expr)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Count
	for rows.Next() {
		var c model.Count
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Numeric summarizes a numeric column over its non-null values.
type Numeric struct {
	Count int64
	Sum   float64
	Mean  float64
	Min   float64
	Max   float64
}

// Summarize computes count, sum, mean, min and max of col.
func (s *Store) Summarize(ctx context.Context, col Column) (Numeric, error) {
	expr, err := exprFor(col)
	if err != nil {
		return Numeric{}, err
	}
	query := fmt.Sprintf(`SELECT COUNT(%[1]s), COALESCE(SUM(%[1]s), 0), COALESCE(AVG(%[1]s), 0),
		COALESCE(MIN(%[1]s), 0), COALESCE(MAX(%[1]s), 0)
		FROM trips`, expr)
	var n Numeric
	if err := s.db.QueryRowContext(ctx, query).Scan(&n.Count, &n.Sum, &n.Mean, &n.Min, &n.Max); err != nil {
		return Numeric{}, err
	}
	return n, nil
}

// HourHistogram returns trip counts for each hour 0-23.
func (s *Store) HourHistogram(ctx context.Context) ([24]int64, error) {
	var out [24]int64
	rows, err := s.db.QueryContext(ctx, `SELECT hour, COUNT(*) FROM trips GROUP BY hour`)
	if err != nil {
		return out, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var hour int
		var n int64
		if err := rows.Scan(&hour, &n); err != nil {
			return out, err
		}
		if hour >= 0 && hour < len(out) {
			out[hour] = n
		}
	}
	return out, rows.Err()
}

func exprFor(col Column) (string, error) {
	expr, ok := columnExprs[col]
	if !ok {
		return "", fmt.Errorf("unknown column %q", col)
	}
	return expr, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
