package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/bikeshare/internal/model"
)

func newTrip(start string, from, to string, duration float64, userType string) model.Trip {
	ts, err := time.Parse("2006-01-02 15:04:05", start)
	if err != nil {
		panic(err)
	}
	t := model.Trip{
		StartTime:    ts,
		StartStation: from,
		EndStation:   to,
		Duration:     duration,
		UserType:     userType,
	}
	t.Derive()
	return t
}

func openWith(t *testing.T, cols model.Columns, trips []model.Trip) *Store {
	t.Helper()
	st, err := Open(cols)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if err := st.InsertTrips(context.Background(), trips); err != nil {
		t.Fatalf("insert trips: %v", err)
	}
	return st
}

func TestModeBreaksTiesByFirstOccurrence(t *testing.T) {
	trips := []model.Trip{
		newTrip("2017-03-01 08:00:00", "B", "X", 10, "Subscriber"),
		newTrip("2017-03-01 09:00:00", "A", "X", 10, "Subscriber"),
		newTrip("2017-03-01 10:00:00", "A", "Y", 10, "Customer"),
		newTrip("2017-03-01 11:00:00", "B", "Y", 10, "Customer"),
	}
	st := openWith(t, model.Columns{}, trips)
	ctx := context.Background()

	got, ok, err := st.Mode(ctx, ColStartStation)
	if err != nil || !ok {
		t.Fatalf("mode start station: ok=%v err=%v", ok, err)
	}
	if got != "B" {
		t.Fatalf("expected first-seen B on tie, got %q", got)
	}
	got, _, err = st.Mode(ctx, ColEndStation)
	if err != nil {
		t.Fatalf("mode end station: %v", err)
	}
	if got != "X" {
		t.Fatalf("expected X, got %q", got)
	}
}

func TestModeNumericColumns(t *testing.T) {
	trips := []model.Trip{
		newTrip("2017-01-02 08:15:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-06 17:00:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-07 17:30:00", "A", "B", 1, "Subscriber"),
	}
	st := openWith(t, model.Columns{}, trips)
	ctx := context.Background()

	month, _, err := st.Mode(ctx, ColMonth)
	if err != nil {
		t.Fatalf("mode month: %v", err)
	}
	if month != "3" {
		t.Fatalf("expected month 3, got %q", month)
	}
	hour, _, err := st.Mode(ctx, ColHour)
	if err != nil {
		t.Fatalf("mode hour: %v", err)
	}
	if hour != "17" {
		t.Fatalf("expected hour 17, got %q", hour)
	}
	day, _, err := st.Mode(ctx, ColWeekday)
	if err != nil {
		t.Fatalf("mode weekday: %v", err)
	}
	if day != "Monday" {
		t.Fatalf("expected Monday, got %q", day)
	}
}

func TestModeRoute(t *testing.T) {
	trips := []model.Trip{
		newTrip("2017-03-01 08:00:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "B", "A", 1, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "B", "A", 1, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "", "A", 1, "Subscriber"),
	}
	st := openWith(t, model.Columns{}, trips)
	got, ok, err := st.Mode(context.Background(), ColRoute)
	if err != nil || !ok {
		t.Fatalf("mode route: ok=%v err=%v", ok, err)
	}
	if got != "B to A" {
		t.Fatalf("expected %q, got %q", "B to A", got)
	}
}

func TestModeEmptyTable(t *testing.T) {
	st := openWith(t, model.Columns{}, nil)
	_, ok, err := st.Mode(context.Background(), ColMonth)
	if err != nil {
		t.Fatalf("mode on empty table: %v", err)
	}
	if ok {
		t.Fatalf("expected no mode on empty table")
	}
}

func TestValueCountsSkipsMissing(t *testing.T) {
	trips := []model.Trip{
		newTrip("2017-03-01 08:00:00", "A", "B", 1, "Customer"),
		newTrip("2017-03-01 08:00:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "A", "B", 1, ""),
	}
	st := openWith(t, model.Columns{}, trips)
	counts, err := st.ValueCounts(context.Background(), ColUserType)
	if err != nil {
		t.Fatalf("value counts: %v", err)
	}
	want := []model.Count{{Value: "Subscriber", Count: 2}, {Value: "Customer", Count: 1}}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("value counts mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize(t *testing.T) {
	y1, y2 := 1980.0, 1995.0
	trips := []model.Trip{
		newTrip("2017-03-01 08:00:00", "A", "B", 100, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "A", "B", 300, "Subscriber"),
		newTrip("2017-03-01 08:00:00", "A", "B", 200, "Subscriber"),
	}
	trips[0].BirthYear = &y1
	trips[2].BirthYear = &y2
	st := openWith(t, model.Columns{BirthYear: true}, trips)
	ctx := context.Background()

	dur, err := st.Summarize(ctx, ColDuration)
	if err != nil {
		t.Fatalf("summarize duration: %v", err)
	}
	if diff := cmp.Diff(Numeric{Count: 3, Sum: 600, Mean: 200, Min: 100, Max: 300}, dur); diff != "" {
		t.Fatalf("duration summary mismatch (-want +got):\n%s", diff)
	}
	years, err := st.Summarize(ctx, ColBirthYear)
	if err != nil {
		t.Fatalf("summarize birth year: %v", err)
	}
	if years.Count != 2 || years.Min != 1980 || years.Max != 1995 {
		t.Fatalf("unexpected birth year summary: %+v", years)
	}
	mode, _, err := st.Mode(ctx, ColBirthYear)
	if err != nil {
		t.Fatalf("mode birth year: %v", err)
	}
	if mode != "1980" {
		t.Fatalf("expected 1980, got %q", mode)
	}
}

func TestHourHistogram(t *testing.T) {
	trips := []model.Trip{
		newTrip("2017-03-01 00:10:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-01 23:10:00", "A", "B", 1, "Subscriber"),
		newTrip("2017-03-02 23:50:00", "A", "B", 1, "Subscriber"),
	}
	st := openWith(t, model.Columns{}, trips)
	hist, err := st.HourHistogram(context.Background())
	if err != nil {
		t.Fatalf("hour histogram: %v", err)
	}
	if hist[0] != 1 || hist[23] != 2 || hist[12] != 0 {
		t.Fatalf("unexpected histogram: %v", hist)
	}
}

func TestUnknownColumn(t *testing.T) {
	st := openWith(t, model.Columns{}, nil)
	if _, _, err := st.Mode(context.Background(), Column("id; DROP TABLE trips")); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}
