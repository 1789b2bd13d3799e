package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/store"
)

// TimeSummary holds the most frequent travel times.
type TimeSummary struct {
	HasData bool
	Month   int
	Weekday string
	Hour    int
	ByHour  [24]int64
}

// ComputeTime finds the modal month, weekday and start hour.
func ComputeTime(ctx context.Context, st *store.Store) (TimeSummary, error) {
	var sum TimeSummary
	month, ok, err := st.Mode(ctx, store.ColMonth)
	if err != nil {
		return sum, fmt.Errorf("month mode: %w", err)
	}
	if !ok {
		return sum, nil
	}
	sum.HasData = true
	if sum.Month, err = strconv.Atoi(month); err != nil {
		return sum, fmt.Errorf("month mode: %w", err)
	}
	if sum.Weekday, _, err = st.Mode(ctx, store.ColWeekday); err != nil {
		return sum, fmt.Errorf("weekday mode: %w", err)
	}
	hour, _, err := st.Mode(ctx, store.ColHour)
	if err != nil {
		return sum, fmt.Errorf("hour mode: %w", err)
	}
	if sum.Hour, err = strconv.Atoi(hour); err != nil {
		return sum, fmt.Errorf("hour mode: %w", err)
	}
	if sum.ByHour, err = st.HourHistogram(ctx); err != nil {
		return sum, fmt.Errorf("hour histogram: %w", err)
	}
	return sum, nil
}

// TimeStats prints the most frequent month, weekday and start hour.
func TimeStats(ctx context.Context, w io.Writer, st *store.Store) error {
	sum, err := ComputeTime(ctx, st)
	if err != nil {
		return err
	}
	p := &printer{w: w}
	if !sum.HasData {
		p.linef("Most common month: %s", notAvailable)
		p.linef("Most common day of week: %s", notAvailable)
		p.linef("Most common start hour: %s", notAvailable)
		return p.err
	}
	p.linef("Most common month: %s (%d)", model.MonthName(sum.Month), sum.Month)
	p.linef("Most common day of week: %s", sum.Weekday)
	p.linef("Most common start hour: %d", sum.Hour)
	p.linef("Trips by start hour: |%s| 0h-23h", Sparkline(sum.ByHour[:]))
	return p.err
}
