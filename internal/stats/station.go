package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/bikeshare/internal/store"
)

// StationSummary holds the most popular stations and route. Empty fields
// mean no data.
type StationSummary struct {
	StartStation string
	EndStation   string
	Route        string
}

// ComputeStations finds the modal start station, end station and route.
func ComputeStations(ctx context.Context, st *store.Store) (StationSummary, error) {
	var sum StationSummary
	targets := []struct {
		col  store.Column
		dest *string
	}{
		{store.ColStartStation, &sum.StartStation},
		{store.ColEndStation, &sum.EndStation},
		{store.ColRoute, &sum.Route},
	}
	for _, target := range targets {
		value, _, err := st.Mode(ctx, target.col)
		if err != nil {
			return sum, fmt.Errorf("%s mode: %w", target.col, err)
		}
		*target.dest = value
	}
	return sum, nil
}

// StationStats prints the most popular stations and start-end combination.
func StationStats(ctx context.Context, w io.Writer, st *store.Store) error {
	sum, err := ComputeStations(ctx, st)
	if err != nil {
		return err
	}
	p := &printer{w: w}
	p.linef("Most commonly used start station: %s", orNA(sum.StartStation, sum.StartStation != ""))
	p.linef("Most commonly used end station: %s", orNA(sum.EndStation, sum.EndStation != ""))
	p.linef("Most frequent combination of start and end station: %s", orNA(sum.Route, sum.Route != ""))
	return p.err
}
