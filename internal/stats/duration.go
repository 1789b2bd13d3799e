package stats

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/bikeshare/internal/store"
)

// DurationStats prints total and mean trip duration in seconds.
func DurationStats(ctx context.Context, w io.Writer, st *store.Store) error {
	sum, err := st.Summarize(ctx, store.ColDuration)
	if err != nil {
		return fmt.Errorf("trip duration: %w", err)
	}
	p := &printer{w: w}
	if sum.Count == 0 {
		p.linef("Total travel time: %s", notAvailable)
		p.linef("Mean travel time: %s", notAvailable)
		return p.err
	}
	p.linef("Total travel time: %s seconds (%s)", humanize.Commaf(sum.Sum), roundedDuration(sum.Sum))
	p.linef("Mean travel time: %s seconds", humanize.CommafWithDigits(sum.Mean, 2))
	return p.err
}

func roundedDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds)) * time.Second
}
