package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/store"
)

// UserStats prints user type counts and, when the source has them, gender
// counts and birth year extremes.
func UserStats(ctx context.Context, w io.Writer, st *store.Store) error {
	userTypes, err := st.ValueCounts(ctx, store.ColUserType)
	if err != nil {
		return fmt.Errorf("user types: %w", err)
	}
	p := &printer{w: w}
	p.linef("Counts of user types:")
	p.lines(countTable("User Type", userTypes))

	cols := st.Columns()
	if cols.Gender {
		genders, err := st.ValueCounts(ctx, store.ColGender)
		if err != nil {
			return fmt.Errorf("genders: %w", err)
		}
		p.linef("")
		p.linef("Counts of gender:")
		p.lines(countTable("Gender", genders))
	}
	if cols.BirthYear {
		years, err := st.Summarize(ctx, store.ColBirthYear)
		if err != nil {
			return fmt.Errorf("birth years: %w", err)
		}
		common, ok, err := st.Mode(ctx, store.ColBirthYear)
		if err != nil {
			return fmt.Errorf("birth year mode: %w", err)
		}
		p.linef("")
		if years.Count == 0 {
			p.linef("Earliest year of birth: %s", notAvailable)
			p.linef("Most recent year of birth: %s", notAvailable)
		} else {
			p.linef("Earliest year of birth: %s", formatYear(years.Min))
			p.linef("Most recent year of birth: %s", formatYear(years.Max))
		}
		p.linef("Most common year of birth: %s", orNA(common, ok))
	}
	return p.err
}

func countTable(label string, counts []model.Count) []string {
	if len(counts) == 0 {
		return []string{notAvailable}
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, humanize.Comma(c.Count)})
	}
	return formatTable([]string{label, "Count"}, rows, map[int]bool{1: true})
}

func formatYear(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
