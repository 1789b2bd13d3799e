// Package stats computes and renders the descriptive trip reports.
package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/verte-zerg/bikeshare/internal/store"
)

const notAvailable = "n/a"

var separator = strings.Repeat("-", 40)

// Section is one independent report over the filtered dataset.
type Section struct {
	Title string
	Run   func(ctx context.Context, w io.Writer, st *store.Store) error
}

// Sections returns the reports in presentation order.
func Sections() []Section {
	return []Section{
		{Title: "Calculating The Most Frequent Times of Travel...", Run: TimeStats},
		{Title: "Calculating The Most Popular Stations and Trip...", Run: StationStats},
		{Title: "Calculating Trip Duration...", Run: DurationStats},
		{Title: "Calculating User Stats...", Run: UserStats},
	}
}

// RunAll renders every section in order. A failing section is reported on w
// and does not stop the ones after it; all failures are joined.
func RunAll(ctx context.Context, w io.Writer, st *store.Store, sections []Section) error {
	var errs []error
	for _, section := range sections {
		if err := RunSection(ctx, w, st, section); err != nil {
			log.WithError(err).WithField("section", section.Title).Error("report section failed")
			if _, werr := fmt.Fprintf(w, "Failed to compute section: %v\n%s\n", err, separator); werr != nil {
				return werr
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunSection prints the section heading, its body and the elapsed time.
func RunSection(ctx context.Context, w io.Writer, st *store.Store, section Section) error {
	heading := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	if _, err := fmt.Fprintf(w, "\n%s\n\n", heading.Render(section.Title)); err != nil {
		return err
	}
	started := time.Now()
	if err := section.Run(ctx, w, st); err != nil {
		return err
	}
	elapsed := time.Since(started)
	_, err := fmt.Fprintf(w, "\nThis took %.6f seconds.\n%s\n", elapsed.Seconds(), separator)
	return err
}

// printer writes lines until the first error and keeps it.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) lines(lines []string) {
	for _, line := range lines {
		p.linef("%s", line)
	}
}

func orNA(value string, ok bool) string {
	if !ok {
		return notAvailable
	}
	return value
}
