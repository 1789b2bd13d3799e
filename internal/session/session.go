// Package session drives the prompt, load and report cycle.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/prompt"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/store"
)

// State is the session loop state.
type State int

// Session states.
const (
	Running State = iota
	Stopped
)

// RestartToken is the only answer that starts another iteration.
const RestartToken = "oui"

const restartQuestion = "\nWould you like to restart? Enter 'oui' or 'non'.\n"

// Loader produces the filtered dataset for one iteration.
type Loader interface {
	Load(ctx context.Context, filter model.Filter) (*store.Store, error)
}

// DisplayFunc presents a rendered report. Nil writes it to the session output.
type DisplayFunc func(title, report string) error

// Session runs iterations until the user declines to restart.
type Session struct {
	collector *prompt.Collector
	out       io.Writer
	loader    Loader
	sections  []stats.Section
	display   DisplayFunc
}

// New builds a session reading answers from in and printing to out.
func New(in io.Reader, out io.Writer, loader Loader, display DisplayFunc) *Session {
	return &Session{
		collector: prompt.New(in, out),
		out:       out,
		loader:    loader,
		sections:  stats.Sections(),
		display:   display,
	}
}

// Run loops until Stopped. Closed input stops the session without error.
func (s *Session) Run(ctx context.Context) error {
	state := Running
	for state == Running {
		next, err := s.step(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("input closed, stopping session")
				return nil
			}
			return err
		}
		state = next
	}
	return nil
}

func (s *Session) step(ctx context.Context) (State, error) {
	filter, err := s.collector.Filters()
	if err != nil {
		return Stopped, err
	}
	if err := s.iterate(ctx, filter); err != nil {
		return Stopped, err
	}
	answer, err := s.collector.Ask(restartQuestion)
	if err != nil {
		return Stopped, err
	}
	if strings.EqualFold(strings.TrimSpace(answer), RestartToken) {
		return Running, nil
	}
	return Stopped, nil
}

// iterate loads and reports one selection. Only output failures are returned.
func (s *Session) iterate(ctx context.Context, filter model.Filter) error {
	st, err := s.loader.Load(ctx, filter)
	if err != nil {
		entry := log.WithError(err).WithField("city", filter.City)
		if errors.Is(err, dataset.ErrDataUnavailable) {
			entry.Debug("dataset unavailable")
		} else {
			entry.Error("dataset load failed")
		}
		_, werr := fmt.Fprintf(s.out, "Unable to load data for %s: %v\n", filter.City, err)
		return werr
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close dataset")
		}
	}()

	var report bytes.Buffer
	w := io.Writer(&report)
	if s.display == nil {
		w = s.out
	}
	if n, err := st.Count(ctx); err == nil {
		if _, err := fmt.Fprintf(w, "%s trips selected (%s, month: %s, day: %s).\n",
			humanize.Comma(n), filter.City, filter.Month, filter.Day); err != nil {
			return err
		}
	}
	if err := stats.RunAll(ctx, w, st, s.sections); err != nil {
		log.WithError(err).Warn("some report sections failed")
	}
	if s.display == nil {
		return nil
	}
	title := fmt.Sprintf("%s / month: %s / day: %s", filter.City, filter.Month, filter.Day)
	if err := s.display(title, report.String()); err != nil {
		log.WithError(err).Warn("display failed, printing report")
		_, werr := io.Copy(s.out, &report)
		return werr
	}
	return nil
}
