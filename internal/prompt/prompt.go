// Package prompt collects and validates console answers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// Separator closes each console section.
var Separator = strings.Repeat("-", 40)

const invalidInput = "Invalid input. Please try again."

// Collector asks questions on w and reads answers line by line from r.
type Collector struct {
	r *bufio.Reader
	w io.Writer
}

// New returns a Collector reading from r and writing prompts to w.
func New(r io.Reader, w io.Writer) *Collector {
	return &Collector{r: bufio.NewReader(r), w: w}
}

// Ask prints question and returns the next input line without its newline.
// A final line without a newline is returned; io.EOF is returned only when
// no input is left.
func (c *Collector) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(c.w, question); err != nil {
		return "", err
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choose asks question until the trimmed, lower-cased answer is one of options.
func (c *Collector) Choose(question string, options []string) (string, error) {
	for {
		answer, err := c.Ask(question)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if slices.Contains(options, answer) {
			return answer, nil
		}
		if _, err := fmt.Fprintln(c.w, invalidInput); err != nil {
			return "", err
		}
	}
}

// Filters greets the user and collects a city, month and weekday.
func (c *Collector) Filters() (model.Filter, error) {
	if _, err := fmt.Fprintln(c.w, "Hello! Let's explore some US bikeshare data!"); err != nil {
		return model.Filter{}, err
	}
	city, err := c.Choose("Choose a city (chicago, new york city, washington): ", model.CityNames())
	if err != nil {
		return model.Filter{}, err
	}
	month, err := c.Choose("Choose a month (all, january, february, ... , june): ", model.MonthOptions())
	if err != nil {
		return model.Filter{}, err
	}
	day, err := c.Choose("Choose a day of the week (all, monday, tuesday, ... sunday): ", model.WeekdayOptions())
	if err != nil {
		return model.Filter{}, err
	}
	if _, err := fmt.Fprintln(c.w, Separator); err != nil {
		return model.Filter{}, err
	}
	return model.Filter{City: model.City(city), Month: month, Day: day}, nil
}
