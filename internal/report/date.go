// Package report computes the rolling-window metrics report and exports it
// as CSV. The aggregation itself is a pure function over raw window counts;
// Service wires it to an event store and an optional cache.
package report

import (
	"regexp"
	"time"

	"github.com/radiusdt/vector-track/internal/trackerr"
)

// dateRe narrows the accepted shape before the calendar check; time.Parse
// alone would also take formats like 2017-3-9.
var dateRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[1-2]\d|3[0-1])$`)

// ParseReferenceDate parses a YYYY-MM-DD reference date and normalizes it to
// start of day in the process time zone. Empty input defaults to today.
// Malformed or impossible dates (2017-02-30) are validation errors, never
// silently coerced.
func ParseReferenceDate(input string) (time.Time, error) {
	if input == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}

	if !dateRe.MatchString(input) {
		return time.Time{}, trackerr.Validation("invalid date %q (want YYYY-MM-DD)", input)
	}

	t, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return time.Time{}, trackerr.Validation("invalid date %q (want YYYY-MM-DD)", input)
	}
	return t, nil
}
