package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation is the sentinel wrapped by every constructor and parser
// error in this package. Callers test with errors.Is to distinguish bad
// input from infrastructure failures.
var ErrValidation = errors.New("validation")

// DateLayout is the calendar-date form used everywhere: tool parameters,
// storage columns, and response text.
const DateLayout = "2006-01-02"

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// DateOf truncates a timestamp to its calendar date in UTC. All date
// arithmetic in the engine operates on values normalized this way.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOf(timeNow())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", ErrValidation, s)
	}
	return t, nil
}
