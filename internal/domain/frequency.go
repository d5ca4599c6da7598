// Package domain defines the core habit-tracking entities: Habit, Entry,
// and Frequency, together with their validation rules. Everything here is
// storage-agnostic; persistence and transport live in other packages.
package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FrequencyKind selects one recurrence pattern variant.
type FrequencyKind string

// The closed set of recurrence patterns. Streak and completion-rate
// calculations dispatch on this tag.
const (
	Daily      FrequencyKind = "daily"      // every calendar day
	Weekly     FrequencyKind = "weekly"     // N times per week, any days
	Weekdays   FrequencyKind = "weekdays"   // Monday through Friday
	Weekends   FrequencyKind = "weekends"   // Saturday and Sunday
	CustomDays FrequencyKind = "custom"     // a fixed set of weekdays
	Interval   FrequencyKind = "interval"   // every N days
)

// Frequency encodes how often a habit should be performed. Exactly one
// variant is active, selected by Kind; the parameter fields are only
// meaningful for their variant (TimesPerWeek for Weekly, Days for
// CustomDays, EveryNDays for Interval).
type Frequency struct {
	Kind         FrequencyKind
	TimesPerWeek int
	Days         []time.Weekday
	EveryNDays   int
}

// NewDaily returns the daily frequency.
func NewDaily() Frequency { return Frequency{Kind: Daily} }

// NewWeekly returns a frequency of n completions per week.
func NewWeekly(n int) Frequency { return Frequency{Kind: Weekly, TimesPerWeek: n} }

// NewWeekdays returns the Monday-through-Friday frequency.
func NewWeekdays() Frequency { return Frequency{Kind: Weekdays} }

// NewWeekends returns the Saturday-and-Sunday frequency.
func NewWeekends() Frequency { return Frequency{Kind: Weekends} }

// NewCustomDays returns a frequency scheduled on the given weekdays.
func NewCustomDays(days ...time.Weekday) Frequency {
	return Frequency{Kind: CustomDays, Days: days}
}

// NewInterval returns a frequency of one completion every n days.
func NewInterval(n int) Frequency { return Frequency{Kind: Interval, EveryNDays: n} }

// Validate checks the variant parameters. Invalid frequencies are rejected
// here, at construction/parse time: the streak engine assumes its input
// frequency is valid and never re-validates.
func (f Frequency) Validate() error {
	switch f.Kind {
	case Daily, Weekdays, Weekends:
		return nil
	case Weekly:
		if f.TimesPerWeek < 1 || f.TimesPerWeek > 7 {
			return fmt.Errorf("%w: weekly frequency must be 1-7 times per week, got %d", ErrValidation, f.TimesPerWeek)
		}
		return nil
	case CustomDays:
		if len(f.Days) == 0 {
			return fmt.Errorf("%w: custom frequency must specify at least one day", ErrValidation)
		}
		if len(f.Days) > 7 {
			return fmt.Errorf("%w: custom frequency cannot have more than 7 days", ErrValidation)
		}
		seen := map[time.Weekday]bool{}
		for _, d := range f.Days {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: invalid weekday %d in custom frequency", ErrValidation, d)
			}
			if seen[d] {
				return fmt.Errorf("%w: duplicate weekday %s in custom frequency", ErrValidation, d)
			}
			seen[d] = true
		}
		return nil
	case Interval:
		if f.EveryNDays < 1 {
			return fmt.Errorf("%w: interval must be at least 1 day", ErrValidation)
		}
		if f.EveryNDays > 365 {
			return fmt.Errorf("%w: interval cannot be longer than 365 days", ErrValidation)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown frequency kind %q", ErrValidation, f.Kind)
	}
}

// ScheduledOn reports whether the pattern expects activity on the given
// calendar date. Weekly and Interval return true for every day: weekly
// targets are evaluated at week granularity and intervals relative to the
// last logged date, so no single calendar date is ever off-schedule.
func (f Frequency) ScheduledOn(date time.Time) bool {
	switch f.Kind {
	case Weekdays:
		wd := date.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case Weekends:
		wd := date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case CustomDays:
		wd := date.Weekday()
		for _, d := range f.Days {
			if d == wd {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// ExpectedOccurrences returns the average number of completions this
// pattern expects over a span of the given number of days. Used by the
// completion-rate estimator only.
//
// CustomDays and Interval fall back to the daily equivalent, a known
// approximation carried over deliberately so rates stay comparable with
// historical data.
func (f Frequency) ExpectedOccurrences(spanDays int) float64 {
	switch f.Kind {
	case Weekly:
		return float64(spanDays) / 7.0 * float64(f.TimesPerWeek)
	case Weekdays:
		return float64(spanDays) / 7.0 * 5.0
	case Weekends:
		return float64(spanDays) / 7.0 * 2.0
	default:
		return float64(spanDays)
	}
}

// ─── String form ─────────────────────────────────────────────────────────────

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

var weekdayAbbrev = map[time.Weekday]string{
	time.Sunday: "sun", time.Monday: "mon", time.Tuesday: "tue",
	time.Wednesday: "wed", time.Thursday: "thu", time.Friday: "fri",
	time.Saturday: "sat",
}

// ParseFrequency parses the tool-facing string form:
//
//	daily | weekdays | weekends | weekly:3 | custom:mon,wed,fri | interval:3
//
// A bare "weekly" defaults to 3 times per week. The result is validated.
func ParseFrequency(s string) (Frequency, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	kind, arg, _ := strings.Cut(spec, ":")

	var f Frequency
	switch kind {
	case "daily":
		f = NewDaily()
	case "weekdays":
		f = NewWeekdays()
	case "weekends":
		f = NewWeekends()
	case "weekly":
		n := 3
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return Frequency{}, fmt.Errorf("%w: weekly frequency needs a number, got %q", ErrValidation, arg)
			}
			n = v
		}
		f = NewWeekly(n)
	case "custom":
		if arg == "" {
			return Frequency{}, fmt.Errorf("%w: custom frequency needs weekdays, e.g. custom:mon,wed,fri", ErrValidation)
		}
		var days []time.Weekday
		for _, name := range strings.Split(arg, ",") {
			d, ok := weekdayNames[strings.TrimSpace(name)]
			if !ok {
				return Frequency{}, fmt.Errorf("%w: unknown weekday %q (use mon..sun)", ErrValidation, name)
			}
			days = append(days, d)
		}
		f = NewCustomDays(days...)
	case "interval":
		if arg == "" {
			return Frequency{}, fmt.Errorf("%w: interval frequency needs a day count, e.g. interval:3", ErrValidation)
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Frequency{}, fmt.Errorf("%w: interval frequency needs a number, got %q", ErrValidation, arg)
		}
		f = NewInterval(n)
	default:
		return Frequency{}, fmt.Errorf("%w: unknown frequency %q (valid: daily, weekdays, weekends, weekly:N, custom:days, interval:N)", ErrValidation, s)
	}

	if err := f.Validate(); err != nil {
		return Frequency{}, err
	}
	return f, nil
}

// String renders the same form ParseFrequency accepts.
func (f Frequency) String() string {
	switch f.Kind {
	case Weekly:
		return fmt.Sprintf("weekly:%d", f.TimesPerWeek)
	case CustomDays:
		days := make([]time.Weekday, len(f.Days))
		copy(days, f.Days)
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		names := make([]string, len(days))
		for i, d := range days {
			names[i] = weekdayAbbrev[d]
		}
		return "custom:" + strings.Join(names, ",")
	case Interval:
		return fmt.Sprintf("interval:%d", f.EveryNDays)
	default:
		return string(f.Kind)
	}
}

// Describe renders a human-readable form for tool responses, e.g.
// "3 times per week" or "every 3 days".
func (f Frequency) Describe() string {
	switch f.Kind {
	case Daily:
		return "every day"
	case Weekly:
		if f.TimesPerWeek == 1 {
			return "once per week"
		}
		return fmt.Sprintf("%d times per week", f.TimesPerWeek)
	case Weekdays:
		return "weekdays"
	case Weekends:
		return "weekends"
	case CustomDays:
		days := make([]time.Weekday, len(f.Days))
		copy(days, f.Days)
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		names := make([]string, len(days))
		for i, d := range days {
			names[i] = d.String()[:3]
		}
		return "on " + strings.Join(names, ", ")
	case Interval:
		if f.EveryNDays == 1 {
			return "every day"
		}
		return fmt.Sprintf("every %d days", f.EveryNDays)
	default:
		return string(f.Kind)
	}
}

// ─── JSON form (storage) ─────────────────────────────────────────────────────

type frequencyWire struct {
	Kind         FrequencyKind `json:"kind"`
	TimesPerWeek int           `json:"times_per_week,omitempty"`
	Days         []string      `json:"days,omitempty"`
	EveryNDays   int           `json:"every_n_days,omitempty"`
}

// MarshalJSON encodes the frequency with weekday names instead of numeric
// time.Weekday values, keeping the stored form readable and stable.
func (f Frequency) MarshalJSON() ([]byte, error) {
	w := frequencyWire{
		Kind:         f.Kind,
		TimesPerWeek: f.TimesPerWeek,
		EveryNDays:   f.EveryNDays,
	}
	for _, d := range f.Days {
		w.Days = append(w.Days, weekdayAbbrev[d])
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes and validates the stored form.
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var w frequencyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := Frequency{
		Kind:         w.Kind,
		TimesPerWeek: w.TimesPerWeek,
		EveryNDays:   w.EveryNDays,
	}
	for _, name := range w.Days {
		d, ok := weekdayNames[name]
		if !ok {
			return fmt.Errorf("%w: unknown weekday %q in stored frequency", ErrValidation, name)
		}
		out.Days = append(out.Days, d)
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*f = out
	return nil
}
