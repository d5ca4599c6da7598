package streak

import (
	"time"

	"github.com/habitkit/habitkit/internal/domain"
)

// Per-variant qualifying-day stepping, shared by the backward-scanning
// current-streak walk and the forward-scanning longest-streak pass so the
// two directions cannot drift apart.
//
// Weekly is absent on purpose: it is evaluated at week granularity, not
// by day stepping.

// prevQualifying returns the latest qualifying day strictly before date.
func prevQualifying(freq domain.Frequency, date time.Time) time.Time {
	switch freq.Kind {
	case domain.Interval:
		return date.AddDate(0, 0, -freq.EveryNDays)
	default:
		d := date.AddDate(0, 0, -1)
		for !freq.ScheduledOn(d) {
			d = d.AddDate(0, 0, -1)
		}
		return d
	}
}

// nextQualifying returns the earliest qualifying day strictly after date.
func nextQualifying(freq domain.Frequency, date time.Time) time.Time {
	switch freq.Kind {
	case domain.Interval:
		return date.AddDate(0, 0, freq.EveryNDays)
	default:
		d := date.AddDate(0, 0, 1)
		for !freq.ScheduledOn(d) {
			d = d.AddDate(0, 0, 1)
		}
		return d
	}
}

// mondayOf returns the Monday of the ISO week containing date. Weekly
// streaks bucket by this value: two weeks are consecutive exactly when
// their Mondays are seven days apart, which holds across year rollovers
// and 52/53-week years without any week-number arithmetic.
func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
