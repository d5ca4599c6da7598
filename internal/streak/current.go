package streak

import (
	"time"

	"github.com/habitkit/habitkit/internal/domain"
)

// currentStreak counts consecutive qualifying occasions ending at or just
// before today, each backed by an entry. dates is sorted ascending and
// duplicate-free.
func currentStreak(dates []time.Time, freq domain.Frequency, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	if freq.Kind == domain.Weekly {
		return currentWeeklyStreak(dates, freq.TimesPerWeek, today)
	}

	logged := dateSet(dates)

	// Anchor: the most recent qualifying day on or before today.
	anchor := today
	if !freq.ScheduledOn(anchor) {
		anchor = prevQualifying(freq, anchor)
	}

	if freq.Kind == domain.Interval {
		// Interval occasions are anchored to the last logged date, not
		// the calendar. The streak is alive while the gap since the last
		// entry has not exceeded one interval: the occasion at
		// latest+EveryNDays is today or later, so an unlogged today does
		// not break it.
		latest := dates[len(dates)-1]
		if today.After(latest.AddDate(0, 0, freq.EveryNDays)) {
			return 0
		}
		anchor = latest
	} else if anchor.Equal(today) && !logged[today] {
		// Today is a qualifying day but has not been logged yet. Start
		// the walk one occasion earlier so an unlogged today does not
		// break a streak still in progress.
		anchor = prevQualifying(freq, anchor)
	}

	streak := 0
	for i := 0; i < maxWalkDays; i++ {
		if !logged[anchor] {
			break
		}
		streak++
		anchor = prevQualifying(freq, anchor)
	}
	return streak
}

// currentWeeklyStreak walks Monday-aligned week windows backward from the
// week containing today, counting weeks whose entry count reaches the
// weekly target.
func currentWeeklyStreak(dates []time.Time, timesPerWeek int, today time.Time) int {
	perWeek := make(map[time.Time]int)
	for _, d := range dates {
		perWeek[mondayOf(d)]++
	}

	streak := 0
	week := mondayOf(today)
	for i := 0; i < maxWalkWeeks; i++ {
		if perWeek[week] < timesPerWeek {
			break
		}
		streak++
		week = week.AddDate(0, 0, -7)
	}
	return streak
}
