package streak

import (
	"sort"
	"time"

	"github.com/habitkit/habitkit/internal/domain"
)

// longestStreak finds the longest run of consecutive qualifying occasions
// anywhere in the history. dates is sorted ascending and duplicate-free.
func longestStreak(dates []time.Time, freq domain.Frequency) int {
	if len(dates) == 0 {
		return 0
	}
	if freq.Kind == domain.Weekly {
		return longestWeeklyStreak(dates, freq.TimesPerWeek)
	}

	// Forward scan: a run extends when the next entry lands exactly on
	// the next qualifying day after the previous entry, and closes
	// otherwise. Entries on off-schedule days (say a Saturday entry for a
	// weekdays habit) can never match the expected day, so they close the
	// run and start a new one, matching the backward walk skipping them.
	longest := 1
	run := 1
	prev := dates[0]
	for _, d := range dates[1:] {
		if d.Equal(nextQualifying(freq, prev)) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
		prev = d
	}
	if run > longest {
		longest = run
	}
	return longest
}

// longestWeeklyStreak buckets entries into ISO weeks (keyed by the week's
// Monday), marks weeks reaching the target as qualifying, and finds the
// longest run of consecutive qualifying weeks. Keying by Monday dates
// makes week succession a plain seven-day step, so runs spanning a year
// boundary (ISO week 52 or 53 into week 1) chain correctly.
func longestWeeklyStreak(dates []time.Time, timesPerWeek int) int {
	perWeek := make(map[time.Time]int)
	for _, d := range dates {
		perWeek[mondayOf(d)]++
	}

	var qualifying []time.Time
	for week, count := range perWeek {
		if count >= timesPerWeek {
			qualifying = append(qualifying, week)
		}
	}
	if len(qualifying) == 0 {
		return 0
	}
	sort.Slice(qualifying, func(i, j int) bool { return qualifying[i].Before(qualifying[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(qualifying); i++ {
		if qualifying[i].Equal(qualifying[i-1].AddDate(0, 0, 7)) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	return longest
}
