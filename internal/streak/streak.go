// Package streak computes streak and completion-rate statistics for a
// habit from its completion entries and declared frequency.
//
// The whole package is a pure function of (entries, frequency, creation
// date, today): no clock reads, no I/O, no retained state. Callers pass
// "today" explicitly so results are reproducible, and may invoke Compute
// concurrently without locking.
package streak

import (
	"sort"
	"time"

	"github.com/habitkit/habitkit/internal/domain"
)

// Walk bounds. Streak walks terminate after a year's worth of periods
// regardless of data volume.
const (
	maxWalkDays  = 365
	maxWalkWeeks = 52
)

// Result is the derived, disposable statistics snapshot for one habit.
// It is recomputed on demand and has no identity of its own.
type Result struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastCompleted    *time.Time `json:"last_completed,omitempty"`
	TotalCompletions int        `json:"total_completions"`
	CompletionRate   float64    `json:"completion_rate"`
}

// Compute derives the full statistics record for a habit. It never fails:
// an empty entry list is a normal input and yields the zero result. The
// frequency must already be validated (domain.Frequency.Validate); the
// engine does not re-check it.
//
// Invariants on the output: LongestStreak >= CurrentStreak,
// CompletionRate is in [0, 1], and TotalCompletions == len(entries).
func Compute(entries []domain.Entry, freq domain.Frequency, createdOn, today time.Time) Result {
	if len(entries) == 0 {
		return Result{}
	}

	today = domain.DateOf(today)
	createdOn = domain.DateOf(createdOn)
	dates := uniqueDates(entries)

	last := dates[len(dates)-1]
	current := currentStreak(dates, freq, today)
	longest := longestStreak(dates, freq)
	if current > longest {
		longest = current
	}

	return Result{
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastCompleted:    &last,
		TotalCompletions: len(entries),
		CompletionRate:   completionRate(len(entries), freq, createdOn, today),
	}
}

// uniqueDates normalizes entries to a sorted ascending list of distinct
// completion dates. Duplicate same-date entries collapse to a single
// qualifying occasion; storage enforces uniqueness upstream, but the
// engine must not miscount if duplicates slip through.
func uniqueDates(entries []domain.Entry) []time.Time {
	seen := make(map[time.Time]bool, len(entries))
	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		d := domain.DateOf(e.CompletedOn)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// dateSet builds a membership set from a sorted date list.
func dateSet(dates []time.Time) map[time.Time]bool {
	set := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
