package streak_test

import (
	"testing"
	"time"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/streak"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// day parses a YYYY-MM-DD fixture date.
func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

// entriesOn builds one entry per date. Entries are constructed directly so
// fixtures can use fixed historical dates without tripping the "not more
// than a year in the past" logging rule.
func entriesOn(t *testing.T, dates ...string) []domain.Entry {
	t.Helper()
	entries := make([]domain.Entry, 0, len(dates))
	for _, s := range dates {
		entries = append(entries, domain.Entry{
			ID:          s,
			HabitID:     "habit-1",
			CompletedOn: day(t, s),
		})
	}
	return entries
}

// checkInvariants asserts the properties that must hold for every result.
func checkInvariants(t *testing.T, r streak.Result) {
	t.Helper()
	if r.LongestStreak < r.CurrentStreak {
		t.Errorf("longest (%d) < current (%d)", r.LongestStreak, r.CurrentStreak)
	}
	if r.CompletionRate < 0 || r.CompletionRate > 1 {
		t.Errorf("completion rate %v out of [0,1]", r.CompletionRate)
	}
	if r.CurrentStreak < 0 || r.LongestStreak < 0 || r.TotalCompletions < 0 {
		t.Errorf("negative count in result: %+v", r)
	}
}

// ─── Empty input ─────────────────────────────────────────────────────────────

func TestCompute_EmptyEntries(t *testing.T) {
	today := day(t, "2025-03-10")
	r := streak.Compute(nil, domain.NewDaily(), day(t, "2025-01-01"), today)

	if r.CurrentStreak != 0 || r.LongestStreak != 0 || r.TotalCompletions != 0 {
		t.Errorf("expected zero counts, got %+v", r)
	}
	if r.LastCompleted != nil {
		t.Errorf("LastCompleted should be nil, got %v", r.LastCompleted)
	}
	if r.CompletionRate != 0 {
		t.Errorf("CompletionRate = %v, want 0", r.CompletionRate)
	}
}

// ─── Daily ───────────────────────────────────────────────────────────────────

func TestDaily_ThreeConsecutiveDays(t *testing.T) {
	// 2025-03-10 is a Monday.
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-08", "2025-03-09", "2025-03-10")

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-03-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", r.CurrentStreak)
	}
	if r.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", r.LongestStreak)
	}
	if r.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", r.TotalCompletions)
	}
	if r.LastCompleted == nil || !r.LastCompleted.Equal(today) {
		t.Errorf("LastCompleted = %v, want %v", r.LastCompleted, today)
	}
}

func TestDaily_UnloggedTodayDoesNotBreakStreak(t *testing.T) {
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-08", "2025-03-09")

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-03-01"), today)
	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (today not logged yet)", r.CurrentStreak)
	}
}

func TestDaily_GapBreaksStreak(t *testing.T) {
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-07", "2025-03-10")

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-03-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", r.CurrentStreak)
	}
	if r.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", r.LongestStreak)
	}
}

func TestDaily_DuplicateDatesCollapse(t *testing.T) {
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-10", "2025-03-10")

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-03-01"), today)
	if r.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 (duplicates are one occasion)", r.CurrentStreak)
	}
	if r.TotalCompletions != 2 {
		t.Errorf("TotalCompletions = %d, want 2 (matches raw entry count)", r.TotalCompletions)
	}
}

func TestDaily_LongestRunInThePast(t *testing.T) {
	today := day(t, "2025-03-10")
	entries := entriesOn(t,
		"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04", // old run of 4
		"2025-03-10", // fresh restart
	)

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-01-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", r.CurrentStreak)
	}
	if r.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", r.LongestStreak)
	}
}

func TestDaily_OpenStreakNotUndercounted(t *testing.T) {
	// A streak still open at the latest entry must not come out smaller
	// than the current-streak figure.
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-09", "2025-03-10")

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-03-01"), today)
	if r.CurrentStreak != 2 || r.LongestStreak != 2 {
		t.Errorf("got current=%d longest=%d, want 2/2", r.CurrentStreak, r.LongestStreak)
	}
}

// ─── Weekdays / Weekends / Custom days ───────────────────────────────────────

func TestWeekdays_StreakSpansWeekend(t *testing.T) {
	// Friday 2025-03-07 and Monday 2025-03-10 are consecutive weekdays.
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-06", "2025-03-07", "2025-03-10")

	r := streak.Compute(entries, domain.NewWeekdays(), day(t, "2025-03-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 (Thu, Fri, Mon)", r.CurrentStreak)
	}
	if r.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", r.LongestStreak)
	}
}

func TestWeekdays_AnchorOnWeekend(t *testing.T) {
	// Saturday: the most recent qualifying day is Friday.
	today := day(t, "2025-03-08")
	entries := entriesOn(t, "2025-03-06", "2025-03-07")

	r := streak.Compute(entries, domain.NewWeekdays(), day(t, "2025-03-01"), today)
	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (Thu, Fri; weekend ignored)", r.CurrentStreak)
	}
}

func TestWeekends_ConsecutiveAcrossWeeks(t *testing.T) {
	// Sat 03-01, Sun 03-02, Sat 03-08 are consecutive weekend days.
	today := day(t, "2025-03-09") // Sunday, not logged
	entries := entriesOn(t, "2025-03-01", "2025-03-02", "2025-03-08")

	r := streak.Compute(entries, domain.NewWeekends(), day(t, "2025-02-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", r.CurrentStreak)
	}
	if r.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", r.LongestStreak)
	}
}

func TestCustomDays_MonWedFri(t *testing.T) {
	freq := domain.NewCustomDays(time.Monday, time.Wednesday, time.Friday)
	today := day(t, "2025-03-10") // Monday, not logged
	entries := entriesOn(t, "2025-03-03", "2025-03-05", "2025-03-07")

	r := streak.Compute(entries, freq, day(t, "2025-03-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 (Mon, Wed, Fri)", r.CurrentStreak)
	}
}

func TestCustomDays_MissedDayBreaks(t *testing.T) {
	freq := domain.NewCustomDays(time.Monday, time.Wednesday, time.Friday)
	today := day(t, "2025-03-10")
	// Wednesday 03-05 missing.
	entries := entriesOn(t, "2025-03-03", "2025-03-07", "2025-03-10")

	r := streak.Compute(entries, freq, day(t, "2025-03-01"), today)
	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (Fri, Mon)", r.CurrentStreak)
	}
	if r.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", r.LongestStreak)
	}
}

// ─── Interval ────────────────────────────────────────────────────────────────

func TestInterval_EveryThreeDays(t *testing.T) {
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-04", "2025-03-07", "2025-03-10")

	r := streak.Compute(entries, domain.NewInterval(3), day(t, "2025-03-04"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", r.CurrentStreak)
	}
	if r.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", r.LongestStreak)
	}
}

func TestInterval_UnloggedDueDateKeepsStreak(t *testing.T) {
	// Last entry 03-07, interval 3: the next occasion is exactly today.
	// An occasion not yet logged must not break the streak.
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-04", "2025-03-07")

	r := streak.Compute(entries, domain.NewInterval(3), day(t, "2025-03-04"), today)
	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", r.CurrentStreak)
	}
}

func TestInterval_OverdueBreaksStreak(t *testing.T) {
	// Last entry 03-04, interval 3: the 03-07 occasion came and went.
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-01", "2025-03-04")

	r := streak.Compute(entries, domain.NewInterval(3), day(t, "2025-03-01"), today)
	if r.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (occasion missed)", r.CurrentStreak)
	}
	if r.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", r.LongestStreak)
	}
}

// ─── Weekly target ───────────────────────────────────────────────────────────

func TestWeekly_TwoQualifyingWeeks(t *testing.T) {
	// Week of Mon 2025-01-06 (current) and week of Mon 2024-12-30, three
	// entries each, target 3.
	today := day(t, "2025-01-10") // Friday of the current week
	entries := entriesOn(t,
		"2024-12-30", "2024-12-31", "2025-01-01",
		"2025-01-06", "2025-01-07", "2025-01-08",
	)

	r := streak.Compute(entries, domain.NewWeekly(3), day(t, "2024-12-01"), today)
	checkInvariants(t, r)

	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 qualifying weeks", r.CurrentStreak)
	}
	if r.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", r.LongestStreak)
	}
}

func TestWeekly_WeekBelowTargetBreaks(t *testing.T) {
	today := day(t, "2025-01-10")
	entries := entriesOn(t,
		"2024-12-30", "2024-12-31", // only 2 in the prior week
		"2025-01-06", "2025-01-07", "2025-01-08",
	)

	r := streak.Compute(entries, domain.NewWeekly(3), day(t, "2024-12-01"), today)
	if r.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", r.CurrentStreak)
	}
}

func TestWeekly_YearBoundaryWeeksAreConsecutive(t *testing.T) {
	// 2020 has 53 ISO weeks: W53 starts Mon 2020-12-28 and 2021-W01
	// starts Mon 2021-01-04. The two must chain as consecutive.
	today := day(t, "2021-01-08")
	entries := entriesOn(t,
		"2020-12-28", "2020-12-29", "2020-12-30",
		"2021-01-04", "2021-01-05", "2021-01-06",
	)

	r := streak.Compute(entries, domain.NewWeekly(3), day(t, "2020-12-01"), today)
	checkInvariants(t, r)

	if r.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2 (W53 and W01 consecutive)", r.LongestStreak)
	}
	if r.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", r.CurrentStreak)
	}
}

func TestWeekly_NonAdjacentQualifyingWeeks(t *testing.T) {
	// Qualifying weeks with a sub-target week between them do not chain.
	today := day(t, "2025-01-24") // Friday of the week of Mon 01-20
	entries := entriesOn(t,
		"2025-01-06", "2025-01-07", "2025-01-08",
		"2025-01-14", // lone entry in the middle week
		"2025-01-20", "2025-01-21", "2025-01-22",
	)

	r := streak.Compute(entries, domain.NewWeekly(3), day(t, "2025-01-01"), today)
	if r.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", r.LongestStreak)
	}
	if r.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", r.CurrentStreak)
	}
}

// ─── Completion rate ─────────────────────────────────────────────────────────

func TestCompletionRate_Daily(t *testing.T) {
	// Created 10 days before today: span is 11 days inclusive.
	today := day(t, "2025-03-11")
	entries := entriesOn(t, "2025-03-07", "2025-03-08", "2025-03-09", "2025-03-10", "2025-03-11")

	r := streak.Compute(entries, domain.NewDaily(), day(t, "2025-03-01"), today)
	want := 5.0 / 11.0
	if diff := r.CompletionRate - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("CompletionRate = %v, want %v", r.CompletionRate, want)
	}
}

func TestCompletionRate_CappedAtOne(t *testing.T) {
	// Weekly target of 1 with six completions in ten days: actual far
	// exceeds expected, but the rate must stay capped.
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07", "2025-03-08")

	r := streak.Compute(entries, domain.NewWeekly(1), day(t, "2025-03-01"), today)
	if r.CompletionRate != 1.0 {
		t.Errorf("CompletionRate = %v, want 1.0 (capped)", r.CompletionRate)
	}
}

// ─── Purity ──────────────────────────────────────────────────────────────────

func TestCompute_Deterministic(t *testing.T) {
	today := day(t, "2025-03-10")
	entries := entriesOn(t, "2025-03-06", "2025-03-07", "2025-03-10")
	freq := domain.NewWeekdays()
	created := day(t, "2025-03-01")

	r1 := streak.Compute(entries, freq, created, today)
	r2 := streak.Compute(entries, freq, created, today)

	if r1.CurrentStreak != r2.CurrentStreak ||
		r1.LongestStreak != r2.LongestStreak ||
		r1.TotalCompletions != r2.TotalCompletions ||
		r1.CompletionRate != r2.CompletionRate {
		t.Errorf("results differ between identical calls: %+v vs %+v", r1, r2)
	}
}
