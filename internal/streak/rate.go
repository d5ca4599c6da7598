package streak

import (
	"time"

	"github.com/habitkit/habitkit/internal/domain"
)

// completionRate divides actual completions by the completions the
// frequency expects since the habit was created, capped at 1.0. The
// creation day itself counts as one elapsed day.
func completionRate(total int, freq domain.Frequency, createdOn, today time.Time) float64 {
	if total == 0 {
		return 0
	}

	spanDays := daysBetween(createdOn, today) + 1
	expected := freq.ExpectedOccurrences(spanDays)
	if expected <= 0 {
		return 0
	}

	rate := float64(total) / expected
	if rate > 1 {
		return 1
	}
	return rate
}

// daysBetween returns the whole calendar days from a to b. Both arguments
// are normalized dates, so the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
