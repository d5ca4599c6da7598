package insights

import (
	"strings"
	"testing"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/streak"
)

func hasInsight(insights []Insight, title string) bool {
	for _, in := range insights {
		if in.Title == title {
			return true
		}
	}
	return false
}

// ─── Single habit ────────────────────────────────────────────────────────────

func TestForHabit_LongStreakIsSuccess(t *testing.T) {
	e := New()
	insights := e.ForHabit(streak.Result{CurrentStreak: 10, LongestStreak: 10, TotalCompletions: 10, CompletionRate: 0.9})

	if !hasInsight(insights, "Great Consistency!") {
		t.Errorf("missing consistency insight: %+v", insights)
	}
	if !hasInsight(insights, "High Performer") {
		t.Errorf("missing high performer insight: %+v", insights)
	}
	for _, in := range insights {
		if in.Confidence < 0 || in.Confidence > 1 {
			t.Errorf("confidence %v out of range", in.Confidence)
		}
	}
}

func TestForHabit_BrokenStreakSuggestsRestart(t *testing.T) {
	e := New()
	insights := e.ForHabit(streak.Result{CurrentStreak: 0, LongestStreak: 12, TotalCompletions: 15, CompletionRate: 0.5})

	if !hasInsight(insights, "Time to Restart") {
		t.Errorf("missing restart insight: %+v", insights)
	}
	if !hasInsight(insights, "Room for Improvement") {
		t.Errorf("missing improvement insight: %+v", insights)
	}
}

func TestForHabit_MidRateIsRecommendation(t *testing.T) {
	e := New()
	insights := e.ForHabit(streak.Result{CurrentStreak: 3, LongestStreak: 5, TotalCompletions: 12, CompletionRate: 0.65})

	if !hasInsight(insights, "Good Progress") {
		t.Errorf("missing good progress insight: %+v", insights)
	}
}

func TestPeriodActivity(t *testing.T) {
	e := New()

	in := e.PeriodActivity("Meditate", 5, "week")
	if in.Type != TypePattern {
		t.Errorf("Type = %q, want %q", in.Type, TypePattern)
	}
	if !strings.Contains(in.Message, `"Meditate" has 5 completions in the last week`) {
		t.Errorf("unexpected message: %s", in.Message)
	}

	if in := e.PeriodActivity("Meditate", 1, "month"); !strings.Contains(in.Message, "1 completion in the last month") {
		t.Errorf("singular form broke: %s", in.Message)
	}
}

func TestForHabit_NoDataNoInsights(t *testing.T) {
	e := New()
	if insights := e.ForHabit(streak.Result{}); len(insights) != 0 {
		t.Errorf("expected no insights for empty result, got %+v", insights)
	}
}

// ─── Portfolio ───────────────────────────────────────────────────────────────

func portfolioHabit(t *testing.T, name, category string) domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(name, "", category, domain.NewDaily(), 0, "")
	if err != nil {
		t.Fatalf("NewHabit: %v", err)
	}
	return *h
}

func TestForPortfolio_EmptySuggestsGettingStarted(t *testing.T) {
	e := New()
	insights := e.ForPortfolio(nil, nil)
	if len(insights) != 1 || insights[0].Title != "Get Started" {
		t.Errorf("got %+v", insights)
	}
}

func TestForPortfolio_ActiveStreaksAndDiversity(t *testing.T) {
	e := New()
	habits := []domain.Habit{
		portfolioHabit(t, "Run", "health"),
		portfolioHabit(t, "Read", "creative"),
		portfolioHabit(t, "Budget", "financial"),
	}
	streaks := map[string]streak.Result{
		habits[0].ID: {CurrentStreak: 5, LongestStreak: 5, TotalCompletions: 10, CompletionRate: 0.9},
		habits[1].ID: {CurrentStreak: 2, LongestStreak: 4, TotalCompletions: 8, CompletionRate: 0.8},
	}

	insights := e.ForPortfolio(habits, streaks)
	if !hasInsight(insights, "Momentum Building") {
		t.Errorf("missing momentum insight: %+v", insights)
	}
	if !hasInsight(insights, "Well-Rounded Growth") {
		t.Errorf("missing diversity insight: %+v", insights)
	}
	if !hasInsight(insights, "Excellent Overall Performance") {
		t.Errorf("missing performance insight: %+v", insights)
	}
}

func TestForPortfolio_LowRatesExcludedBelowMinEntries(t *testing.T) {
	e := WithConfig(Config{MinEntriesForAnalysis: 5})
	habits := []domain.Habit{portfolioHabit(t, "Run", "health")}
	// Only 2 completions: not enough data, so no performance insight even
	// with a perfect rate.
	streaks := map[string]streak.Result{
		habits[0].ID: {CurrentStreak: 2, LongestStreak: 2, TotalCompletions: 2, CompletionRate: 1.0},
	}

	insights := e.ForPortfolio(habits, streaks)
	if hasInsight(insights, "Excellent Overall Performance") {
		t.Errorf("performance insight should need %d entries: %+v", 5, insights)
	}
}

func TestForPortfolio_TooManyIdleHabits(t *testing.T) {
	e := New()
	var habits []domain.Habit
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		habits = append(habits, portfolioHabit(t, name, "health"))
	}
	streaks := map[string]streak.Result{
		habits[0].ID: {CurrentStreak: 3, LongestStreak: 3, TotalCompletions: 3},
	}

	insights := e.ForPortfolio(habits, streaks)
	if !hasInsight(insights, "Focus Strategy") {
		t.Errorf("missing focus insight: %+v", insights)
	}
}

// ─── Report ──────────────────────────────────────────────────────────────────

func TestBuildReport_FilterAndSummary(t *testing.T) {
	e := New()
	insights := []Insight{
		{Title: "A", Type: TypeSuccess},
		{Title: "B", Type: TypeRecommendation},
	}

	report := e.BuildReport(insights, "week", TypeSuccess)
	if len(report.Insights) != 1 || report.Insights[0].Title != "A" {
		t.Errorf("filter broke: %+v", report.Insights)
	}
	if report.TimePeriod != "week" {
		t.Errorf("TimePeriod = %q", report.TimePeriod)
	}
	if !strings.Contains(report.Message, "WEEK") {
		t.Errorf("message missing period header: %q", report.Message)
	}
}

func TestBuildReport_EmptyInsights(t *testing.T) {
	e := New()
	report := e.BuildReport(nil, "", "")
	if report.TimePeriod != "month" {
		t.Errorf("default TimePeriod = %q, want month", report.TimePeriod)
	}
	if !strings.Contains(report.Summary, "No specific insights") {
		t.Errorf("Summary = %q", report.Summary)
	}
}

// ─── Milestones and motivation ───────────────────────────────────────────────

func TestMilestone(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, "just_started"},
		{3, "building_momentum"},
		{7, "one_week_strong"},
		{15, "two_weeks_solid"},
		{25, "three_weeks_excellent"},
		{45, "one_month_amazing"},
		{75, "two_months_incredible"},
		{200, "habit_master"},
	}
	for _, c := range cases {
		if got := Milestone(c.days); got != c.want {
			t.Errorf("Milestone(%d) = %q, want %q", c.days, got, c.want)
		}
	}
}

func TestMotivation_ScalesWithStreak(t *testing.T) {
	if msg := Motivation(1); !strings.Contains(msg, "1 day") {
		t.Errorf("Motivation(1) = %q", msg)
	}
	if msg := Motivation(8); !strings.Contains(msg, "8 day") {
		t.Errorf("Motivation(8) = %q", msg)
	}
	if msg := Motivation(0); !strings.Contains(msg, "Every entry counts") {
		t.Errorf("Motivation(0) = %q", msg)
	}
}
