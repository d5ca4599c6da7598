// Package insights turns streak statistics into human-readable analysis:
// per-habit performance tiers, portfolio-wide patterns, and the short
// motivational lines shown after logging a completion.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/streak"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// Insight types.
const (
	TypeSuccess        = "success"
	TypeWarning        = "warning"
	TypeRecommendation = "recommendation"
	TypePattern        = "pattern"
)

// Insight is a single piece of analysis with a confidence score and
// optional structured data.
type Insight struct {
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Type       string         `json:"insight_type"`
	Confidence float64        `json:"confidence"`
	Data       map[string]any `json:"data,omitempty"`
}

// Report is the full insights response for one habit or the whole
// portfolio.
type Report struct {
	Insights    []Insight `json:"insights"`
	Summary     string    `json:"summary"`
	Message     string    `json:"message"`
	TimePeriod  string    `json:"time_period"`
	GeneratedAt string    `json:"generated_at"`
}

// Config holds analysis thresholds.
type Config struct {
	// MinEntriesForAnalysis is the completion count below which a habit's
	// rate is excluded from portfolio averages.
	MinEntriesForAnalysis int
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{MinEntriesForAnalysis: 5}
}

// Engine generates insights from streak statistics.
type Engine struct {
	cfg Config
}

// New creates an engine with the default configuration.
func New() *Engine {
	return WithConfig(DefaultConfig())
}

// WithConfig creates an engine with a custom configuration.
func WithConfig(cfg Config) *Engine {
	if cfg.MinEntriesForAnalysis <= 0 {
		cfg.MinEntriesForAnalysis = DefaultConfig().MinEntriesForAnalysis
	}
	return &Engine{cfg: cfg}
}

// ─── Single habit ────────────────────────────────────────────────────────────

// ForHabit analyzes one habit's streak statistics.
func (e *Engine) ForHabit(r streak.Result) []Insight {
	var insights []Insight

	switch {
	case r.CurrentStreak >= 7:
		insights = append(insights, Insight{
			Title:      "Great Consistency!",
			Message:    fmt.Sprintf("You've maintained this habit for %d days straight. That's excellent dedication!", r.CurrentStreak),
			Type:       TypeSuccess,
			Confidence: 0.9,
			Data: map[string]any{
				"current_streak":   r.CurrentStreak,
				"streak_milestone": Milestone(r.CurrentStreak),
			},
		})
	case r.CurrentStreak == 0 && r.LongestStreak > 0:
		insights = append(insights, Insight{
			Title:      "Time to Restart",
			Message:    fmt.Sprintf("You've had a %d day streak before. You can do it again! Start with just completing the habit once today.", r.LongestStreak),
			Type:       TypeRecommendation,
			Confidence: 0.8,
			Data: map[string]any{
				"longest_streak": r.LongestStreak,
				"current_streak": r.CurrentStreak,
			},
		})
	}

	switch {
	case r.CompletionRate >= 0.8:
		insights = append(insights, Insight{
			Title:      "High Performer",
			Message:    fmt.Sprintf("You're completing this habit %.0f%% of the time. This is excellent performance!", r.CompletionRate*100),
			Type:       TypeSuccess,
			Confidence: 0.9,
			Data: map[string]any{
				"completion_rate":   r.CompletionRate,
				"performance_level": "excellent",
			},
		})
	case r.CompletionRate >= 0.6:
		insights = append(insights, Insight{
			Title:      "Good Progress",
			Message:    fmt.Sprintf("You're at %.0f%% completion rate. Try to identify what helps you succeed and do more of that!", r.CompletionRate*100),
			Type:       TypeRecommendation,
			Confidence: 0.7,
			Data: map[string]any{
				"completion_rate":   r.CompletionRate,
				"performance_level": "good",
			},
		})
	case r.TotalCompletions > 0:
		insights = append(insights, Insight{
			Title:      "Room for Improvement",
			Message:    fmt.Sprintf("Your completion rate is %.0f%%. Consider setting smaller, more achievable goals to build momentum.", r.CompletionRate*100),
			Type:       TypeRecommendation,
			Confidence: 0.8,
			Data: map[string]any{
				"completion_rate":   r.CompletionRate,
				"performance_level": "needs_improvement",
			},
		})
	}

	return insights
}

// PeriodActivity reports how many completions landed inside the reporting
// window. Streak and rate describe the whole history; this is the one
// insight scoped to the requested period.
func (e *Engine) PeriodActivity(habitName string, completions int, period string) Insight {
	plural := "s"
	if completions == 1 {
		plural = ""
	}
	return Insight{
		Title:      "Recent Activity",
		Message:    fmt.Sprintf("%q has %d completion%s in the last %s.", habitName, completions, plural, period),
		Type:       TypePattern,
		Confidence: 1.0,
		Data: map[string]any{
			"completions": completions,
			"period":      period,
		},
	}
}

// ─── Portfolio ───────────────────────────────────────────────────────────────

// ForPortfolio analyzes all habits together: momentum, category spread,
// and overall performance.
func (e *Engine) ForPortfolio(habits []domain.Habit, streaks map[string]streak.Result) []Insight {
	if len(habits) == 0 {
		return []Insight{{
			Title:      "Get Started",
			Message:    "Welcome to habit tracking! Start by creating your first habit. Choose something small and achievable.",
			Type:       TypeRecommendation,
			Confidence: 1.0,
			Data:       map[string]any{"action": "create_first_habit"},
		}}
	}

	var (
		activeStreaks   int
		totalStreakDays int
		completionRates []float64
		categories      = map[string]int{}
	)
	for _, h := range habits {
		r := streaks[h.ID]
		if r.CurrentStreak > 0 {
			activeStreaks++
			totalStreakDays += r.CurrentStreak
		}
		if r.TotalCompletions >= e.cfg.MinEntriesForAnalysis {
			completionRates = append(completionRates, r.CompletionRate)
		}
		categories[h.Category]++
	}

	var insights []Insight

	if activeStreaks > 0 {
		plural := "s"
		if activeStreaks == 1 {
			plural = ""
		}
		insights = append(insights, Insight{
			Title:      "Momentum Building",
			Message:    fmt.Sprintf("You have %d active streak%s totaling %d days! This shows great consistency across your habit portfolio.", activeStreaks, plural, totalStreakDays),
			Type:       TypeSuccess,
			Confidence: 0.9,
			Data: map[string]any{
				"active_streaks":    activeStreaks,
				"total_streak_days": totalStreakDays,
				"total_habits":      len(habits),
			},
		})
	}

	if len(categories) >= 3 {
		names := make([]string, 0, len(categories))
		for c := range categories {
			names = append(names, c)
		}
		sort.Strings(names)
		insights = append(insights, Insight{
			Title:      "Well-Rounded Growth",
			Message:    fmt.Sprintf("You're working on %d different life areas: %s. This balanced approach supports overall life improvement!", len(categories), strings.Join(names, ", ")),
			Type:       TypeSuccess,
			Confidence: 0.8,
			Data:       map[string]any{"categories": categories},
		})
	} else if len(habits) > 3 {
		insights = append(insights, Insight{
			Title:      "Consider Diversifying",
			Message:    "Most of your habits are in similar categories. Try adding habits from different life areas for more balanced growth.",
			Type:       TypeRecommendation,
			Confidence: 0.7,
			Data:       map[string]any{"current_categories": categories},
		})
	}

	if len(completionRates) > 0 {
		var sum float64
		for _, r := range completionRates {
			sum += r
		}
		avg := sum / float64(len(completionRates))
		if avg >= 0.7 {
			insights = append(insights, Insight{
				Title:      "Excellent Overall Performance",
				Message:    fmt.Sprintf("Your average completion rate across all habits is %.0f%%. You're building strong, sustainable routines!", avg*100),
				Type:       TypeSuccess,
				Confidence: 0.9,
				Data:       map[string]any{"average_completion_rate": avg},
			})
		}
	}

	if len(habits) > 5 && activeStreaks < len(habits)/2 {
		insights = append(insights, Insight{
			Title:      "Focus Strategy",
			Message:    fmt.Sprintf("You have %d habits but only %d active streaks. Consider focusing on 2-3 core habits to build stronger foundations.", len(habits), activeStreaks),
			Type:       TypeRecommendation,
			Confidence: 0.8,
			Data: map[string]any{
				"total_habits":   len(habits),
				"active_streaks": activeStreaks,
			},
		})
	}

	return insights
}

// ─── Report ──────────────────────────────────────────────────────────────────

// BuildReport assembles the final response. filterType narrows the
// insights to one type; "" or "all" keeps everything.
func (e *Engine) BuildReport(insights []Insight, timePeriod, filterType string) Report {
	if timePeriod == "" {
		timePeriod = "month"
	}
	if filterType != "" && filterType != "all" {
		kept := insights[:0:0]
		for _, in := range insights {
			if in.Type == filterType {
				kept = append(kept, in)
			}
		}
		insights = kept
	}

	var summary string
	if len(insights) == 0 {
		summary = "No specific insights available yet. Keep tracking your habits to build more data!"
	} else {
		var successes, recommendations int
		for _, in := range insights {
			switch in.Type {
			case TypeSuccess:
				successes++
			case TypeRecommendation:
				recommendations++
			}
		}
		summary = fmt.Sprintf("Generated %d insights: %d successes, %d recommendations",
			len(insights), successes, recommendations)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Habit Insights Report** (%s)\n\n%s", strings.ToUpper(timePeriod), summary)
	for _, in := range insights {
		fmt.Fprintf(&b, "\n\n%s **%s**\n   %s", insightEmoji(in.Type), in.Title, in.Message)
	}

	return Report{
		Insights:    insights,
		Summary:     summary,
		Message:     b.String(),
		TimePeriod:  timePeriod,
		GeneratedAt: timeNow().UTC().Format("2006-01-02 15:04:05 UTC"),
	}
}

func insightEmoji(insightType string) string {
	switch insightType {
	case TypeSuccess:
		return "🎉"
	case TypeWarning:
		return "⚠️"
	case TypeRecommendation:
		return "💡"
	case TypePattern:
		return "📈"
	default:
		return "📊"
	}
}

// ─── Milestones ──────────────────────────────────────────────────────────────

// Milestone names the tier a streak length has reached.
func Milestone(days int) string {
	switch {
	case days >= 90:
		return "habit_master"
	case days >= 60:
		return "two_months_incredible"
	case days >= 30:
		return "one_month_amazing"
	case days >= 21:
		return "three_weeks_excellent"
	case days >= 14:
		return "two_weeks_solid"
	case days >= 7:
		return "one_week_strong"
	case days >= 1:
		return "building_momentum"
	default:
		return "just_started"
	}
}

// Motivation is the short line shown right after logging a completion.
func Motivation(currentStreak int) string {
	plural := "s"
	if currentStreak == 1 {
		plural = ""
	}
	switch {
	case currentStreak >= 30:
		return fmt.Sprintf("🔥 Incredible! %d days and counting. This habit is part of who you are now.", currentStreak)
	case currentStreak >= 7:
		return fmt.Sprintf("🔥 Logged! %d day%s straight. You're on a real roll.", currentStreak, plural)
	case currentStreak >= 2:
		return fmt.Sprintf("🔥 Logged habit completion! Current streak: %d days. Keep it going!", currentStreak)
	case currentStreak == 1:
		return "🔥 Logged habit completion! Current streak: 1 day. Great start!"
	default:
		return "✅ Logged habit completion! Every entry counts."
	}
}
