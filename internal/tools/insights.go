package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/insights"
	"github.com/habitkit/habitkit/internal/store"
	"github.com/habitkit/habitkit/internal/streak"
)

// InsightsTool handles the habit_insights MCP tool.
type InsightsTool struct {
	store  *store.Store
	engine *insights.Engine
}

// NewInsightsTool creates an InsightsTool with the given store and engine.
func NewInsightsTool(s *store.Store, engine *insights.Engine) *InsightsTool {
	return &InsightsTool{store: s, engine: engine}
}

// Definition returns the MCP tool definition for habit_insights.
func (t *InsightsTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_insights",
		mcp.WithDescription(
			"Generate insights and recommendations from habit data. Pass a "+
				"habit_id for a single-habit analysis, or omit it for a portfolio "+
				"report across all active habits.",
		),
		mcp.WithString("habit_id",
			mcp.Description("ID of a specific habit (default: analyze all habits)"),
		),
		mcp.WithString("time_period",
			mcp.Description("Label for the report: week, month, quarter, or year (default: month)"),
		),
		mcp.WithString("insight_type",
			mcp.Description("Filter: success, warning, recommendation, or pattern (default: all)"),
		),
	)
}

// Handle processes the habit_insights tool call.
func (t *InsightsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timePeriod := req.GetString("time_period", "month")
	insightType := req.GetString("insight_type", "all")

	var generated []insights.Insight

	if habitID := req.GetString("habit_id", ""); habitID != "" {
		habit, err := t.store.GetHabit(habitID)
		if err != nil {
			return errText("generate insights", err), nil
		}
		result, err := refreshStreak(t.store, habit)
		if err != nil {
			return errText("generate insights", err), nil
		}
		generated = t.engine.ForHabit(result)

		// Scope recent activity to the requested window.
		today := domain.Today()
		recent, err := t.store.EntriesBetween(habit.ID, periodStart(timePeriod, today), today)
		if err != nil {
			return errText("generate insights", err), nil
		}
		generated = append(generated, t.engine.PeriodActivity(habit.Name, len(recent), timePeriod))
	} else {
		habits, err := t.store.ListHabits(false)
		if err != nil {
			return errText("generate insights", err), nil
		}
		streaks := make(map[string]streak.Result, len(habits))
		for i := range habits {
			result, err := refreshStreak(t.store, &habits[i])
			if err != nil {
				return errText("generate insights", err), nil
			}
			streaks[habits[i].ID] = result
		}
		generated = t.engine.ForPortfolio(habits, streaks)
	}

	report := t.engine.BuildReport(generated, timePeriod, insightType)
	return mcp.NewToolResultText(report.Message), nil
}

// periodDays maps a report window label to its calendar length.
var periodDays = map[string]int{
	"week":    7,
	"month":   30,
	"quarter": 90,
	"year":    365,
}

// periodStart returns the first day of the reporting window ending today.
// Unknown labels fall back to a month.
func periodStart(period string, today time.Time) time.Time {
	days, ok := periodDays[period]
	if !ok {
		days = periodDays["month"]
	}
	return today.AddDate(0, 0, -(days - 1))
}
