package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/store"
	"github.com/habitkit/habitkit/internal/streak"
)

// StatusTool handles the habit_status MCP tool.
type StatusTool struct {
	store *store.Store
}

// NewStatusTool creates a StatusTool with the given store.
func NewStatusTool(s *store.Store) *StatusTool {
	return &StatusTool{store: s}
}

// Definition returns the MCP tool definition for habit_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_status",
		mcp.WithDescription(
			"Check streaks and completion rates. Pass a habit_id for one habit, "+
				"or omit it for a status overview of all active habits. Statistics "+
				"are recomputed from entries on every call.",
		),
		mcp.WithString("habit_id",
			mcp.Description("ID of a specific habit (default: all active habits)"),
		),
	)
}

// Handle processes the habit_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if habitID := req.GetString("habit_id", ""); habitID != "" {
		habit, err := t.store.GetHabit(habitID)
		if err != nil {
			return errText("get status", err), nil
		}
		result, err := refreshStreak(t.store, habit)
		if err != nil {
			return errText("get status", err), nil
		}
		return mcp.NewToolResultText(formatStatus(habit, result)), nil
	}

	habits, err := t.store.ListHabits(false)
	if err != nil {
		return errText("get status", err), nil
	}
	if len(habits) == 0 {
		return mcp.NewToolResultText("No habits found. Create your first habit to get started!"), nil
	}

	var (
		b           strings.Builder
		activeCount int
		totalDays   int
	)
	sections := make([]string, 0, len(habits))
	for i := range habits {
		result, err := refreshStreak(t.store, &habits[i])
		if err != nil {
			return errText("get status", err), nil
		}
		if result.CurrentStreak > 0 {
			activeCount++
			totalDays += result.CurrentStreak
		}
		sections = append(sections, formatStatus(&habits[i], result))
	}

	fmt.Fprintf(&b, "📊 Status: %d of %d habits with an active streak. Total streak days: %d\n\n",
		activeCount, len(habits), totalDays)
	b.WriteString(strings.Join(sections, "\n\n"))

	return mcp.NewToolResultText(b.String()), nil
}

func formatStatus(h *domain.Habit, r streak.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 %s (%s)\n   %s | Current streak: %d | Best: %d | Rate: %.1f%%",
		h.Name, shortID(h.ID), h.Frequency.Describe(),
		r.CurrentStreak, r.LongestStreak, r.CompletionRate*100)
	if r.LastCompleted != nil {
		fmt.Fprintf(&b, "\n   Last completed: %s", r.LastCompleted.Format(domain.DateLayout))
	}
	fmt.Fprintf(&b, "\n   %s", trackStatus(h, r))
	return b.String()
}

// trackStatus renders the on-track line: done today, still due today, coasting
// on an off-schedule day, or no active streak.
func trackStatus(h *domain.Habit, r streak.Result) string {
	today := domain.Today()
	switch {
	case r.LastCompleted != nil && r.LastCompleted.Equal(today):
		return "✅ Done today"
	case r.CurrentStreak > 0 && h.Frequency.ScheduledOn(today):
		return "⏳ On track, due today"
	case r.CurrentStreak > 0:
		return "✅ On track"
	default:
		return "💤 No active streak"
	}
}
