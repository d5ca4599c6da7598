package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/insights"
	"github.com/habitkit/habitkit/internal/store"
)

// LogTool handles the habit_log MCP tool.
type LogTool struct {
	store *store.Store
}

// NewLogTool creates a LogTool with the given store.
func NewLogTool(s *store.Store) *LogTool {
	return &LogTool{store: s}
}

// Definition returns the MCP tool definition for habit_log.
func (t *LogTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_log",
		mcp.WithDescription(
			"Log a habit completion. Defaults to today; pass a date to backfill. "+
				"Each habit can be logged once per calendar day. The habit's streak "+
				"is recomputed from all entries after logging.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit to log"),
		),
		mcp.WithString("date",
			mcp.Description("Completion date as YYYY-MM-DD (default: today; not in the future, max 1 year back)"),
		),
		mcp.WithNumber("value",
			mcp.Description("Optional measured value (e.g. 35 for '35 minutes')"),
		),
		mcp.WithNumber("intensity",
			mcp.Description("Optional effort rating from 1 to 10"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes (max 500 characters)"),
		),
	)
}

// Handle processes the habit_log tool call.
func (t *LogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return errText("log habit", err), nil
	}

	completedOn := domain.Today()
	if dateStr := req.GetString("date", ""); dateStr != "" {
		d, err := domain.ParseDate(dateStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", dateStr)), nil
		}
		completedOn = d
	}

	entry, err := domain.NewEntry(
		habit.ID,
		completedOn,
		intArg(req, "value", 0),
		intArg(req, "intensity", 0),
		req.GetString("notes", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.store.CreateEntry(entry); err != nil {
		if errors.Is(err, store.ErrDuplicateEntry) {
			return mcp.NewToolResultError(fmt.Sprintf("%q is already logged for %s", habit.Name, completedOn.Format(domain.DateLayout))), nil
		}
		return errText("log habit", err), nil
	}

	result, err := refreshStreak(t.store, habit)
	if err != nil {
		return errText("update streak", err), nil
	}

	response := insights.Motivation(result.CurrentStreak)
	response += fmt.Sprintf("\n%s on %s", habit.Name, completedOn.Format(domain.DateLayout))
	if entry.Value > 0 {
		response += fmt.Sprintf(" | value: %d", entry.Value)
		if habit.Unit != "" {
			response += " " + habit.Unit
		}
	}
	if entry.Intensity > 0 {
		response += fmt.Sprintf(" | intensity: %d/10", entry.Intensity)
	}
	response += fmt.Sprintf("\nCurrent streak: %d | Best: %d | Total completions: %d",
		result.CurrentStreak, result.LongestStreak, result.TotalCompletions)

	return mcp.NewToolResultText(response), nil
}
