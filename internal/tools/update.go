package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/store"
)

// UpdateTool handles the habit_update MCP tool.
type UpdateTool struct {
	store *store.Store
}

// NewUpdateTool creates an UpdateTool with the given store.
func NewUpdateTool(s *store.Store) *UpdateTool {
	return &UpdateTool{store: s}
}

// Definition returns the MCP tool definition for habit_update.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_update",
		mcp.WithDescription(
			"Update a habit's name, description, frequency, target, or active "+
				"state. Only the fields provided are changed. Changing frequency "+
				"recomputes the streak under the new pattern.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit to update"),
		),
		mcp.WithString("name",
			mcp.Description("New habit name"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("frequency",
			mcp.Description("New frequency: daily, weekdays, weekends, weekly:N, custom:mon,wed,fri, or interval:N"),
		),
		mcp.WithNumber("target_value",
			mcp.Description("New numeric target (0 clears it)"),
		),
		mcp.WithString("unit",
			mcp.Description("New unit for the target value"),
		),
		mcp.WithBoolean("active",
			mcp.Description("Set false to archive, true to unarchive"),
		),
	)
}

// Handle processes the habit_update tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return errText("update habit", err), nil
	}

	var update domain.HabitUpdate
	args := req.GetArguments()

	if _, ok := args["name"]; ok {
		name := req.GetString("name", "")
		update.Name = &name
	}
	if _, ok := args["description"]; ok {
		desc := req.GetString("description", "")
		update.Description = &desc
	}
	if freqStr := req.GetString("frequency", ""); freqStr != "" {
		freq, err := domain.ParseFrequency(freqStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		update.Frequency = &freq
	}
	if _, ok := args["target_value"]; ok {
		target := intArg(req, "target_value", 0)
		update.TargetValue = &target
	}
	if _, ok := args["unit"]; ok {
		unit := req.GetString("unit", "")
		update.Unit = &unit
	}
	if _, ok := args["active"]; ok {
		active := boolArg(req, "active", true)
		update.Active = &active
	}

	if err := habit.Apply(update); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.store.UpdateHabit(habit); err != nil {
		return errText("update habit", err), nil
	}

	// The cached statistics are stale if the frequency changed.
	result, err := refreshStreak(t.store, habit)
	if err != nil {
		return errText("update habit", err), nil
	}

	response := fmt.Sprintf("✅ Updated habit %q (%s, %s)", habit.Name, habit.Category, habit.Frequency.Describe())
	if update.Frequency != nil {
		response += fmt.Sprintf("\nStreak under new frequency: current %d, best %d",
			result.CurrentStreak, result.LongestStreak)
	}
	if !habit.Active {
		response += "\nStatus: archived"
	}

	return mcp.NewToolResultText(response), nil
}
