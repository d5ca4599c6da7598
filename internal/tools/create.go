package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/store"
)

// CreateTool handles the habit_create MCP tool.
type CreateTool struct {
	store *store.Store
}

// NewCreateTool creates a CreateTool with the given store.
func NewCreateTool(s *store.Store) *CreateTool {
	return &CreateTool{store: s}
}

// Definition returns the MCP tool definition for habit_create.
func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_create",
		mcp.WithDescription(
			"Create a new habit to track. Choose a frequency that matches how often "+
				"the user actually wants to do it: daily, weekdays, weekends, weekly:N "+
				"(N times per week), custom:mon,wed,fri (specific days), or interval:N "+
				"(every N days).",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit name (e.g. 'Morning run', max 100 characters)"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category: health, productivity, social, creative, mindfulness, financial, household, personal, or custom:name"),
		),
		mcp.WithString("frequency",
			mcp.Required(),
			mcp.Description("Frequency: daily, weekdays, weekends, weekly:N, custom:mon,wed,fri, or interval:N"),
		),
		mcp.WithString("description",
			mcp.Description("Optional description (max 500 characters)"),
		),
		mcp.WithNumber("target_value",
			mcp.Description("Optional numeric target per completion (e.g. 30 for '30 minutes')"),
		),
		mcp.WithString("unit",
			mcp.Description("Unit for the target value (e.g. 'minutes', 'pages', max 20 characters)"),
		),
	)
}

// Handle processes the habit_create tool call.
func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	category := req.GetString("category", "")
	freqStr := req.GetString("frequency", "")

	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	if category == "" {
		return mcp.NewToolResultError("'category' is required"), nil
	}
	if freqStr == "" {
		return mcp.NewToolResultError("'frequency' is required"), nil
	}

	freq, err := domain.ParseFrequency(freqStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	habit, err := domain.NewHabit(
		name,
		req.GetString("description", ""),
		category,
		freq,
		intArg(req, "target_value", 0),
		req.GetString("unit", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.store.CreateHabit(habit); err != nil {
		return errText("create habit", err), nil
	}

	response := fmt.Sprintf("✅ Created habit %q (%s, %s)", habit.Name, habit.Category, habit.Frequency.Describe())
	if target := habit.TargetDisplay(); target != "" {
		response += fmt.Sprintf("\nTarget: %s per completion", target)
	}
	response += fmt.Sprintf("\nID: %s", habit.ID)

	return mcp.NewToolResultText(response), nil
}
