package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/store"
)

// ListTool handles the habit_list MCP tool.
type ListTool struct {
	store *store.Store
}

// NewListTool creates a ListTool with the given store.
func NewListTool(s *store.Store) *ListTool {
	return &ListTool{store: s}
}

// Definition returns the MCP tool definition for habit_list.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_list",
		mcp.WithDescription(
			"List habits with their frequency, category, and target. "+
				"Archived habits are hidden unless include_archived is set.",
		),
		mcp.WithString("category",
			mcp.Description("Only list habits in this category"),
		),
		mcp.WithBoolean("include_archived",
			mcp.Description("Include archived (soft-deleted) habits (default: false)"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Sort order: name, streak, rate, or created (default: created, newest first)"),
		),
	)
}

// Handle processes the habit_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habits, err := t.store.ListHabits(boolArg(req, "include_archived", false))
	if err != nil {
		return errText("list habits", err), nil
	}

	if categoryFilter := req.GetString("category", ""); categoryFilter != "" {
		category, err := domain.ParseCategory(categoryFilter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kept := habits[:0]
		for _, h := range habits {
			if h.Category == category {
				kept = append(kept, h)
			}
		}
		habits = kept
	}

	if len(habits) == 0 {
		return mcp.NewToolResultText("No habits found. Create your first habit to get started!"), nil
	}

	if err := t.sortHabits(habits, req.GetString("sort_by", "created")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 %d habit(s):\n", len(habits))
	for _, h := range habits {
		fmt.Fprintf(&b, "\n• %s [%s] (%s)", h.Name, h.Category, h.Frequency.Describe())
		if target := h.TargetDisplay(); target != "" {
			fmt.Fprintf(&b, " | target: %s", target)
		}
		if !h.Active {
			b.WriteString(" | archived")
		}
		fmt.Fprintf(&b, "\n  ID: %s", h.ID)
		if h.Description != "" {
			fmt.Fprintf(&b, "\n  %s", h.Description)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// sortHabits reorders habits in place. The store returns newest-first, so
// "created" is a no-op; streak and rate sort on the cached statistics.
func (t *ListTool) sortHabits(habits []domain.Habit, sortBy string) error {
	switch sortBy {
	case "created", "":
		return nil
	case "name":
		sort.Slice(habits, func(i, j int) bool {
			return strings.ToLower(habits[i].Name) < strings.ToLower(habits[j].Name)
		})
		return nil
	case "streak", "rate":
		streaks, err := t.store.AllStreaks()
		if err != nil {
			return fmt.Errorf("failed to load streaks for sorting: %v", err)
		}
		sort.SliceStable(habits, func(i, j int) bool {
			a, b := streaks[habits[i].ID], streaks[habits[j].ID]
			if sortBy == "streak" {
				return a.CurrentStreak > b.CurrentStreak
			}
			return a.CompletionRate > b.CompletionRate
		})
		return nil
	default:
		return fmt.Errorf("invalid sort_by %q (valid: name, streak, rate, created)", sortBy)
	}
}
