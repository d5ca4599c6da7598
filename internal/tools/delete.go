package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/store"
)

// DeleteTool handles the habit_delete MCP tool.
type DeleteTool struct {
	store *store.Store
}

// NewDeleteTool creates a DeleteTool with the given store.
func NewDeleteTool(s *store.Store) *DeleteTool {
	return &DeleteTool{store: s}
}

// Definition returns the MCP tool definition for habit_delete.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_delete",
		mcp.WithDescription(
			"Archive a habit (default) or permanently delete it. Archiving keeps "+
				"all entries and streak history; permanent deletion removes them too.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit to delete"),
		),
		mcp.WithBoolean("permanent",
			mcp.Description("Permanently delete the habit and its entries (default: false, archive only)"),
		),
	)
}

// Handle processes the habit_delete tool call.
func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return errText("delete habit", err), nil
	}

	if boolArg(req, "permanent", false) {
		if err := t.store.DeleteHabit(habit.ID); err != nil {
			return errText("delete habit", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("🗑️ Permanently deleted %q and all its entries.", habit.Name)), nil
	}

	if err := t.store.ArchiveHabit(habit.ID); err != nil {
		return errText("archive habit", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"📦 Archived %q. Its history is kept; unarchive with habit_update (active: true).", habit.Name)), nil
}
