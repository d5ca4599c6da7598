// Package tools provides the MCP tool handlers for habit tracking.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (store.Store, insights.Engine) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
package tools

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/store"
	"github.com/habitkit/habitkit/internal/streak"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// refreshStreak recomputes a habit's streak statistics from its entries and
// writes the result back to the cache table. Entries are the source of
// truth; the cache only exists so list operations stay cheap.
func refreshStreak(s *store.Store, h *domain.Habit) (streak.Result, error) {
	entries, err := s.EntriesForHabit(h.ID)
	if err != nil {
		return streak.Result{}, fmt.Errorf("loading entries: %w", err)
	}
	r := streak.Compute(entries, h.Frequency, domain.DateOf(h.CreatedAt), domain.Today())
	if err := s.PutStreak(h.ID, r); err != nil {
		return streak.Result{}, fmt.Errorf("caching streak: %w", err)
	}
	return r, nil
}

// errText renders a handler error, keeping the not-found case terse.
func errText(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrHabitNotFound) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}

// shortID abbreviates a habit UUID for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
