// Package resources implements MCP resource handlers for habit data.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (habitkit://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/store"
	"github.com/habitkit/habitkit/internal/streak"
)

// Handler manages habit resource endpoints.
type Handler struct {
	store *store.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// SummaryResource returns the MCP resource definition for the habit summary.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		"habitkit://habits/summary",
		"Habit Summary",
		mcp.WithResourceDescription("All active habits with their cached streak statistics"),
		mcp.WithMIMEType("application/json"),
	)
}

// habitSummary is the wire shape of one habit in the summary resource.
type habitSummary struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Frequency string        `json:"frequency"`
	Target    string        `json:"target,omitempty"`
	Streak    streak.Result `json:"streak"`
}

// HandleSummary returns all active habits and their streaks as JSON.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	habits, err := h.store.ListHabits(false)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	streaks, err := h.store.AllStreaks()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	summaries := make([]habitSummary, 0, len(habits))
	for _, habit := range habits {
		summaries = append(summaries, habitSummary{
			ID:        habit.ID,
			Name:      habit.Name,
			Category:  habit.Category,
			Frequency: habit.Frequency.Describe(),
			Target:    habit.TargetDisplay(),
			Streak:    streaks[habit.ID],
		})
	}

	data, err := json.MarshalIndent(struct {
		Habits []habitSummary `json:"habits"`
		AsOf   string         `json:"as_of"`
	}{summaries, domain.Today().Format(domain.DateLayout)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
