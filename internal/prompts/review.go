package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the habit-review MCP prompt.
// It produces a periodic review with insights and concrete adjustments.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("habit-review",
		mcp.WithPromptDescription(
			"Periodic habit review. Analyzes streaks and completion rates, then "+
				"suggests which habits to adjust, archive, or double down on.",
		),
		mcp.WithArgument("time_period",
			mcp.ArgumentDescription("Review window: week, month, quarter, or year (default: week)"),
		),
	)
}

// Handle processes the habit-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	period := "week"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["time_period"]; ok && v != "" {
			period = v
		}
	}

	return &mcp.GetPromptResult{
		Description: "Habit review (" + period + ")",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Let's review my habits for the past " + period + ".\n\n" +
						"Please:\n" +
						"1. Run `habit_insights` with time_period='" + period + "'\n" +
						"2. Run `habit_status` for the raw streak numbers\n" +
						"3. Tell me: what's working, what's slipping, and why\n" +
						"4. Suggest at most two concrete changes (e.g. lower a weekly target with " +
						"`habit_update`, or archive a habit I've clearly abandoned with `habit_delete`)\n" +
						"5. Ask before applying any change",
				),
			},
		},
	}, nil
}
