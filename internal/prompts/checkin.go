// Package prompts implements MCP prompt handlers for habit tracking.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// CheckinPrompt handles the habit-checkin MCP prompt.
// It walks the user through logging today's completions habit by habit.
type CheckinPrompt struct{}

// NewCheckinPrompt creates a CheckinPrompt.
func NewCheckinPrompt() *CheckinPrompt {
	return &CheckinPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *CheckinPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("habit-checkin",
		mcp.WithPromptDescription(
			"Daily habit check-in. Walks through each active habit and logs "+
				"what was completed today.",
		),
	)
}

// Handle processes the habit-checkin prompt request.
func (p *CheckinPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Daily habit check-in",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Let's do my daily habit check-in.\n\n" +
						"Please:\n" +
						"1. Run `habit_status` to see all my habits and their streaks\n" +
						"2. Go through the habits one at a time and ask me whether I did each today\n" +
						"3. For each one I completed, run `habit_log` (ask for value/intensity only if the habit has a target)\n" +
						"4. Skip the ones I didn't do, no guilt trips\n" +
						"5. Finish with a one-line summary of today's streaks",
				),
			},
		},
	}, nil
}
