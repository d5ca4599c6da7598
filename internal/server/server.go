// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools that depend on them. No business logic lives
// here, only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/habitkit/habitkit/internal/config"
	"github.com/habitkit/habitkit/internal/insights"
	"github.com/habitkit/habitkit/internal/prompts"
	"github.com/habitkit/habitkit/internal/resources"
	"github.com/habitkit/habitkit/internal/store"
	"github.com/habitkit/habitkit/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all habit tools
// registered. This is the single place where all dependencies are resolved.
//
// The returned cleanup function closes the store's database connection and
// must be called on shutdown (typically via defer). It is always non-nil.
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		// A broken config file should not brick the server; fall back to
		// defaults and tell the user on stderr.
		log.Printf("WARNING: %v (using defaults)", err)
		cfg = config.Default()
	}

	st, err := store.New(store.Config{
		DataDir:       cfg.DataDir,
		MaxEntryFetch: cfg.MaxEntryFetch,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("opening habit store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Printf("WARNING: store close: %v", err)
		}
	}

	engine := insights.WithConfig(insights.Config{
		MinEntriesForAnalysis: cfg.Insights.MinEntriesForAnalysis,
	})

	s := server.NewMCPServer(
		"habitkit",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	createTool := tools.NewCreateTool(st)
	s.AddTool(createTool.Definition(), createTool.Handle)

	logTool := tools.NewLogTool(st)
	s.AddTool(logTool.Definition(), logTool.Handle)

	statusTool := tools.NewStatusTool(st)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	listTool := tools.NewListTool(st)
	s.AddTool(listTool.Definition(), listTool.Handle)

	updateTool := tools.NewUpdateTool(st)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	deleteTool := tools.NewDeleteTool(st)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	insightsTool := tools.NewInsightsTool(st, engine)
	s.AddTool(insightsTool.Definition(), insightsTool.Handle)

	// --- Register prompts ---

	checkinPrompt := prompts.NewCheckinPrompt()
	s.AddPrompt(checkinPrompt.Definition(), checkinPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(st)
	s.AddResource(resourceHandler.SummaryResource(), resourceHandler.HandleSummary)

	return s, cleanup, nil
}

// noop is the cleanup returned when initialization fails before the store
// is opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI how
// to use the habit tracker effectively.
func serverInstructions() string {
	return `You have access to HabitKit, a habit-tracking MCP server.

## WHEN TO USE HabitKit

Use these tools when the user:
- Wants to start tracking a new habit or routine
- Mentions completing a habit ("I ran today", "did my meditation")
- Asks about their streaks, consistency, or progress
- Wants advice on which habits to focus on

## Tools

- habit_create: Create a habit with a recurrence pattern
- habit_log: Record a completion (defaults to today; can backfill)
- habit_status: Streaks and completion rates, per habit or for all
- habit_list: List habits, optionally by category or including archived
- habit_update: Change name, description, frequency, target, or archive state
- habit_delete: Archive (default) or permanently delete a habit
- habit_insights: Generate analysis and recommendations

## Frequencies

Pick the pattern that matches the user's intent, not just "daily":
- daily — every day
- weekdays — Monday through Friday
- weekends — Saturday and Sunday
- weekly:N — N times per week, any days (e.g. weekly:3)
- custom:mon,wed,fri — specific weekdays
- interval:N — every N days (e.g. interval:2 for every other day)

## Important Rules

- One completion per habit per calendar day. Logging twice is an error.
- Completions can be backfilled up to one year, never into the future.
- Streaks are recomputed from entries on every log and status call, so
  backfilling repairs a streak retroactively.
- An unlogged "today" does not break a streak — the day isn't over yet.
- Prefer archiving over permanent deletion; archives keep the history.

## Conversational Tips

- After habit_log, relay the streak and the motivational line to the user.
- When a streak breaks, be supportive: mention their longest streak as
  evidence they can rebuild.
- Suggest habit_insights when the user seems curious about patterns or
  progress, not after every log.`
}
