package cli

import (
	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/coach"
	"github.com/avelasco/stride/internal/intelligence"
)

// App carries the wired services the commands operate on.
type App struct {
	Sessions coach.SessionService
	Engine   *coach.Engine
	Coach    *intelligence.CoachService

	// IsInteractive reports whether stdout is a terminal. The chat
	// command refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd builds the stride command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "stride",
		Short:         "Conversational OKR coach",
		Long:          "Stride walks you from a vague goal to a scored objective with measurable key results, flagging common OKR anti-patterns along the way.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newNewCmd(app))
	root.AddCommand(newChatCmd(app))
	root.AddCommand(newSessionCmd(app))
	root.AddCommand(newContextCmd(app))
	root.AddCommand(newDetectCmd(app))
	root.AddCommand(newScoreCmd(app))

	return root
}
