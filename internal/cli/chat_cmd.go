package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/domain"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [ID]",
		Short: "Chat with the coach",
		Long:  "Opens the interactive coaching loop for a session. With no ID, resumes the most recently updated active session, or starts a fresh one.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("chat needs an interactive terminal; use 'stride detect' or 'stride score' for scripted checks")
			}

			ctx := context.Background()
			var session *domain.CoachSession
			var err error
			if len(args) == 1 {
				session, err = resolveSession(ctx, app, args[0])
			} else {
				session, err = latestActiveSession(ctx, app)
			}
			if err != nil {
				return err
			}

			history, err := app.Sessions.History(ctx, session.ID)
			if err != nil {
				return err
			}

			model := newChatModel(app, session, history)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// latestActiveSession picks the most recently updated active session,
// creating one when none exist. List already orders by recency.
func latestActiveSession(ctx context.Context, app *App) (*domain.CoachSession, error) {
	sessions, err := app.Sessions.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.Status == domain.SessionActive && s.State.Phase != domain.PhaseCompleted {
			return s, nil
		}
	}
	return app.Sessions.Create(ctx, "Untitled session", domain.ObjectiveContext{}, "")
}
