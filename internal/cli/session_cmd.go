package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/cli/formatter"
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/intelligence"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage coaching sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionHistoryCmd(app),
		newSessionArchiveCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List coaching sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(context.Background(), includeArchived)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSessionList(sessions))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived sessions")

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a session with its draft, scores, and checkpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			checkpoints, err := app.Sessions.Checkpoints(ctx, session.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSessionDetail(session, checkpoints))

			if summary {
				text := intelligence.FallbackSummary(session)
				if app.Coach != nil {
					text, err = app.Coach.Summarize(ctx, session)
					if err != nil {
						return err
					}
				}
				fmt.Println("\n" + text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Append a closing summary of the drafted OKR")

	return cmd
}

func newSessionHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Print the conversation transcript for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			messages, err := app.Sessions.History(ctx, session.ID)
			if err != nil {
				return err
			}
			if len(messages) == 0 {
				fmt.Println("No messages yet.")
				return nil
			}
			for _, m := range messages {
				label := formatter.StyleBlue.Render("you  ")
				if m.Role == domain.RoleAssistant {
					label = formatter.StyleGreen.Render("coach")
				}
				fmt.Printf("%s %s  %s\n%s\n\n",
					label,
					formatter.PhasePill(m.Phase),
					formatter.Dim(formatter.HumanTimestamp(m.CreatedAt)),
					m.Content)
			}
			return nil
		},
	}
}

func newSessionArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Archive(ctx, session.ID); err != nil {
				return err
			}
			fmt.Printf("Archived session %s\n", formatter.TruncID(session.ID))
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete a session and its transcript",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Delete(ctx, session.ID); err != nil {
				return err
			}
			fmt.Printf("Removed session %s\n", formatter.TruncID(session.ID))
			return nil
		},
	}
}

// resolveSession accepts a full session ID or a unique prefix, as printed
// by the list command.
func resolveSession(ctx context.Context, app *App, ref string) (*domain.CoachSession, error) {
	if s, err := app.Sessions.GetByID(ctx, ref); err == nil {
		return s, nil
	}

	sessions, err := app.Sessions.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var match *domain.CoachSession
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("session reference %q is ambiguous", ref)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no session matching %q", ref)
	}
	return match, nil
}
