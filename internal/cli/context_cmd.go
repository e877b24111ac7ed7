package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/cli/formatter"
	"github.com/avelasco/stride/internal/domain"
)

func newContextCmd(app *App) *cobra.Command {
	var industry, function, timeframe, scopeFlag string

	cmd := &cobra.Command{
		Use:   "context ID",
		Short: "View or edit a session's objective context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}

			title := session.Title
			octx := session.Context
			scope := string(session.Scope)

			flagged := cmd.Flags().Changed("industry") || cmd.Flags().Changed("function") ||
				cmd.Flags().Changed("timeframe") || cmd.Flags().Changed("scope")
			switch {
			case flagged:
				if cmd.Flags().Changed("industry") {
					octx.Industry = industry
				}
				if cmd.Flags().Changed("function") {
					octx.Function = function
				}
				if cmd.Flags().Changed("timeframe") {
					octx.Timeframe = timeframe
				}
				if cmd.Flags().Changed("scope") {
					scope = scopeFlag
				}
			case app.IsInteractive():
				if err := contextForm(&title, &octx, &scope).Run(); err != nil {
					return err
				}
			default:
				// No flags, no terminal: just print the current context.
				fmt.Println(formatter.FormatSessionDetail(session, nil))
				return nil
			}

			updated, err := app.Sessions.UpdateContext(ctx, session.ID, title, octx, domain.OrgScope(scope))
			if err != nil {
				return err
			}
			fmt.Printf("Updated context for session %s\n", formatter.TruncID(updated.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "", "Industry the objective lives in")
	cmd.Flags().StringVar(&function, "function", "", "Business function")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Target timeframe")
	cmd.Flags().Var(scopeValue{&scopeFlag}, "scope", "Organizational scope")

	return cmd
}
