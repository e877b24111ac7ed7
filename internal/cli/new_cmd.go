package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/cli/formatter"
	"github.com/avelasco/stride/internal/domain"
)

func newNewCmd(app *App) *cobra.Command {
	var title, industry, function, timeframe, scopeFlag string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new coaching session",
		Long:  "Creates a session and collects optional context (industry, function, timeframe, scope) that anchors scoring. Run with flags for scripted use, or without for an interactive form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			octx := domain.ObjectiveContext{
				Industry:  industry,
				Function:  function,
				Timeframe: timeframe,
			}
			scope := scopeFlag

			// Interactive form only when no flags were given and we
			// have a terminal to draw on.
			if title == "" && octx == (domain.ObjectiveContext{}) && scope == "" && app.IsInteractive() {
				if err := contextForm(&title, &octx, &scope).Run(); err != nil {
					return err
				}
			}
			if title == "" {
				title = "Untitled session"
			}

			session, err := app.Sessions.Create(context.Background(), title, octx, domain.OrgScope(scope))
			if err != nil {
				return err
			}

			fmt.Printf("Created session %s (%s)\n", formatter.StyleBold.Render(session.Title), formatter.TruncID(session.ID))
			fmt.Printf("Start coaching with: %s\n", formatter.StyleGreen.Render("stride chat "+formatter.TruncID(session.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Session title")
	cmd.Flags().StringVar(&industry, "industry", "", "Industry the objective lives in")
	cmd.Flags().StringVar(&function, "function", "", "Business function (engineering, sales, ...)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Target timeframe, e.g. Q4 2026")
	cmd.Flags().Var(scopeValue{&scopeFlag}, "scope", "Organizational scope (strategic|departmental|team|initiative|project)")

	return cmd
}
