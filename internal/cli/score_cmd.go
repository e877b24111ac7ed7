package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/cli/formatter"
	"github.com/avelasco/stride/internal/domain"
)

func newScoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score draft objectives and key results",
	}

	cmd.AddCommand(newScoreObjectiveCmd(app), newScoreKRCmd(app))

	return cmd
}

func newScoreObjectiveCmd(app *App) *cobra.Command {
	var industry, function, timeframe, scopeFlag string

	cmd := &cobra.Command{
		Use:   "objective TEXT...",
		Short: "Score an objective statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			octx := domain.ObjectiveContext{
				Industry:  industry,
				Function:  function,
				Timeframe: timeframe,
			}
			score := app.Engine.ScoreObjective(text, octx, domain.OrgScope(scopeFlag))
			fmt.Println(formatter.FormatQualityScore("Objective", score))
			return nil
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "", "Industry context")
	cmd.Flags().StringVar(&function, "function", "", "Business function context")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Target timeframe context")
	cmd.Flags().Var(scopeValue{&scopeFlag}, "scope", "Organizational scope")

	return cmd
}

func newScoreKRCmd(app *App) *cobra.Command {
	var objective string

	cmd := &cobra.Command{
		Use:   "kr TEXT...",
		Short: "Score a key result statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			score := app.Engine.ScoreKeyResult(text, objective)
			fmt.Println(formatter.FormatQualityScore("Key result", score))
			return nil
		},
	}

	cmd.Flags().StringVar(&objective, "objective", "", "Parent objective, used for the relevance dimension")

	return cmd
}
