package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelasco/stride/internal/cli/formatter"
)

func newDetectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detect TEXT...",
		Short: "Check a statement for OKR anti-patterns",
		Long:  "Runs the anti-pattern detector on a statement without touching any session. Useful for a quick sanity check on a draft objective or key result.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			result := app.Engine.Detect(text)
			fmt.Println(formatter.FormatDetection(result))
			return nil
		},
	}
}
