package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelasco/stride/internal/cli/formatter"
	"github.com/avelasco/stride/internal/domain"
)

func strideHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func scopeOptions() []huh.Option[string] {
	scopes := []domain.OrgScope{
		domain.ScopeStrategic,
		domain.ScopeDepartmental,
		domain.ScopeTeam,
		domain.ScopeInitiative,
		domain.ScopeProject,
	}
	opts := make([]huh.Option[string], 0, len(scopes)+1)
	opts = append(opts, huh.NewOption("(decide later)", ""))
	for _, s := range scopes {
		opts = append(opts, huh.NewOption(string(s), string(s)))
	}
	return opts
}

// contextForm collects the objective context fields that anchor scoring
// and scope detection. All fields are optional.
func contextForm(title *string, octx *domain.ObjectiveContext, scope *string) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Session title").
				Placeholder("Q4 team objectives").
				Value(title),
			huh.NewInput().
				Title("Industry").
				Placeholder("saas").
				Value(&octx.Industry),
			huh.NewInput().
				Title("Function").
				Placeholder("engineering").
				Value(&octx.Function),
			huh.NewInput().
				Title("Timeframe").
				Placeholder("Q4 2026").
				Value(&octx.Timeframe),
			huh.NewSelect[string]().
				Title("Scope").
				Options(scopeOptions()...).
				Value(scope),
		),
	}
	return huh.NewForm(groups...).WithTheme(strideHuhTheme()).WithShowHelp(false)
}
