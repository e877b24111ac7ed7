package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avelasco/stride/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ScoreStyle returns the style for a 0-100 quality score: green at or
// above 70, yellow from 40, red below.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return StyleGreen
	case score >= 40:
		return StyleYellow
	default:
		return StyleRed
	}
}

// ConfidenceStyle colors a 0-1 detection confidence.
func ConfidenceStyle(c float64) lipgloss.Style {
	switch {
	case c >= 0.8:
		return StyleRed
	case c >= 0.6:
		return StyleYellow
	default:
		return StyleDim
	}
}

// PhasePill returns a colored indicator for a conversation phase.
func PhasePill(p domain.Phase) string {
	switch p {
	case domain.PhaseDiscovery:
		return StyleBlue.Render("○ Discovery")
	case domain.PhaseRefinement:
		return StyleYellow.Render("◐ Refinement")
	case domain.PhaseKRDiscovery:
		return StylePurple.Render("◑ Key Results")
	case domain.PhaseValidation:
		return StyleGreen.Render("● Validation")
	case domain.PhaseCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(p))
	}
}

// StatusPill returns a colored indicator for session status.
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionActive:
		return StyleGreen.Render("● Active")
	case domain.SessionArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// Dim renders text with the dim style.
func Dim(text string) string {
	return StyleDim.Render(text)
}
