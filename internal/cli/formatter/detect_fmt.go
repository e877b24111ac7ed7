package formatter

import (
	"fmt"
	"strings"

	"github.com/avelasco/stride/internal/domain"
)

// FormatDetection renders a pattern detection report. A clean result
// gets a single green line; otherwise each pattern is listed with its
// confidence and the dominant pattern's reframing strategy follows.
func FormatDetection(result domain.DetectionResult) string {
	if !result.Detected {
		return StyleGreen.Render("✔ No anti-patterns detected.")
	}

	var b strings.Builder
	rows := make([][]string, 0, len(result.Patterns))
	for _, p := range result.Patterns {
		rows = append(rows, []string{
			p.Name,
			ConfidenceStyle(p.Confidence).Render(fmt.Sprintf("%.0f%%", p.Confidence*100)),
		})
	}
	b.WriteString(RenderTable([]string{"ANTI-PATTERN", "CONFIDENCE"}, rows))

	if r := result.Reframing; r != nil {
		if dom := result.Dominant(); dom != nil {
			fmt.Fprintf(&b, "\n%s\n", StyleBold.Render("Reframing "+dom.Name))
		}
		for _, q := range r.Questions {
			fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render("?"), q)
		}
		for _, ex := range r.Examples {
			fmt.Fprintf(&b, "\n  %s %s\n  %s %s\n",
				StyleRed.Render("before:"), ex.Before,
				StyleGreen.Render("after: "), ex.After)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
