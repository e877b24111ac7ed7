package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avelasco/stride/internal/domain"
)

// FormatQualityScore renders a quality score as a boxed report: overall,
// per-dimension rows, feedback, and improvement hints.
func FormatQualityScore(title string, score domain.QualityScore) string {
	var b strings.Builder

	overall := ScoreStyle(score.Overall).Render(fmt.Sprintf("%d/100", score.Overall))
	fmt.Fprintf(&b, "Overall %s  %s\n\n", overall, Dim(fmt.Sprintf("confidence %.0f%%", score.Confidence*100)))

	dims := make([]string, 0, len(score.Dimensions))
	for d := range score.Dimensions {
		dims = append(dims, string(d))
	}
	sort.Strings(dims)

	rows := make([][]string, 0, len(dims))
	for _, d := range dims {
		v := score.Dimensions[domain.Dimension(d)]
		rows = append(rows, []string{
			strings.ReplaceAll(d, "_", " "),
			ScoreStyle(v).Render(fmt.Sprintf("%3d", v)),
			RenderProgress(float64(v)/100, 20),
		})
	}
	b.WriteString(RenderTable([]string{"DIMENSION", "SCORE", ""}, rows))

	if len(score.Feedback) > 0 {
		b.WriteString("\n")
		for _, f := range score.Feedback {
			fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render("›"), f)
		}
	}
	if len(score.Improvements) > 0 {
		b.WriteString("\n" + StyleBold.Render("Try:") + "\n")
		for _, imp := range score.Improvements {
			fmt.Fprintf(&b, "  - %s\n", imp)
		}
	}

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
