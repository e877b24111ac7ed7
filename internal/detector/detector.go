// Package detector scans free-text goal statements for known OKR
// anti-patterns. Detection is pure and total: any string input, including
// empty text, emoji, or non-English prose, yields a well-formed result.
package detector

import (
	"strings"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/textscan"
)

// Detector evaluates the fixed anti-pattern rule catalog against text.
// The zero cost of construction is intentional: rule tables are package
// data and the Detector holds no per-call state.
type Detector struct {
	rules []rule
}

// rule is one anti-pattern family. evaluate returns a confidence in
// (0,1] when the pattern fires, or 0 when it does not.
type rule struct {
	id       domain.PatternID
	evaluate func(text string) float64
}

// New creates a Detector with the full rule catalog in detection order.
func New() *Detector {
	return &Detector{
		rules: []rule{
			{domain.PatternActivityFocused, evalActivityFocused},
			{domain.PatternBinaryThinking, evalBinaryThinking},
			{domain.PatternVagueOutcome, evalVagueOutcome},
			{domain.PatternVanityMetrics, evalVanityMetrics},
			{domain.PatternBusinessAsUsual, evalBusinessAsUsual},
			{domain.PatternKitchenSink, evalKitchenSink},
		},
	}
}

// Detect scans text against every rule family. All firing patterns are
// returned in detection order; the result confidence is the maximum of
// the pattern confidences.
func (d *Detector) Detect(text string) domain.DetectionResult {
	norm := textscan.Normalize(text)
	if norm == "" {
		return domain.DetectionResult{}
	}

	var result domain.DetectionResult
	for _, r := range d.rules {
		conf := r.evaluate(norm)
		if conf <= 0 {
			continue
		}
		if conf > 1 {
			conf = 1
		}
		result.Patterns = append(result.Patterns, domain.Pattern{
			ID:         r.id,
			Name:       patternNames[r.id],
			Confidence: conf,
		})
		if conf > result.Confidence {
			result.Confidence = conf
		}
	}

	if len(result.Patterns) == 0 {
		return result
	}
	result.Detected = true
	result.Reframing = buildReframing(result)
	return result
}

func evalActivityFocused(text string) float64 {
	hits := textscan.CountMatches(text, activityVerbs)
	if hits == 0 {
		return 0
	}

	// Outcome language paired with a concrete number means the activity
	// verb is serving a measurable goal; not an anti-pattern.
	if _, hasOutcome := textscan.ContainsAny(text, outcomeVerbs); hasOutcome {
		if textscan.HasNumber(text) {
			return 0
		}
		// Outcome verb present but unquantified: weak signal only.
		return 0.3
	}

	conf := 0.5
	if leading := textscan.LeadingWord(text); containsString(activityVerbs, leading) {
		conf += 0.25
	}
	if hits >= 2 {
		conf += 0.15
	}
	return conf
}

func evalBinaryThinking(text string) float64 {
	hit, ok := textscan.ContainsAny(text, completionWords)
	if !ok {
		return 0
	}
	// A continuous qualifier (number, percent, or named metric) makes the
	// goal measurable rather than done/not-done.
	if textscan.HasPercent(text) || textscan.HasNumber(text) ||
		textscan.CountMatches(text, metricNouns) > 0 {
		return 0
	}

	conf := 0.55
	if hit == "successfully" || textscan.ContainsPhrase(text, "successfully") {
		if textscan.CountMatches(text, terminalVerbs) > 0 {
			conf += 0.3
		} else {
			conf += 0.1
		}
	}
	return conf
}

func evalVagueOutcome(text string) float64 {
	hits := textscan.CountMatches(text, intensityQualifiers)
	if hits == 0 {
		return 0
	}
	if textscan.HasPercent(text) || textscan.HasNumber(text) ||
		textscan.CountMatches(text, metricNouns) > 0 {
		return 0
	}
	conf := 0.6
	if hits >= 2 {
		conf += 0.2
	}
	return conf
}

func evalVanityMetrics(text string) float64 {
	hits := textscan.CountMatches(text, vanityMetricTerms)
	if hits == 0 {
		return 0
	}
	if textscan.CountMatches(text, impactTerms) > 0 {
		return 0
	}
	conf := 0.65
	if hits >= 2 {
		conf += 0.15
	}
	return conf
}

func evalBusinessAsUsual(text string) float64 {
	hits := textscan.CountMatches(text, maintenanceWords)
	if hits == 0 {
		return 0
	}
	if textscan.CountMatches(text, stretchWords) > 0 {
		return 0
	}
	conf := 0.6
	if hits >= 2 {
		conf += 0.15
	}
	return conf
}

// evalKitchenSink fires when the statement strings together three or more
// distinct goal clauses. Clauses are split on commas, semicolons, and
// "and"; only segments containing a verb from the known vocabularies
// count.
func evalKitchenSink(text string) float64 {
	segments := splitClauses(text)
	clauses := 0
	for _, seg := range segments {
		if textscan.CountMatches(seg, activityVerbs) > 0 ||
			textscan.CountMatches(seg, outcomeVerbs) > 0 {
			clauses++
		}
	}
	if clauses < 3 {
		return 0
	}
	conf := 0.6 + 0.1*float64(clauses-3)
	if conf > 0.9 {
		conf = 0.9
	}
	return conf
}

func splitClauses(text string) []string {
	replaced := strings.NewReplacer(";", ",", " and ", ",").Replace(text)
	parts := strings.Split(replaced, ",")
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
