package scorer

import (
	"regexp"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/textscan"
)

// Vocabulary tables for the dimension sub-scorers. As with the detector,
// these are data the evaluators consult, so tuning never touches logic.

var outcomeVerbs = []string{
	"increase", "achieve", "reduce", "grow", "decrease", "improve",
	"transform", "dominate", "double", "triple", "expand", "cut",
	"boost", "accelerate", "eliminate", "win", "capture", "become",
	"raise", "lower",
}

var activityVerbs = []string{
	"launch", "build", "implement", "deploy", "write", "create", "ship",
	"develop", "release", "migrate", "set up", "install", "configure",
	"organize", "conduct", "run", "host", "publish",
}

// powerVerbs lead inspiring objectives; weakVerbs are serviceable but
// uninspiring when leading.
var powerVerbs = []string{
	"dominate", "transform", "revolutionize", "redefine", "own",
	"conquer", "disrupt", "reinvent",
}

var weakVerbs = []string{
	"improve", "increase", "enhance", "optimize", "support",
}

var maintenanceWords = []string{
	"maintain", "continue", "keep doing", "sustain", "preserve",
	"keep up", "stay the course", "carry on", "as usual",
}

var stretchWords = []string{
	"double", "triple", "10x", "transform", "dominate", "breakthrough",
	"revolutionize", "leap", "stretch", "ambitious", "record",
}

var intensityQualifiers = []string{
	"significantly", "greatly", "substantially", "better",
	"considerably", "dramatically", "a lot", "much more",
}

var metricNouns = []string{
	"users", "customers", "revenue", "churn", "retention", "conversion",
	"nps", "score", "rate", "margin", "latency", "uptime", "cost",
	"accounts", "deals", "arr", "mrr", "sales", "mau", "dau",
	"satisfaction", "pipeline", "time",
}

var reduceVerbs = []string{
	"reduce", "decrease", "cut", "lower", "shrink", "drop", "eliminate",
}

// scopeIndicators characterize the vocabulary typical of each
// organizational altitude.
var scopeIndicators = map[domain.OrgScope][]string{
	domain.ScopeStrategic: {
		"market", "industry", "company", "category", "brand", "global",
		"leader", "dominate", "transform",
	},
	domain.ScopeDepartmental: {
		"department", "org", "function", "pipeline", "portfolio",
		"headcount", "budget",
	},
	domain.ScopeTeam: {
		"team", "squad", "sprint", "velocity", "backlog", "quarter",
	},
	domain.ScopeInitiative: {
		"initiative", "program", "rollout", "campaign", "adoption",
	},
	domain.ScopeProject: {
		"project", "milestone", "deliverable", "feature", "release",
		"launch", "ship",
	},
}

var (
	fromToRe = regexp.MustCompile(`from\s+([^\s]+(?:\s*%)?)\s+to\s+([^\s]+(?:\s*%)?)`)
	byPctRe  = regexp.MustCompile(`by\s+(\d+(?:[.,]\d+)?)\s*(?:%|percent\b)`)
	xFactorRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*x\b`)

	// deadlineFullRe matches the accepted timebound vocabulary with a
	// year; deadlinePartialRe matches a quarter or month alone.
	deadlineFullRe = regexp.MustCompile(
		`by\s+(?:q[1-4]\s+\d{4}|(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}|(?:end\s+of\s+)?\d{4})`)
	deadlinePartialRe = regexp.MustCompile(
		`by\s+(?:q[1-4]|january|february|march|april|may|june|july|august|september|october|november|december|end\s+of\s+(?:the\s+)?(?:year|quarter|month))`)
)

// stripDeadline removes deadline phrases so their digits are not mistaken
// for baselines or targets.
func stripDeadline(text string) string {
	text = deadlineFullRe.ReplaceAllString(text, "")
	return deadlinePartialRe.ReplaceAllString(text, "")
}

// stretchRatio extracts the target/baseline ratio from a key result.
// reduce reports whether the KR is reduction-framed (the ratio is then
// expected below 1). ok is false when no ratio can be derived.
func stretchRatio(text string) (ratio float64, reduce bool, ok bool) {
	_, reduce = textscan.ContainsAny(text, reduceVerbs)
	stripped := stripDeadline(text)

	if m := fromToRe.FindStringSubmatch(stripped); m != nil {
		nums := textscan.Numbers(m[1] + " " + m[2])
		if len(nums) == 2 && nums[0] > 0 {
			return nums[1] / nums[0], reduce, true
		}
	}
	if m := byPctRe.FindStringSubmatch(stripped); m != nil {
		pct := textscan.Numbers(m[1])
		if len(pct) == 1 {
			if reduce {
				return 1 - pct[0]/100, true, true
			}
			return 1 + pct[0]/100, false, true
		}
	}
	if m := xFactorRe.FindStringSubmatch(stripped); m != nil {
		f := textscan.Numbers(m[1])
		if len(f) == 1 && f[0] > 0 {
			return f[0], reduce, true
		}
	}
	return 0, reduce, false
}

// hasNamedMetric reports whether the text names a measurable quantity.
func hasNamedMetric(text string) bool {
	return textscan.CountMatches(text, metricNouns) > 0
}

func containsWord(list []string, w string) bool {
	for _, v := range list {
		if v == w {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
