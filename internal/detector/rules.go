package detector

import "github.com/avelasco/stride/internal/domain"

// Vocabulary tables backing the anti-pattern rules. These are data, not
// control flow: each rule evaluator consults the lists relevant to its
// family, so adding a keyword never touches detection logic.

var activityVerbs = []string{
	"launch", "build", "implement", "deploy", "write", "create", "ship",
	"develop", "release", "migrate", "set up", "install", "configure",
	"organize", "conduct", "run", "host", "publish",
}

var outcomeVerbs = []string{
	"increase", "achieve", "reduce", "grow", "decrease", "improve",
	"transform", "dominate", "double", "triple", "expand", "cut",
	"boost", "accelerate", "eliminate", "win", "capture", "become",
}

var completionWords = []string{
	"successfully", "complete", "finish", "finalize", "deliver",
	"achieve the goal", "get done", "wrap up",
}

// terminalVerbs co-occurring with "successfully" strengthen the
// binary-thinking signal.
var terminalVerbs = []string{
	"complete", "finish", "launch", "deliver", "ship", "finalize",
}

var intensityQualifiers = []string{
	"significantly", "greatly", "substantially", "better",
	"considerably", "dramatically", "a lot", "much more", "way more",
	"meaningfully",
}

var vanityMetricTerms = []string{
	"followers", "page views", "pageviews", "impressions", "downloads",
	"leads", "emails sent", "likes", "app installs", "visits",
	"social media mentions",
}

var impactTerms = []string{
	"revenue", "retention", "satisfaction", "churn", "profit",
	"conversion", "nps", "arr", "mrr", "margin", "ltv", "renewal",
}

var maintenanceWords = []string{
	"maintain", "continue", "keep doing", "sustain", "preserve",
	"keep up", "stay the course", "carry on", "as usual",
}

var stretchWords = []string{
	"double", "triple", "10x", "transform", "dominate", "breakthrough",
	"revolutionize", "leap", "stretch", "ambitious", "record",
}

// metricNouns name measurable quantities; their presence counts as a
// "named metric" for the vague-outcome rule.
var metricNouns = []string{
	"users", "customers", "revenue", "churn", "retention", "conversion",
	"nps", "score", "rate", "margin", "latency", "uptime", "cost",
	"accounts", "deals", "arr", "mrr", "sales", "mau", "dau",
}

// patternNames maps rule IDs to their human-readable names carried on
// detection results.
var patternNames = map[domain.PatternID]string{
	domain.PatternActivityFocused: "Activity-focused objective",
	domain.PatternBinaryThinking:  "Binary done/not-done framing",
	domain.PatternVagueOutcome:    "Vague outcome without a metric",
	domain.PatternVanityMetrics:   "Vanity metric without business impact",
	domain.PatternBusinessAsUsual: "Business-as-usual framing",
	domain.PatternKitchenSink:     "Unfocused multi-goal statement",
}
