package detector

import "github.com/avelasco/stride/internal/domain"

// reframeBank holds the clarifying questions and before/after examples
// per pattern family. The strategy for a detection is built from the
// dominant (highest-confidence) pattern.
var reframeBank = map[domain.PatternID]domain.ReframingStrategy{
	domain.PatternActivityFocused: {
		Questions: []string{
			"What outcome would completing this activity produce?",
			"If this shipped tomorrow, what would be different for your customers?",
			"How would you know the work mattered, beyond it being done?",
		},
		Examples: []domain.ReframeExample{
			{
				Before: "Launch the new mobile app",
				After:  "Make mobile our fastest-growing acquisition channel",
			},
			{
				Before: "Implement the new CRM",
				After:  "Cut average deal cycle time from 45 to 30 days",
			},
		},
	},
	domain.PatternBinaryThinking: {
		Questions: []string{
			"What does partial progress look like here?",
			"Which number moves if this succeeds, and by how much?",
		},
		Examples: []domain.ReframeExample{
			{
				Before: "Successfully complete the migration",
				After:  "Migrate 95% of traffic with zero customer-facing downtime",
			},
		},
	},
	domain.PatternVagueOutcome: {
		Questions: []string{
			"Which specific metric captures \"better\" for you?",
			"What is the current baseline, and where should it land?",
		},
		Examples: []domain.ReframeExample{
			{
				Before: "Significantly improve customer experience",
				After:  "Raise NPS from 32 to 50",
			},
		},
	},
	domain.PatternVanityMetrics: {
		Questions: []string{
			"What business result should that audience growth drive?",
			"If this metric doubled but revenue stayed flat, would you be happy?",
		},
		Examples: []domain.ReframeExample{
			{
				Before: "Grow to 100K followers",
				After:  "Generate 20% of new pipeline from organic social",
			},
		},
	},
	domain.PatternBusinessAsUsual: {
		Questions: []string{
			"What would a step change, not a continuation, look like?",
			"Where is the status quo most at risk of falling behind?",
		},
		Examples: []domain.ReframeExample{
			{
				Before: "Maintain our support quality",
				After:  "Cut median first-response time in half while CSAT stays above 4.5",
			},
		},
	},
	domain.PatternKitchenSink: {
		Questions: []string{
			"If you could only achieve one of these, which matters most?",
			"Which of these goals would you defend in front of the whole company?",
		},
		Examples: []domain.ReframeExample{
			{
				Before: "Grow revenue, launch the app, hire a team, and improve retention",
				After:  "Make expansion revenue our primary growth engine",
			},
		},
	},
}

// buildReframing selects the question bank for the dominant pattern.
// Callers guarantee at least one pattern fired.
func buildReframing(result domain.DetectionResult) *domain.ReframingStrategy {
	dom := result.Dominant()
	if dom == nil {
		return nil
	}
	strategy, ok := reframeBank[dom.ID]
	if !ok {
		return nil
	}
	// Copy slices so callers cannot mutate the shared bank.
	out := domain.ReframingStrategy{
		Questions: append([]string(nil), strategy.Questions...),
		Examples:  append([]domain.ReframeExample(nil), strategy.Examples...),
	}
	return &out
}
