package phase

import "github.com/avelasco/stride/internal/domain"

// backtrackTarget maps a classified correction to the phase the
// conversation should return to. Scope changes restart discovery; a new
// insight or missed detail steps back a single phase. Discovery itself
// has nowhere to go back to.
func backtrackTarget(current domain.Phase, reason domain.BacktrackReason) (domain.Phase, bool) {
	if current == domain.PhaseDiscovery || current == domain.PhaseCompleted {
		return current, false
	}
	switch reason {
	case domain.BacktrackScopeChange:
		return domain.PhaseDiscovery, true
	case domain.BacktrackNewInsight, domain.BacktrackMissedDetail:
		return previousPhase(current), true
	default:
		return current, false
	}
}

func previousPhase(p domain.Phase) domain.Phase {
	switch p {
	case domain.PhaseRefinement:
		return domain.PhaseDiscovery
	case domain.PhaseKRDiscovery:
		return domain.PhaseRefinement
	case domain.PhaseValidation:
		return domain.PhaseKRDiscovery
	default:
		return p
	}
}

func backtrackGuidance(reason domain.BacktrackReason) string {
	switch reason {
	case domain.BacktrackScopeChange:
		return "Sounds like the scope has shifted. Let's revisit what this objective should cover."
	case domain.BacktrackNewInsight:
		return "Good catch. Let's fold that insight in before moving forward."
	case domain.BacktrackMissedDetail:
		return "Let's go back and address the detail we skipped."
	default:
		return ""
	}
}
