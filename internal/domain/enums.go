package domain

// Phase is a stage in the guided OKR-creation conversation. Phases are
// ordered; Order reports the position for backtracking comparisons.
type Phase string

const (
	PhaseDiscovery   Phase = "discovery"
	PhaseRefinement  Phase = "refinement"
	PhaseKRDiscovery Phase = "kr_discovery"
	PhaseValidation  Phase = "validation"
	PhaseCompleted   Phase = "completed"
)

// phaseOrder maps each phase to its position in the happy path.
var phaseOrder = map[Phase]int{
	PhaseDiscovery:   0,
	PhaseRefinement:  1,
	PhaseKRDiscovery: 2,
	PhaseValidation:  3,
	PhaseCompleted:   4,
}

// Order returns the phase's position in the conversation, or -1 for an
// unknown phase.
func (p Phase) Order() int {
	if o, ok := phaseOrder[p]; ok {
		return o
	}
	return -1
}

// Valid reports whether p is a recognized phase.
func (p Phase) Valid() bool {
	_, ok := phaseOrder[p]
	return ok
}

// ValidPhases is the canonical set of accepted phase strings.
var ValidPhases = map[string]bool{
	"discovery": true, "refinement": true, "kr_discovery": true,
	"validation": true, "completed": true,
}

type PatternID string

const (
	PatternActivityFocused PatternID = "activity_focused"
	PatternBinaryThinking  PatternID = "binary_thinking"
	PatternVagueOutcome    PatternID = "vague_outcome"
	PatternVanityMetrics   PatternID = "vanity_metrics"
	PatternBusinessAsUsual PatternID = "business_as_usual"
	PatternKitchenSink     PatternID = "kitchen_sink"
)

// Dimension names a scored quality axis for an objective or key result.
type Dimension string

const (
	// Objective dimensions.
	DimOutcomeOrientation   Dimension = "outcome_orientation"
	DimInspiration          Dimension = "inspiration"
	DimClarity              Dimension = "clarity"
	DimAlignment            Dimension = "alignment"
	DimAmbition             Dimension = "ambition"
	DimScopeAppropriateness Dimension = "scope_appropriateness"

	// Key result dimensions.
	DimQuantification    Dimension = "quantification"
	DimOutcomeVsActivity Dimension = "outcome_vs_activity"
	DimAchievability     Dimension = "achievability"
	DimRelevance         Dimension = "relevance"
	DimChallengeLevel    Dimension = "challenge_level"
	DimTimebound         Dimension = "timebound"
)

// OrgScope is the organizational altitude an objective targets.
type OrgScope string

const (
	ScopeStrategic    OrgScope = "strategic"
	ScopeDepartmental OrgScope = "departmental"
	ScopeTeam         OrgScope = "team"
	ScopeInitiative   OrgScope = "initiative"
	ScopeProject      OrgScope = "project"
)

// ValidOrgScopes is the canonical set of accepted scope strings.
var ValidOrgScopes = map[string]bool{
	"strategic": true, "departmental": true, "team": true,
	"initiative": true, "project": true,
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// BacktrackReason classifies why a conversation moved to an earlier phase.
type BacktrackReason string

const (
	BacktrackNewInsight   BacktrackReason = "new_insight"
	BacktrackMissedDetail BacktrackReason = "missed_detail"
	BacktrackScopeChange  BacktrackReason = "scope_change"
	BacktrackNone         BacktrackReason = "none"
)

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionArchived SessionStatus = "archived"
)
