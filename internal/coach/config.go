package coach

import "github.com/avelasco/stride/internal/phase"

// Config carries the engine's tuning knobs. Phase thresholds live in the
// embedded phase.Config so the controller and engine stay in sync.
type Config struct {
	Phase            phase.Config
	ObjectiveWordCap int // clarity penalty threshold for objectives
	DetectionCache   int // LRU entries for memoized detection results
	HistoryWindow    int // recent messages handed to the controller and LLM
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Phase:            phase.DefaultConfig(),
		ObjectiveWordCap: 12,
		DetectionCache:   256,
		HistoryWindow:    20,
	}
}
