package llm

import "errors"

// Sentinel failures callers branch on. Coaching degrades to its
// deterministic fallbacks on any of these, so the distinctions matter
// only for logging and for deciding whether a retry is worthwhile.
var (
	// ErrUnavailable: the Ollama server cannot be reached.
	ErrUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout: the call exceeded the task's configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput: the model reply could not be parsed into the
	// expected structure.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted: every attempt failed for a non-timeout,
	// non-connection reason.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
