package coach

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// TurnEvent captures lightweight execution telemetry for one coaching turn
// or session operation.
type TurnEvent struct {
	Name      string
	SessionID string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// TurnObserver receives turn execution events.
type TurnObserver interface {
	ObserveTurn(ctx context.Context, event TurnEvent)
}

// NoopTurnObserver ignores all events.
type NoopTurnObserver struct{}

func (NoopTurnObserver) ObserveTurn(context.Context, TurnEvent) {}

type logTurnObserver struct {
	logger *slog.Logger
}

// NewLogTurnObserver writes turn events to the provided writer.
func NewLogTurnObserver(w io.Writer) TurnObserver {
	if w == nil {
		return NoopTurnObserver{}
	}
	return &logTurnObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logTurnObserver) ObserveTurn(ctx context.Context, event TurnEvent) {
	attrs := make([]any, 0, 10+len(event.Fields)*2)
	attrs = append(attrs,
		"operation", event.Name,
		"session_id", event.SessionID,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "coach_turn", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "coach_turn", attrs...)
}
