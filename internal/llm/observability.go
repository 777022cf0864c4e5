package llm

import (
	"context"
	"log/slog"
)

// CallEvent describes one finished assistant request, successful or not.
type CallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver reports each call as a "plan_assistant_call" record. Failures
// are logged at warn so they show up at the default CLI level.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	level, outcome := slog.LevelInfo, "ok"
	if !e.Success {
		level, outcome = slog.LevelWarn, "err:"+e.ErrorCode
	}
	o.logger.Log(context.Background(), level, "plan_assistant_call",
		slog.String("task", string(e.Task)),
		slog.String("provider", string(e.Provider)),
		slog.String("model", e.Model),
		slog.Int64("latency_ms", e.LatencyMs),
		slog.Int("attempts", e.Attempts),
		slog.String("status", outcome),
	)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
