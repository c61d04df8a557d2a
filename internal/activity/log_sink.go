package activity

import (
	"context"
	"log/slog"
)

type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(ctx context.Context, ev Event) error {
	attrs := []any{
		"event", string(ev.Type),
		"occurred_at", ev.OccurredAt,
	}

	if ev.UserID != "" {
		attrs = append(attrs, "user_id", ev.UserID)
	}
	if ev.Email != "" {
		attrs = append(attrs, "email", ev.Email)
	}
	if ev.Reason != "" {
		attrs = append(attrs, "reason", ev.Reason)
	}

	s.log.InfoContext(ctx, "auth_activity", attrs...)
	return nil
}
