package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultStream = "authhub:activity"

// RedisSink appends events to a capped Redis stream so other services can
// follow authentication activity.
type RedisSink struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

func NewRedisSink(rdb *redis.Client, stream string, maxLen int64) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	if maxLen <= 0 {
		maxLen = 10000
	}

	return &RedisSink{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (s *RedisSink) Record(ctx context.Context, ev Event) error {
	err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"type":        string(ev.Type),
			"user_id":     ev.UserID,
			"email":       ev.Email,
			"reason":      ev.Reason,
			"occurred_at": ev.OccurredAt.UTC().Format(time.RFC3339Nano),
		},
	}).Err()

	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}

	return nil
}
