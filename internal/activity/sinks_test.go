package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestLogSink_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	ev := Event{
		Type:       EventLoginFailure,
		Email:      "a@example.com",
		Reason:     "invalid_credentials",
		OccurredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := NewLogSink(log).Record(context.Background(), ev); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}

	if line["msg"] != "auth_activity" || line["event"] != string(EventLoginFailure) || line["reason"] != "invalid_credentials" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if _, ok := line["user_id"]; ok {
		t.Fatalf("empty user id should be omitted: %v", line)
	}
}

func TestRedisSink_WrapsConnectionErrors(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	s := NewRedisSink(rdb, "", 0)
	if s.stream != DefaultStream || s.maxLen != 10000 {
		t.Fatalf("defaults not applied: %q %d", s.stream, s.maxLen)
	}

	err := s.Record(context.Background(), Event{Type: EventRegister})
	if err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if !strings.Contains(err.Error(), "xadd "+DefaultStream) {
		t.Fatalf("error should name the stream: %v", err)
	}
}
