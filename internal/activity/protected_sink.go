package activity

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type breakerState string

const (
	stateClosed   breakerState = "closed"
	stateOpen     breakerState = "open"
	stateHalfOpen breakerState = "half_open"
)

type ProtectedSinkConfig struct {
	Timeout          time.Duration // hard timeout per record
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedSink bounds the latency a slow or unavailable sink can add to an
// authentication call.
type ProtectedSink struct {
	inner Sink
	cfg   ProtectedSinkConfig
	now   func() time.Time

	mu                  sync.Mutex
	state               breakerState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtectedSink(inner Sink, cfg ProtectedSinkConfig) *ProtectedSink {
	//defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 500 * time.Millisecond
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedSink{
		inner: inner,
		cfg:   cfg,
		now:   time.Now,
		state: stateClosed,
	}
}

func (s *ProtectedSink) Record(ctx context.Context, ev Event) error {
	// fail-fast gate
	if !s.allowRequest() {
		return ErrCircuitOpen
	}

	recordCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	err := s.inner.Record(recordCtx, ev)

	s.afterRequest(err)

	return err
}

// State returns the current breaker state, for readiness and tests.
func (s *ProtectedSink) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.state)
}

func (s *ProtectedSink) allowRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateClosed:
		return true
	case stateOpen:
		// cooldown has passed? move to half open
		if s.now().Sub(s.openedAt) >= s.cfg.Cooldown {
			s.state = stateHalfOpen
			s.halfOpenInFlight = 1
			return true
		}
		return false
	case stateHalfOpen:
		if s.halfOpenInFlight >= s.cfg.HalfOpenMaxCalls {
			return false
		}
		s.halfOpenInFlight++
		return true
	default:
		return true
	}
}

func (s *ProtectedSink) afterRequest(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// half-open call just finished
	if s.state == stateHalfOpen && s.halfOpenInFlight > 0 {
		s.halfOpenInFlight--
	}

	if err == nil {
		s.consecutiveFailures = 0
		s.state = stateClosed
		return
	}

	s.consecutiveFailures++

	// if half-open failed, reopen immediately
	if s.state == stateHalfOpen {
		s.state = stateOpen
		s.openedAt = s.now()
		return
	}

	if s.consecutiveFailures >= s.cfg.FailureThreshold {
		s.state = stateOpen
		s.openedAt = s.now()
	}
}
