// Package activity records audit-friendly authentication events. Recording
// is best-effort: callers log sink failures and carry on.
package activity

import (
	"context"
	"errors"
	"time"
)

type EventType string

const (
	EventRegister               EventType = "auth.register"
	EventLoginSuccess           EventType = "auth.login.success"
	EventLoginFailure           EventType = "auth.login.failure"
	EventBiometricLoginSuccess  EventType = "auth.biometric.login.success"
	EventBiometricLoginFailure  EventType = "auth.biometric.login.failure"
	EventBiometricKeyEnrolled   EventType = "auth.biometric.enrolled"
	EventBiometricKeyEnrollFail EventType = "auth.biometric.enroll.failure"
)

type Event struct {
	Type       EventType
	UserID     string
	Email      string
	Reason     string
	OccurredAt time.Time
}

// Sink consumes activity events.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Record(ctx context.Context, ev Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, ev)
}

type noopSink struct{}

func (noopSink) Record(context.Context, Event) error { return nil }

// Noop returns a sink that drops every event.
func Noop() Sink { return noopSink{} }

// Fanout delivers each event to every sink and joins their errors.
func Fanout(sinks ...Sink) Sink {
	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}

	return SinkFunc(func(ctx context.Context, ev Event) error {
		var errs []error
		for _, s := range active {
			if err := s.Record(ctx, ev); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
