// Package authn authenticates users by password or biometric key, mints
// bearer-token sessions and guards protected calls.
package authn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/authhub/internal/activity"
	"github.com/geocoder89/authhub/internal/domain/user"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/geocoder89/authhub/internal/authn")

type Service struct {
	users     UserStore
	hasher    PasswordHasher
	validator *Validator
	minter    *Minter
	sink      activity.Sink
	log       *slog.Logger
	now       func() time.Time
}

func NewService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, sink activity.Sink, log *slog.Logger) *Service {
	if sink == nil {
		sink = activity.Noop()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		validator: NewValidator(users, hasher),
		minter:    NewMinter(tokens),
		sink:      sink,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (Session, error) {
	ctx, span := tracer.Start(ctx, "authn.Register")
	defer span.End()

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return Session{}, ErrEmailInUse
	case !errors.Is(err, user.ErrNotFound):
		return Session{}, endSpan(span, fmt.Errorf("check email: %w", err))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, endSpan(span, err)
	}

	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, user.ErrEmailTaken) {
			return Session{}, ErrEmailInUse
		}
		return Session{}, endSpan(span, fmt.Errorf("create user: %w", err))
	}

	span.SetAttributes(attribute.String("user.id", u.ID))
	s.record(ctx, activity.Event{Type: activity.EventRegister, UserID: u.ID, Email: u.Email})

	session, err := s.minter.Mint(u)
	return session, endSpan(span, err)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, span := tracer.Start(ctx, "authn.Login")
	defer span.End()

	u, err := s.validator.ValidateByPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.record(ctx, activity.Event{Type: activity.EventLoginFailure, Email: email, Reason: "invalid_credentials"})
			return Session{}, err
		}
		return Session{}, endSpan(span, err)
	}

	span.SetAttributes(
		attribute.String("user.id", u.ID),
		attribute.Bool("user.biometric_enrolled", u.HasBiometricKey()),
	)
	s.record(ctx, activity.Event{Type: activity.EventLoginSuccess, UserID: u.ID, Email: u.Email})

	session, err := s.minter.Mint(u)
	return session, endSpan(span, err)
}

func (s *Service) BiometricLogin(ctx context.Context, key string) (Session, error) {
	ctx, span := tracer.Start(ctx, "authn.BiometricLogin")
	defer span.End()

	u, err := s.validator.ValidateByBiometric(ctx, key)
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			s.record(ctx, activity.Event{Type: activity.EventBiometricLoginFailure, Reason: "invalid_credential"})
			return Session{}, err
		}
		return Session{}, endSpan(span, err)
	}

	span.SetAttributes(attribute.String("user.id", u.ID))
	s.record(ctx, activity.Event{Type: activity.EventBiometricLoginSuccess, UserID: u.ID, Email: u.Email})

	session, err := s.minter.Mint(u)
	return session, endSpan(span, err)
}

// EnrollBiometric binds key to the authenticated user and mints a fresh
// session. A key already bound to that same user may be set again.
func (s *Service) EnrollBiometric(ctx context.Context, userID, key string) (Session, error) {
	ctx, span := tracer.Start(ctx, "authn.EnrollBiometric", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	existing, err := s.users.FindByBiometricKey(ctx, key)
	switch {
	case err == nil && existing.ID != userID:
		s.record(ctx, activity.Event{Type: activity.EventBiometricKeyEnrollFail, UserID: userID, Reason: "biometric_key_in_use"})
		return Session{}, ErrBiometricKeyInUse
	case err != nil && !errors.Is(err, user.ErrNotFound):
		return Session{}, endSpan(span, fmt.Errorf("check biometric key: %w", err))
	}

	u, err := s.users.UpdateBiometricKey(ctx, userID, key)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrBiometricKeyTaken):
			return Session{}, ErrBiometricKeyInUse
		case errors.Is(err, user.ErrNotFound):
			return Session{}, ErrUserNotFound
		}
		return Session{}, endSpan(span, fmt.Errorf("update biometric key: %w", err))
	}

	s.record(ctx, activity.Event{Type: activity.EventBiometricKeyEnrolled, UserID: u.ID, Email: u.Email})

	session, err := s.minter.Mint(u)
	return session, endSpan(span, err)
}

func (s *Service) GetUser(ctx context.Context, id string) (user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return u, nil
}

func (s *Service) record(ctx context.Context, ev activity.Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = s.now().UTC()
	}

	if err := s.sink.Record(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "activity record failed", "event", string(ev.Type), "err", err)
	}
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
