package authn

import "errors"

// Every error below is a typed, caller-visible rejection. Anything else
// returned by this package is an internal failure.
var (
	// Unknown email and wrong password share this error on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCredential  = errors.New("invalid biometric key")
	ErrEmailInUse         = errors.New("email already in use")
	ErrBiometricKeyInUse  = errors.New("biometric key already in use")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("token subject not found")
	ErrNotFound           = errors.New("user not found")
)
