package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/authhub/internal/authn"
	"github.com/geocoder89/authhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Register(ctx context.Context, email, password string) (authn.Session, error)
	Login(ctx context.Context, email, password string) (authn.Session, error)
	BiometricLogin(ctx context.Context, key string) (authn.Session, error)
	EnrollBiometric(ctx context.Context, userID, key string) (authn.Session, error)
}

type AuthHandler struct {
	auth Authenticator
	log  *slog.Logger
}

func NewAuthHandler(auth Authenticator, log *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
	// bcrypt ignores input past 72 bytes
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type BiometricLoginRequest struct {
	BiometricKey string `json:"biometricKey" binding:"required"`
}

type SetBiometricKeyRequest struct {
	BiometricKey string `json:"biometricKey" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	session, err := h.auth.Register(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		h.respondAuthError(ctx, err, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	session, err := h.auth.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		h.respondAuthError(ctx, err, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, session)
}

func (h *AuthHandler) BiometricLogin(ctx *gin.Context) {
	var req BiometricLoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	session, err := h.auth.BiometricLogin(ctx.Request.Context(), req.BiometricKey)

	if err != nil {
		h.respondAuthError(ctx, err, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// SetBiometricKey must sit behind RequireAuth.
func (h *AuthHandler) SetBiometricKey(ctx *gin.Context) {
	current, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "missing_token", "Authentication required")
		return
	}

	var req SetBiometricKeyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	session, err := h.auth.EnrollBiometric(ctx.Request.Context(), current.ID, req.BiometricKey)

	if err != nil {
		h.respondAuthError(ctx, err, "Could not set biometric key")
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// respondAuthError maps authn rejections to their HTTP shape. Anything
// unrecognised is logged and reported as an opaque internal error.
func (h *AuthHandler) respondAuthError(ctx *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, authn.ErrInvalidCredentials):
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
	case errors.Is(err, authn.ErrInvalidCredential):
		RespondUnauthorized(ctx, "invalid_credential", "Biometric key is not recognised.")
	case errors.Is(err, authn.ErrEmailInUse):
		RespondConflict(ctx, "email_in_use", "Email is already in use.")
	case errors.Is(err, authn.ErrBiometricKeyInUse):
		RespondConflict(ctx, "biometric_key_in_use", "Biometric key is already in use.")
	case errors.Is(err, authn.ErrUserNotFound):
		RespondUnauthorized(ctx, "user_not_found", "User for this token no longer exists.")
	case errors.Is(err, authn.ErrNotFound):
		RespondNotFound(ctx, "User not found")
	default:
		h.log.ErrorContext(ctx.Request.Context(), "auth request failed", "route", ctx.FullPath(), "err", err)
		RespondInternal(ctx, internalMessage)
	}
}
