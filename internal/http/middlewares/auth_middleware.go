package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/authhub/internal/actorctx"
	"github.com/geocoder89/authhub/internal/authn"
	"github.com/geocoder89/authhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (user.User, error)
}

type AuthMiddleware struct {
	guard Authenticator
}

func NewAuthMiddleware(guard Authenticator) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// RequireAuth rejects the request before it reaches the handler unless it
// carries a valid bearer token for an existing user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := m.guard.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))

		if err != nil {
			switch {
			case errors.Is(err, authn.ErrMissingToken):
				abortWithError(c, http.StatusUnauthorized, "missing_token", "Missing or invalid Authorization header")
			case errors.Is(err, authn.ErrInvalidToken):
				abortWithError(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired access token")
			case errors.Is(err, authn.ErrUserNotFound):
				abortWithError(c, http.StatusUnauthorized, "user_not_found", "User for this token no longer exists")
			default:
				slog.Default().ErrorContext(c.Request.Context(), "authenticate request failed", "err", err)
				abortWithError(c, http.StatusInternalServerError, "internal_error", "Could not authenticate request")
			}
			return
		}

		// Stash identity on both the gin and the request context
		c.Set(CtxUserID, u.ID)
		c.Request = c.Request.WithContext(actorctx.WithUser(c.Request.Context(), u))

		c.Next()
	}
}

// UserFromContext returns the user attached by RequireAuth.
func UserFromContext(c *gin.Context) (user.User, bool) {
	return actorctx.UserFrom(c.Request.Context())
}

func abortWithError(c *gin.Context, status int, code, message string) {
	reqID, _ := c.Get(CtxRequestID)
	id, _ := reqID.(string)

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":      code,
			"message":   message,
			"requestId": id,
		},
	})
}
