package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/authhub/internal/authn"
	"github.com/geocoder89/authhub/internal/domain/user"
	"github.com/geocoder89/authhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetUser(ctx context.Context, id string) (user.User, error)
}

type UsersHandler struct {
	users UserReader
	log   *slog.Logger
}

func NewUsersHandler(users UserReader, log *slog.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

// Me returns the authenticated caller, freshly loaded.
func (h *UsersHandler) Me(ctx *gin.Context) {
	current, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "missing_token", "Authentication required")
		return
	}

	h.respondUser(ctx, current.ID)
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	h.respondUser(ctx, ctx.Param("id"))
}

func (h *UsersHandler) respondUser(ctx *gin.Context, id string) {
	u, err := h.users.GetUser(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, authn.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "get user failed", "user_id", id, "err", err)
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, u.Public())
}
