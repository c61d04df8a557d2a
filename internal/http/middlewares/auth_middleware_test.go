package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/authhub/internal/actorctx"
	"github.com/geocoder89/authhub/internal/authn"
	"github.com/geocoder89/authhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type fakeGuard struct {
	AuthenticateFn func(ctx context.Context, authorization string) (user.User, error)
}

func (f fakeGuard) Authenticate(ctx context.Context, authorization string) (user.User, error) {
	return f.AuthenticateFn(ctx, authorization)
}

type errorBody struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newGuardedRouter(guard Authenticator, handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", NewAuthMiddleware(guard).RequireAuth(), func(c *gin.Context) {
		*handlerCalled = true

		u, ok := actorctx.UserFrom(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "ginUserID": c.GetString(CtxUserID)})
	})
	return r
}

func TestRequireAuth_AttachesUser(t *testing.T) {
	var called bool
	var gotHeader string

	guard := fakeGuard{AuthenticateFn: func(_ context.Context, authorization string) (user.User, error) {
		gotHeader = authorization
		return user.User{ID: "u1", Email: "a@example.com"}, nil
	}}

	r := newGuardedRouter(guard, &called)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if gotHeader != "Bearer tok" {
		t.Fatalf("guard got header %q", gotHeader)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["id"] != "u1" || body["ginUserID"] != "u1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRequireAuth_RejectsBeforeHandler(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{authn.ErrMissingToken, http.StatusUnauthorized, "missing_token"},
		{authn.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
		{authn.ErrUserNotFound, http.StatusUnauthorized, "user_not_found"},
		{errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		var called bool
		err := tc.err
		guard := fakeGuard{AuthenticateFn: func(context.Context, string) (user.User, error) {
			return user.User{}, err
		}}

		r := newGuardedRouter(guard, &called)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		if called {
			t.Fatalf("%v: handler must not run", tc.err)
		}
		if w.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}

		var body errorBody
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Error.Code != tc.code {
			t.Fatalf("%v: code = %q, want %q", tc.err, body.Error.Code, tc.code)
		}
	}
}
