package http

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/authhub/internal/http/handlers"
	"github.com/geocoder89/authhub/internal/http/middlewares"
	"github.com/geocoder89/authhub/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Auth         handlers.Authenticator
	Users        handlers.UserReader
	Guard        middlewares.Authenticator
	Ready        map[string]handlers.Pinger
	Prom         *observability.Prom
	Metrics      http.Handler
	ServiceName  string
	CORSOrigins  []string
	MaxBodyBytes int64
}

func NewRouter(log *slog.Logger, env string, deps Deps) *gin.Engine {
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	if deps.ServiceName != "" {
		r.Use(otelgin.Middleware(deps.ServiceName))
	}
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	if len(deps.CORSOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(deps.CORSOrigins))
	}

	// health
	h := handlers.NewHealthHandler(deps.Ready)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	authHandler := handlers.NewAuthHandler(deps.Auth, log)
	usersHandler := handlers.NewUsersHandler(deps.Users, log)
	authMiddleware := middlewares.NewAuthMiddleware(deps.Guard)

	api := r.Group("/")
	api.Use(middlewares.MaxBodyBytes(deps.MaxBodyBytes), middlewares.RequireJSON())

	// public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/biometric-login", authHandler.BiometricLogin)

	// protected routes
	protected := api.Group("/")
	protected.Use(authMiddleware.RequireAuth())

	protected.POST("/auth/biometric-key", authHandler.SetBiometricKey)
	protected.GET("/me", usersHandler.Me)
	protected.GET("/users/:id", usersHandler.GetUserByID)

	return r
}
