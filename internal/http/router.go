package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/placementtrack/api/internal/auth"
	"github.com/placementtrack/api/internal/config"
	"github.com/placementtrack/api/internal/http/handlers"
	"github.com/placementtrack/api/internal/http/middlewares"
	"github.com/placementtrack/api/internal/observability"
	"github.com/placementtrack/api/internal/service"
)

func NewRouter(
	log *slog.Logger,
	cfg config.Config,
	svc *service.AuthService,
	jwtManager *auth.Manager,
	prom *observability.Prom,
	promRegistry *prometheus.Registry,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("placementtrack-api"))
	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))

	// wire up handlers

	authHandler := handlers.NewAuthHandler(svc, prom, log)
	healthHandler := handlers.NewHealthHandler()
	requireAuth := middlewares.NewAuthMiddleware(jwtManager).RequireAuth()

	api := r.Group("/api")

	api.GET("/health", healthHandler.Health)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", requireAuth, authHandler.Me)
	authRoutes.POST("/logout", requireAuth, authHandler.Logout)

	if promRegistry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondError(ctx, 404, "Endpoint not found")
	})

	return r
}
