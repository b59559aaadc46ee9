package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	tagHandler     *handler.TagHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	logger         *slog.Logger
	allowedOrigins []string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	tagHandler *handler.TagHandler,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		tagHandler:     tagHandler,
		authMiddleware: authMiddleware,
		metrics:        m,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(r.logger),
		middleware.Recovery(r.logger),
		r.metrics.Middleware(),
		cors.New(r.corsConfig()),
	)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		v1.GET("/auth/me", r.authHandler.Me)

		profile := v1.Group("/profile")
		{
			profile.POST("/onboarding", r.profileHandler.CompleteOnboarding)
			profile.GET("/me", r.profileHandler.GetMyProfile)
			profile.PATCH("/me", r.profileHandler.UpdateMyProfile)
			profile.POST("/generate-bio", r.profileHandler.GenerateBio)
		}

		v1.GET("/profiles/:account_id", r.profileHandler.GetProfileByAccountID)

		tags := v1.Group("/tags")
		{
			tags.GET("/interests", r.tagHandler.ListInterests)
			tags.GET("/industries", r.tagHandler.ListIndustries)
		}
	}

	return router
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "HEAD", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(r.allowedOrigins) == 0 {
		// Credentials cannot be combined with a wildcard origin.
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = r.allowedOrigins
	}
	return cfg
}
