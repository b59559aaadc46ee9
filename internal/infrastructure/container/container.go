package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/mentorlink-backend/internal/config"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/cache"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/database"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/mentorlink-backend/internal/infrastructure/server"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/memory"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/postgres"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/auth"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/profile"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/tags"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Store    repository.Store
	Redis    *redis.Client
	Gemini   *gemini.GeminiClient
	Resolver *auth.JWTResolver
	Server   *server.Server
	logger   *slog.Logger
}

// NewContainer creates a new dependency injection container. Failures of
// optional collaborators (Redis, Gemini) are logged and the service starts
// without them.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, logger: logger}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Store = store

	resolver, err := newResolver(ctx, &cfg.Auth, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Resolver = resolver

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, profile cache disabled", "error", err.Error())
	}
	c.Redis = redisClient

	var bios profile.BioGenerator
	geminiClient, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn("gemini client not initialized, using template bios", "error", err.Error())
	} else {
		c.Gemini = geminiClient
		bios = geminiClient
	}

	m := metrics.New()
	profileCache := cache.NewProfileCache(redisClient, cfg.Cache.ProfileTTL, logger)

	// Initialize use cases
	profileUseCase := profile.NewProfileUseCase(
		store,
		tags.NewReconciler(),
		profileCache,
		m,
		bios,
		logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(profileUseCase, logger)
	profileHandler := handler.NewProfileHandler(profileUseCase, logger)
	tagHandler := handler.NewTagHandler(profileUseCase, logger)

	router := http.NewRouter(
		authHandler,
		profileHandler,
		tagHandler,
		middleware.NewAuthMiddleware(resolver),
		m,
		logger,
		cfg.CORS.AllowedOrigins,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)
	return c, nil
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Store, error) {
	if cfg.Storage.Type == config.StorageTypeMemory {
		logger.Info("using in-memory storage")
		return memory.NewStore(), nil
	}

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migrations applied")
	}

	return postgres.NewStore(db), nil
}

func newResolver(ctx context.Context, cfg *config.AuthConfig, logger *slog.Logger) (*auth.JWTResolver, error) {
	if cfg.JWKSURL != "" {
		resolver, err := auth.NewJWKSResolver(ctx, cfg.JWKSURL, cfg.Issuer, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize identity resolver: %w", err)
		}
		return resolver, nil
	}
	return auth.NewHMACResolver(cfg.JWTSecret, cfg.Issuer), nil
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error

	if c.Resolver != nil {
		c.Resolver.Close()
	}

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.logger.Warn("error closing gemini client", "error", err.Error())
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Warn("error closing redis", "error", err.Error())
		}
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	return errors.Join(errs...)
}
