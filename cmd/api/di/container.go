package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-registry-service/cmd/api/infrastructure"
	ginhandler "user-registry-service/internal/adapter/gin/handler"
	"user-registry-service/internal/adapter/gin/middleware"
	ginrouter "user-registry-service/internal/adapter/gin/router"
	"user-registry-service/internal/adapter/gin/view"
	"user-registry-service/internal/adapter/repository/memory"
	"user-registry-service/internal/config"
	"user-registry-service/internal/usecase/user"
	redisclient "user-registry-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	Store       *memory.UserRegistry
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
	RouterOpts  ginrouter.Options
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	contract, err := user.ContractByName(cfg.Registry.ValidationMode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve validation contract: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
	}

	// Redis is only needed for rate limiting
	if cfg.RateLimit.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
		c.RateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	c.Store = memory.NewUserRegistry(l)
	c.UserUC = user.New(c.Store, contract, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l, cfg.App.ViewsEnabled)

	c.RouterOpts = ginrouter.Options{
		ServiceName: cfg.Logger.ServiceName,
		RateLimiter: c.RateLimiter,
	}
	if cfg.App.ViewsEnabled {
		tmpl, err := view.Load()
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to load views: %w", err)
		}
		c.RouterOpts.Views = tmpl
	}

	l.Info("container initialized",
		zap.String("validation_mode", contract.Name),
		zap.Bool("views_enabled", cfg.App.ViewsEnabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
	)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}
