package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/whatyouseeau/socialfeed/internal/api/rest"
	"github.com/whatyouseeau/socialfeed/internal/cache"
	"github.com/whatyouseeau/socialfeed/internal/config"
	"github.com/whatyouseeau/socialfeed/internal/feed"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const redisConnectTimeout = 5 * time.Second

// Module wires the service together. It expects a *config.Config to be supplied.
var Module = fx.Options(
	fx.Provide(
		newLogger,
		newCache,
		fx.Annotate(
			newProvider,
			fx.As(new(feed.Provider)),
		),
		fx.Annotate(
			newResolver,
			fx.As(new(rest.FeedResolver)),
		),
		newServer,
	),
	fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
		return &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
	}),
	fx.Invoke(run),
)

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*slog.Logger, error) {
	sentryEnabled := cfg.App.SentryDSN != ""

	if sentryEnabled {
		flush, err := InitSentry(cfg.App.SentryDSN, cfg.App.Env)

		if err != nil {
			return nil, err
		}

		lc.Append(fx.StopHook(flush))
	}

	logger := NewLogger(LoggerOpts{
		Level:   cfg.App.LogLevel,
		Console: cfg.Development(),
		Sentry:  sentryEnabled,
	})

	slog.SetDefault(logger)

	return logger, nil
}

// newCache connects to Redis when configured and falls back to the in-memory cache
func newCache(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) cache.Cache {
	var c cache.Cache

	if cfg.Cache.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()

		redisCache, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)

		if err != nil {
			logger.Warn("Failed to connect to Redis, using in-memory cache", "error", err)
		} else {
			c = redisCache
		}
	}

	if c == nil {
		c = cache.NewMemoryCache(cfg.Cache.MemorySize)
	}

	lc.Append(fx.StopHook(c.Close))

	return c
}

func newProvider(cfg *config.Config, logger *slog.Logger) *feed.GraphClient {
	return feed.NewGraphClient(cfg.Instagram.GraphURL, feed.NewHTTPClient(cfg.Instagram.Timeout), logger)
}

func newResolver(p feed.Provider, cfg *config.Config, logger *slog.Logger) *feed.Resolver {
	return feed.NewResolver(p, logger, feed.WithTimeout(cfg.Instagram.Timeout))
}

func newServer(c cache.Cache, r rest.FeedResolver, cfg *config.Config, logger *slog.Logger) *rest.Server {
	return rest.NewServer(c, r, rest.ServerOpts{
		Port: cfg.App.Port,
		Social: rest.SocialOpts{
			AccessToken: cfg.Instagram.AccessToken,
			Limit:       cfg.Instagram.Limit,
			Revalidate:  cfg.Feed.Revalidate,
		},
		Limiter: rest.NewIPLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}, logger)
}

func run(lc fx.Lifecycle, s *rest.Server, cfg *config.Config, shutdowner fx.Shutdowner, logger *slog.Logger) {
	if cfg.Instagram.AccessToken == "" {
		logger.Warn("INSTAGRAM_ACCESS_TOKEN is not set, serving placeholder posts")
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := s.Start(); err != nil {
				return err
			}

			go watchServer(s.Err(), shutdowner, logger)

			return nil
		},
		OnStop: s.Shutdown,
	})
}

// watchServer stops the application when the server fails
func watchServer(errs <-chan error, shutdowner fx.Shutdowner, logger *slog.Logger) {
	if err := <-errs; err != nil {
		if err := shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
			logger.Error("Failed to request shutdown", "error", err)
		}
	}
}
