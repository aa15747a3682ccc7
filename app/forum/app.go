// Package forum assembles the forum HTTP server: configuration, logging,
// the blacklist store, routes, middlewares and the error handler chain.
package forum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/forumkit/errgate/core/config"
	"github.com/forumkit/errgate/core/errhandler"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/i18n"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/router"
	"github.com/forumkit/errgate/core/server"
	"github.com/forumkit/errgate/integration/blacklist/pgstore"
	"github.com/forumkit/errgate/integration/blacklist/redisstore"
	"github.com/forumkit/errgate/integration/database/pg"
	"github.com/forumkit/errgate/integration/database/redis"
	"github.com/forumkit/errgate/middleware"
)

// App is a configured forum server.
type App struct {
	config  *Config
	router  router.Router[*router.Context]
	server  *server.Server
	logger  *slog.Logger
	i18n    *i18n.I18n
	store   middleware.BlacklistStore
	health  []func(context.Context) error
	closers []func()
}

// AppOption configures NewApp.
type AppOption func(*App) error

// NewApp builds the application. Configuration comes from the environment
// unless WithConfig is given.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		var cfg Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		app.config = &cfg
	}

	if app.logger == nil {
		app.logger = newLogger(*app.config)
	}

	if app.i18n == nil {
		bundle, err := i18n.Forum()
		if err != nil {
			return nil, fmt.Errorf("load translations: %w", err)
		}
		app.i18n = bundle
	}

	if app.store == nil {
		if err := app.connectStore(ctx); err != nil {
			app.Close()
			return nil, err
		}
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			app.Close()
			return nil, err
		}
		app.server = s
	}

	app.router = app.newRouter()
	return app, nil
}

// Router returns the HTTP handler.
func (app *App) Router() router.Router[*router.Context] {
	return app.router
}

// Run serves until ctx is canceled, then shuts down and releases resources.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.server.Run(ctx, app.router))
	return g.Wait()
}

// Close releases store connections.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}

// connectStore picks Redis, then Postgres, then the in-memory blacklist.
func (app *App) connectStore(ctx context.Context) error {
	cfg := app.config

	switch {
	case cfg.Redis.ConnectionURL != "":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		app.closers = append(app.closers, func() { _ = client.Close() })
		app.health = append(app.health, redis.Healthcheck(client))

		store := redisstore.New(client)
		for _, entry := range cfg.Blacklist {
			if strings.Contains(entry, "/") {
				app.logger.Warn("ip blacklist range ignored by redis store",
					logger.Component("forum"),
					slog.String("entry", entry),
				)
				continue
			}
			if err := store.Add(ctx, entry); err != nil {
				return err
			}
		}
		app.store = store
		app.logger.Info("ip blacklist backed by redis")

	case cfg.DB.ConnectionString != "":
		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		app.closers = append(app.closers, pool.Close)
		app.health = append(app.health, pg.Healthcheck(pool))

		store := pgstore.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		for _, entry := range cfg.Blacklist {
			if err := store.Add(ctx, entry); err != nil {
				return err
			}
		}
		app.store = store
		app.logger.Info("ip blacklist backed by postgres")

	default:
		store, err := middleware.NewMemoryBlacklist(cfg.Blacklist...)
		if err != nil {
			return err
		}
		app.store = store
	}
	return nil
}

func (app *App) newRouter() router.Router[*router.Context] {
	rel := app.config.Errors.RelativePath

	errs := errhandler.New[*router.Context](
		errhandler.WithConfig(app.config.Errors),
		errhandler.WithLogger(app.logger),
		errhandler.WithI18n(app.i18n),
	)

	r := router.New[*router.Context](
		router.WithErrorHandler(errs),
		router.WithLogger[*router.Context](app.logger),
		router.WithHTTPMiddleware[*router.Context](middleware.APIFlag(rel)),
		router.WithMiddleware(
			middleware.RequestID[*router.Context](),
			middleware.ClientIP[*router.Context](),
			middleware.LoggingWithLogger[*router.Context](app.logger),
			middleware.BlacklistWithConfig[*router.Context](middleware.BlacklistConfig{
				Store:  app.store,
				Logger: app.logger,
			}),
			middleware.CSRFWithConfig[*router.Context](middleware.CSRFConfig{
				CookiePath: rel + "/",
				Skip: func(ctx handler.Context) bool {
					return middleware.IsAPI(ctx) && ctx.Request().Header.Get("Authorization") != ""
				},
			}),
		),
	)

	if rel == "" {
		registerRoutes(r, app)
		return r
	}

	r.Route(rel, func(sub router.Router[*router.Context]) {
		registerRoutes(sub, app)
	})
	return r
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithContextExtractors(middleware.RequestIDExtractor)}
	if cfg.Env == "production" {
		opts = append(opts, logger.WithProduction(cfg.AppName))
	} else {
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...)
}

// WithConfig skips environment loading.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = &cfg
		return nil
	}
}

// WithLogger sets the application logger.
func WithLogger(log *slog.Logger) AppOption {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

// WithBlacklistStore replaces the store chosen from configuration.
func WithBlacklistStore(store middleware.BlacklistStore) AppOption {
	return func(app *App) error {
		if store == nil {
			return errors.New("blacklist store cannot be nil")
		}
		app.store = store
		return nil
	}
}

// WithServer replaces the server built from configuration.
func WithServer(s *server.Server) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}
