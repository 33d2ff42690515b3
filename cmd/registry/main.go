// Command registry runs the tenant registry service: the admin HTTP surface
// backed by PostgreSQL, with tenant resolution and error normalization wired
// the way a consuming service would wire them.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/reymi-tech/multitenant/modules/registry"
	"github.com/reymi-tech/multitenant/pkg/apierrors"
	"github.com/reymi-tech/multitenant/pkg/config"
	"github.com/reymi-tech/multitenant/pkg/httpserver"
	"github.com/reymi-tech/multitenant/pkg/logger"
	"github.com/reymi-tech/multitenant/pkg/pg"
	"github.com/reymi-tech/multitenant/pkg/redis"
	"github.com/reymi-tech/multitenant/pkg/tenant"
	"github.com/reymi-tech/multitenant/pkg/trace"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	ServiceName  string `env:"APP_NAME" envDefault:"tenant-registry"`
	CacheBackend string `env:"TENANT_CACHE_BACKEND" envDefault:"memory"`
}

func main() {
	ctx := context.Background()

	var (
		appCfg    appConfig
		pgCfg     pg.Config
		serverCfg httpserver.Config
		resCfg    tenant.ResolutionConfig
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&resCfg)

	logOpts := []logger.Option{
		logger.WithContextExtractors(trace.LoggerExtractor(), tenant.LoggerExtractor()),
	}
	if appCfg.Env == "production" {
		logOpts = append(logOpts, logger.WithProduction(appCfg.ServiceName))
	} else {
		logOpts = append(logOpts, logger.WithDevelopment(appCfg.ServiceName))
	}
	log := logger.New(logOpts...)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	store := registry.NewStore(pool, log)

	var cache tenant.Cache
	if appCfg.CacheBackend == "redis" {
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		cache = tenant.NewRedisCache(client)
	} else {
		cache = tenant.NewInMemoryCache()
	}
	defer cache.Close()

	responder := apierrors.NewResponder(log)

	r := chi.NewRouter()
	r.Use(trace.Middleware)
	r.Use(tenant.Middleware(resCfg,
		tenant.WithLogger(log),
		tenant.WithValidator(store),
		tenant.WithCache(cache),
		tenant.WithSkipPaths("/health"),
	))
	r.Use(responder.Middleware)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
	r.Mount("/", registry.Router(store, responder))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responder.Write(w, req, apierrors.ErrNotFound)
	})

	srv := httpserver.New(serverCfg, log)
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server exited", logger.Error(err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "shutdown complete", slog.String("service", appCfg.ServiceName))
}
