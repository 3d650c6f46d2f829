package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gobrick/brickpool-backend/api/routes"
	"github.com/gobrick/brickpool-backend/internal/catalog"
	"github.com/gobrick/brickpool-backend/internal/lists"
	"github.com/gobrick/brickpool-backend/internal/offers"
	"github.com/gobrick/brickpool-backend/internal/pool"
	"github.com/gobrick/brickpool-backend/internal/users"
	"github.com/gobrick/brickpool-backend/pkg/auth/session"
	"github.com/gobrick/brickpool-backend/pkg/config"
	"github.com/gobrick/brickpool-backend/pkg/db"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/gobrick/brickpool-backend/pkg/metrics"
	"github.com/gobrick/brickpool-backend/pkg/migrate"
	"github.com/gobrick/brickpool-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type apiServices struct {
	users   *users.Service
	lists   *lists.Service
	offers  *offers.Service
	pool    *pool.Service
	catalog *catalog.Service
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	services, err := buildServices(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DBPinger:        dbClient,
			RedisPinger:     redisClient,
			Sessions:        sessionManager,
			IdentityMirror:  services.users,
			Metrics:         httpMetrics,
			MetricsGatherer: registry,
			PoolService:     services.pool,
			OfferService:    services.offers,
			ListService:     services.lists,
			CatalogService:  services.catalog,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (*apiServices, error) {
	conn := dbClient.DB()

	userService, err := users.NewService(users.ServiceParams{
		Repo: users.NewRepository(conn),
	})
	if err != nil {
		return nil, err
	}

	listService, err := lists.NewService(lists.ServiceParams{
		Repo:    lists.NewRepository(conn),
		LotRepo: lists.NewLotRepository(conn),
		Tx:      dbClient,
	})
	if err != nil {
		return nil, err
	}

	offerService, err := offers.NewService(offers.ServiceParams{
		Repo:       offers.NewRepository(conn),
		Lists:      lists.NewRepository(conn),
		Tx:         dbClient,
		Logger:     logg,
		MaxRetries: cfg.Pool.ReconcileMaxRetries,
	})
	if err != nil {
		return nil, err
	}

	poolService, err := pool.NewService(pool.ServiceParams{
		Repo: pool.NewRepository(conn),
	})
	if err != nil {
		return nil, err
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	catalogService, err := catalog.NewService(catalog.ServiceParams{
		API:    catalogClient,
		Cache:  redisClient,
		Logger: logg,
		Config: cfg.Catalog,
	})
	if err != nil {
		return nil, err
	}

	return &apiServices{
		users:   userService,
		lists:   listService,
		offers:  offerService,
		pool:    poolService,
		catalog: catalogService,
	}, nil
}
