package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/oversounds/tpp-backend/api/routes"
	"github.com/oversounds/tpp-backend/internal/cart"
	"github.com/oversounds/tpp-backend/internal/paymentmethods"
	"github.com/oversounds/tpp-backend/internal/purchases"
	"github.com/oversounds/tpp-backend/internal/storefront"
	"github.com/oversounds/tpp-backend/pkg/catalog"
	"github.com/oversounds/tpp-backend/pkg/config"
	"github.com/oversounds/tpp-backend/pkg/db"
	"github.com/oversounds/tpp-backend/pkg/identity"
	"github.com/oversounds/tpp-backend/pkg/logger"
	"github.com/oversounds/tpp-backend/pkg/metrics"
	"github.com/oversounds/tpp-backend/pkg/migrate"
	"github.com/oversounds/tpp-backend/pkg/redis"
)

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

	identityClient, err := identity.NewClient(cfg.Auth)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity client", err)
		os.Exit(1)
	}

	var resolver identity.Resolver = identityClient
	var redisClient *redis.Client
	if !cfg.Auth.DisableCaching {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		resolver = identity.NewCachedResolver(identityClient, redisClient, cfg.Auth.IdentityTTL, logg)
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	cartRepo := cart.NewRepository(dbClient.DB())
	paymentRepo := paymentmethods.NewRepository(dbClient.DB())

	cartService, err := cart.NewService(cartRepo, catalogClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	paymentService, err := paymentmethods.NewService(paymentRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment methods service", err)
		os.Exit(1)
	}

	purchaseService, err := purchases.NewService(purchases.ServiceParams{
		Repo:              purchases.NewRepository(dbClient.DB()),
		Ownership:         paymentRepo,
		Cart:              cartRepo,
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

	storeService, err := storefront.NewService(catalogClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			resolver,
			httpMetrics,
			cartService,
			paymentService,
			purchaseService,
			storeService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
