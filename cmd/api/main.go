package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jngsolar/storefront-backend/api/controllers"
	"github.com/jngsolar/storefront-backend/api/routes"
	cartsvc "github.com/jngsolar/storefront-backend/internal/cart"
	"github.com/jngsolar/storefront-backend/internal/catalog"
	chatsvc "github.com/jngsolar/storefront-backend/internal/chat"
	checkoutsvc "github.com/jngsolar/storefront-backend/internal/checkout"
	paymentsvc "github.com/jngsolar/storefront-backend/internal/payments"
	purchasesvc "github.com/jngsolar/storefront-backend/internal/purchases"
	"github.com/jngsolar/storefront-backend/internal/storage/docstore"
	"github.com/jngsolar/storefront-backend/pkg/config"
	"github.com/jngsolar/storefront-backend/pkg/db"
	"github.com/jngsolar/storefront-backend/pkg/logger"
	"github.com/jngsolar/storefront-backend/pkg/migrate"
	"github.com/jngsolar/storefront-backend/pkg/openai"
	"github.com/jngsolar/storefront-backend/pkg/redis"
	"github.com/jngsolar/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	pingers := map[string]controllers.Pinger{}

	var catalogRepo catalog.Repository
	var purchaseRepo purchasesvc.Repository

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}

		catalogRepo = catalog.NewGormRepository(dbClient.DB())
		purchaseRepo = purchasesvc.NewGormRepository(dbClient.DB())
		pingers["database"] = dbClient

	default:
		store, err := docstore.Open(cfg.Storage.FilePath)
		if err != nil {
			logg.Error(ctx, "failed to open data file", err)
			os.Exit(1)
		}
		catalogRepo = docstore.NewCatalogRepository(store)
		purchaseRepo = docstore.NewPurchasesRepository(store)
	}

	var cartStore cartsvc.Store = cartsvc.NewMemoryStore()
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()

		cartStore, err = cartsvc.NewRedisStore(redisClient, cfg.Session.CartTTL)
		if err != nil {
			logg.Error(ctx, "failed to build redis cart store", err)
			os.Exit(1)
		}
		pingers["redis"] = redisClient
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	if err := catalogService.EnsureSeed(ctx); err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, catalogService)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	purchaseService, err := purchasesvc.NewService(purchaseRepo)
	if err != nil {
		logg.Error(ctx, "failed to create purchase service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartStore, purchaseRepo, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	chatService := chatsvc.NewScriptedService()
	if cfg.Chat.OpenAIAPIKey != "" {
		openaiClient, err := openai.NewClient(
			cfg.Chat.OpenAIAPIKey,
			openai.WithModel(cfg.Chat.Model),
			openai.WithHTTPClient(&http.Client{Timeout: cfg.Chat.Timeout}),
		)
		if err != nil {
			logg.Error(ctx, "failed to create openai client", err)
			os.Exit(1)
		}
		chatService, err = chatsvc.NewAssistantService(openaiClient, cfg.Chat.SystemPrompt)
		if err != nil {
			logg.Error(ctx, "failed to create assistant chat service", err)
			os.Exit(1)
		}
		logg.Info(ctx, "assistant chat replies enabled")
	}

	var paymentService paymentsvc.Service
	if cfg.Stripe.APIKey != "" {
		stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
		if err != nil {
			logg.Error(ctx, "failed to create stripe client", err)
			os.Exit(1)
		}
		paymentService, err = paymentsvc.NewService(cartStore, stripeClient, cfg.Stripe)
		if err != nil {
			logg.Error(ctx, "failed to create payment service", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Catalog:   catalogService,
			Cart:      cartService,
			Checkout:  checkoutService,
			Purchases: purchaseService,
			Chat:      chatService,
			Payments:  paymentService,
			Pingers:   pingers,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(startCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
