package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aurenecom/storefront-backend/api/routes"
	"github.com/aurenecom/storefront-backend/internal/auth"
	cartsvc "github.com/aurenecom/storefront-backend/internal/cart"
	"github.com/aurenecom/storefront-backend/internal/catalog"
	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/internal/favorites"
	"github.com/aurenecom/storefront-backend/internal/notifications"
	"github.com/aurenecom/storefront-backend/internal/orders"
	"github.com/aurenecom/storefront-backend/internal/push"
	"github.com/aurenecom/storefront-backend/internal/users"
	"github.com/aurenecom/storefront-backend/pkg/auth/session"
	"github.com/aurenecom/storefront-backend/pkg/config"
	"github.com/aurenecom/storefront-backend/pkg/db"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/mailer"
	"github.com/aurenecom/storefront-backend/pkg/metrics"
	"github.com/aurenecom/storefront-backend/pkg/migrate"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
	"github.com/aurenecom/storefront-backend/pkg/redis"
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

	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	usersRepo := users.NewRepository(dbClient.DB())
	customersRepo := customers.NewRepository(dbClient.DB())

	customersService, err := customers.NewService(customersRepo, dbClient, outboxSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	resolver := customers.NewResolver(customersRepo, cfg.Customers.StatusTimeout, logg)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Checkout.CartTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	favoritesStore, err := favorites.NewRedisStore(redisClient, cfg.Checkout.CartTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites store", err)
		os.Exit(1)
	}
	favoritesService, err := favorites.NewService(favoritesStore, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	var emailHooks interface {
		SendOrderConfirmation(ctx context.Context, order *orders.OrderDTO) error
		SendCompanyAlert(ctx context.Context, order *orders.OrderDTO) error
	}
	if cfg.Resend.APIKey != "" {
		mailClient, err := mailer.NewClient(cfg.Resend.APIKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
		notifier, err := notifications.NewEmailNotifier(mailClient, cfg.Resend, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create email notifier", err)
			os.Exit(1)
		}
		emailHooks = notifier
	} else {
		logg.Warn(context.Background(), "resend api key not set, order emails disabled")
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, cartStore, resolver, dbClient, outboxSvc, emailHooks, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		Users:          usersRepo,
		Profiles:       customersRepo,
		Tx:             dbClient,
		Outbox:         outboxSvc,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	var pushSender push.Sender
	if cfg.FCM.ProjectID != "" {
		fcmClient, err := push.NewFCMClient(context.Background(), cfg.FCM)
		if err != nil {
			logg.Error(context.Background(), "failed to create fcm client", err)
			os.Exit(1)
		}
		pushSender = fcmClient
	} else {
		logg.Warn(context.Background(), "fcm project not set, push delivery disabled")
	}
	pushService, err := push.NewService(push.NewRepository(dbClient.DB()), pushSender, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create push service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
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
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Registry:         registry,
			Metrics:          httpMetrics,
			SessionChecker:   sessionManager,
			ApprovalResolver: resolver,
			AuthService:      authService,
			RegisterService:  registerService,
			CatalogService:   catalogService,
			CartService:      cartService,
			Favorites:        favoritesService,
			OrdersService:    ordersService,
			Customers:        customersService,
			PushService:      pushService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
