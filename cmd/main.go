package main

import (
	"fmt"
	"os"

	"github.com/CATyPH67/shop-api/internal/cache"
	"github.com/CATyPH67/shop-api/internal/data/aggregates"
	"github.com/CATyPH67/shop-api/internal/data/db"
	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/handlers"
	"github.com/CATyPH67/shop-api/internal/middleware"
	"github.com/CATyPH67/shop-api/internal/notify"
	"github.com/CATyPH67/shop-api/internal/platform/envutil"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
	"github.com/CATyPH67/shop-api/internal/server"
	"github.com/CATyPH67/shop-api/internal/services"
)

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Cache
	cacheStore, err := cache.NewRedisStoreFromEnv(log)
	if err != nil {
		log.Warn("Redis init failed, catalog reads are uncached", "error", err)
		cacheStore = nil
	}

	// Repos
	log.Info("Setting up repos...")
	cartRepo := repos.NewCartRepo(thePG, log)
	cartLineRepo := repos.NewCartLineRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	orderLineRepo := repos.NewOrderLineRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	categoryRepo := repos.NewCategoryRepo(thePG, log)
	userRepo := repos.NewUserRepo(thePG, log)

	// Aggregates
	base := aggregates.BaseDeps{DB: thePG, Log: log}
	cartAggregate := aggregates.NewCartAggregate(aggregates.CartAggregateDeps{
		Base:  base,
		Carts: cartRepo,
		Lines: cartLineRepo,
	})
	checkoutAggregate := aggregates.NewCheckoutAggregate(aggregates.CheckoutAggregateDeps{
		Base:       base,
		Carts:      cartRepo,
		Lines:      cartLineRepo,
		Orders:     orderRepo,
		OrderLines: orderLineRepo,
	})

	// Notifications
	var dispatcher notify.Dispatcher
	dispatcher, err = notify.NewSendGridDispatcher(log, notify.SendGridConfigFromEnv())
	if err != nil {
		log.Warn("SendGrid init failed, notifications are log-only", "error", err)
		dispatcher = notify.NewLogDispatcher(log)
	}

	// Services
	log.Info("Setting up services...")
	cartService := services.NewCartService(log, productRepo, cartAggregate)
	checkoutService := services.NewCheckoutService(log, checkoutAggregate, userRepo, dispatcher)
	categoryService := services.NewCategoryService(log, categoryRepo, cacheStore)
	productService := services.NewProductService(log, productRepo, cacheStore)

	// Handlers
	log.Info("Setting up handlers...")
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:  authMiddleware,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		CategoryHandler: categoryHandler,
		ProductHandler:  productHandler,
	})

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
