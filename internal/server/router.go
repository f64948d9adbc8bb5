package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/CATyPH67/shop-api/internal/handlers"
	"github.com/CATyPH67/shop-api/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	CategoryHandler *handlers.CategoryHandler
	ProductHandler  *handlers.ProductHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/categories", cfg.CategoryHandler.List)
	router.GET("/products", cfg.ProductHandler.List)
	router.GET("/product/:id", cfg.ProductHandler.Get)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.GET("/cart", cfg.CartHandler.GetCart)
	protected.POST("/cart/items", cfg.CartHandler.AddLine)
	protected.PUT("/cart/items/:id", cfg.CartHandler.SetLine)
	protected.DELETE("/cart/items/:id", cfg.CartHandler.RemoveLine)
	protected.POST("/order", cfg.OrderHandler.Create)

	return router
}
