package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movigo/internal/handler"
	"movigo/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	StationHandler   *handler.StationHandler
	TransportHandler *handler.TransportHandler
	UserHandler      *handler.UserHandler
	RentalHandler    *handler.RentalHandler
	PaymentHandler   *handler.PaymentHandler
	PricingHandler   *handler.PricingHandler
	SessionHandler   *handler.SessionHandler
	StatsHandler     *handler.StatsHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
	Logger           *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		stations := v1.Group("/stations")
		{
			stations.POST("", deps.StationHandler.Create)
			stations.GET("", deps.StationHandler.GetAll)
			stations.GET("/:id", deps.StationHandler.Get)
			stations.PATCH("/:id", deps.StationHandler.Update)
			stations.DELETE("/:id", deps.StationHandler.Delete)
		}

		transports := v1.Group("/transports")
		{
			transports.POST("", deps.TransportHandler.Create)
			transports.GET("", deps.TransportHandler.GetAll)
			transports.GET("/:id", deps.TransportHandler.Get)
			transports.PATCH("/:id", deps.TransportHandler.Update)
			transports.DELETE("/:id", deps.TransportHandler.Delete)
		}

		users := v1.Group("/users")
		{
			users.POST("", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id", deps.UserHandler.Get)
			users.PATCH("/:id", deps.UserHandler.Update)
			users.DELETE("/:id", deps.UserHandler.Delete)
		}

		rentals := v1.Group("/rentals")
		{
			rentals.POST("", deps.RentalHandler.Create)
			rentals.GET("", deps.RentalHandler.GetAll)
			rentals.GET("/:id", deps.RentalHandler.Get)
			rentals.POST("/:id/finalize", deps.RentalHandler.Finalize)
			rentals.POST("/:id/cancel", deps.RentalHandler.Cancel)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", deps.PaymentHandler.Record)
			payments.GET("", deps.PaymentHandler.GetAll)
			payments.GET("/:id", deps.PaymentHandler.Get)
			payments.POST("/:id/process", deps.PaymentHandler.Process)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.POST("", deps.PricingHandler.Quote)
			quotes.POST("/overtime", deps.PricingHandler.Overtime)
		}

		v1.GET("/tariffs", deps.PricingHandler.Tariffs)

		cart := v1.Group("/cart")
		{
			cart.GET("", deps.PricingHandler.GetCart)
			cart.DELETE("", deps.PricingHandler.ClearCart)
			cart.POST("/items", deps.PricingHandler.AddCartItem)
			cart.DELETE("/items/:id", deps.PricingHandler.RemoveCartItem)
		}

		session := v1.Group("/session")
		{
			session.POST("", deps.SessionHandler.Start)
			session.GET("", deps.SessionHandler.Current)
			session.DELETE("", deps.SessionHandler.End)
		}

		stats := v1.Group("/stats")
		{
			stats.GET("", deps.StatsHandler.Summary)
			stats.GET("/stations", deps.StatsHandler.Stations)
			stats.GET("/transports", deps.StatsHandler.Transports)
			stats.GET("/users", deps.StatsHandler.Users)
			stats.GET("/rentals", deps.StatsHandler.Rentals)
			stats.GET("/payments", deps.StatsHandler.Payments)
		}
	}

	return router
}
