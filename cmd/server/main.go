package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/config"
	"github.com/GabrielBaezJ/travel-brain/internal/database"
	"github.com/GabrielBaezJ/travel-brain/internal/di"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/middleware"
	"github.com/GabrielBaezJ/travel-brain/internal/redis"
	"github.com/GabrielBaezJ/travel-brain/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		log.Fatal("failed to init telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown telemetry", zap.Error(err))
		}
	}()

	mongo, err := database.NewMongo(ctx, &database.MongoConfig{
		URI:                    cfg.MongoDB.URI,
		Database:               cfg.MongoDB.Database,
		ServerSelectionTimeout: cfg.MongoDB.ServerSelectionTimeout,
		SocketTimeout:          cfg.MongoDB.SocketTimeout,
		MaxRetries:             3,
		RetryInterval:          2 * time.Second,
	})
	if err != nil {
		log.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := mongo.Close(closeCtx); err != nil {
			log.Error("failed to close mongodb", zap.Error(err))
		}
	}()
	log.Info("connected to mongodb", zap.String("database", cfg.MongoDB.Database))

	if err := mongo.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to ensure indexes", zap.Error(err))
	}

	// The session store is only needed when sessions are the auth mode.
	var redisClient *redis.Client
	if cfg.Auth.Mode == config.AuthModeSession {
		redisClient, err = redis.NewClient(ctx, &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))
	}

	container := di.NewContainer(cfg, mongo, redisClient)
	router := setupRouter(cfg, container)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("auth_mode", string(cfg.Auth.Mode)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func setupRouter(cfg *config.Config, c *di.Container) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.App.Name))

	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	requireAuth := middleware.RequireAuth(c.Issuer, cfg.Auth.SessionCookie)
	requireAdmin := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", c.AuthHandler.Register)
			auth.POST("/login", c.AuthHandler.Login)
			auth.GET("/me", requireAuth, c.AuthHandler.Me)
			auth.POST("/logout", requireAuth, c.AuthHandler.Logout)
		}

		trips := api.Group("/trips", requireAuth)
		{
			trips.GET("", c.TripHandler.List)
			trips.POST("", c.TripHandler.Create)
			trips.GET("/:id", c.TripHandler.Get)
			trips.DELETE("/:id", c.TripHandler.Delete)
			trips.GET("/:id/itinerary", c.ItineraryHandler.GetByTrip)
			trips.POST("/:id/itinerary", c.ItineraryHandler.Save)
		}

		itineraries := api.Group("/itineraries", requireAuth)
		{
			itineraries.PUT("/:id", c.ItineraryHandler.Update)
			itineraries.PUT("/:id/days/:n", c.ItineraryHandler.UpdateDay)
			itineraries.DELETE("/:id", c.ItineraryHandler.Delete)
		}

		destinations := api.Group("/destinations")
		{
			destinations.GET("", c.DestinationHandler.List)
			destinations.GET("/:id", c.DestinationHandler.Get)
			destinations.POST("", requireAuth, requireAdmin, c.DestinationHandler.Create)
			destinations.PUT("/:id", requireAuth, requireAdmin, c.DestinationHandler.Update)
			destinations.DELETE("/:id", requireAuth, requireAdmin, c.DestinationHandler.Delete)

			destinations.GET("/:id/ratings/stats", c.DestinationHandler.RatingStats)
			destinations.GET("/:id/ratings", c.DestinationHandler.ListRatings)
			destinations.GET("/:id/ratings/me", requireAuth, c.DestinationHandler.MyRating)
			destinations.POST("/:id/ratings", requireAuth, c.DestinationHandler.Rate)
			destinations.DELETE("/:id/ratings/me", requireAuth, c.DestinationHandler.DeleteRating)
			destinations.POST("/:id/favorite", requireAuth, c.DestinationHandler.ToggleFavorite)
		}

		me := api.Group("/users/me", requireAuth)
		{
			me.GET("/ratings", c.DestinationHandler.MyRatings)
			me.GET("/favorites", c.DestinationHandler.MyFavorites)
			me.GET("/itineraries", c.ItineraryHandler.ListMine)
		}

		routes := api.Group("/routes/favorites", requireAuth)
		{
			routes.GET("", c.RouteHandler.List)
			routes.POST("", c.RouteHandler.Save)
			routes.DELETE("/:id", c.RouteHandler.Delete)
		}

		currency := api.Group("/currency")
		{
			currency.GET("/rates/:base", c.CurrencyHandler.Rates)
			currency.POST("/convert", c.CurrencyHandler.Convert)
			currency.GET("/convert/:amount/:from/:to", c.CurrencyHandler.ConvertPath)
		}

		admin := api.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/metrics", c.AdminHandler.Metrics)
			admin.GET("/users", c.AdminHandler.ListUsers)
			admin.GET("/users/:id", c.AdminHandler.GetUser)
			admin.PATCH("/users/:id/role", c.AdminHandler.SetRole)
			admin.PATCH("/users/:id/status", c.AdminHandler.SetStatus)
			admin.DELETE("/users/:id", c.AdminHandler.DeleteUser)
		}
	}

	return router
}
