package di

import (
	"github.com/GabrielBaezJ/travel-brain/internal/config"
	"github.com/GabrielBaezJ/travel-brain/internal/database"
	"github.com/GabrielBaezJ/travel-brain/internal/handler"
	"github.com/GabrielBaezJ/travel-brain/internal/redis"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Mongo  *database.MongoDB
	Redis  *redis.Client

	UserRepo        repository.UserRepository
	SessionRepo     repository.SessionRepository
	TripRepo        repository.TripRepository
	DestinationRepo repository.DestinationRepository
	ItineraryRepo   repository.ItineraryRepository
	RatingRepo      repository.RatingRepository
	FavoriteRepo    repository.FavoriteRepository
	RouteRepo       repository.RouteRepository

	Issuer             service.IdentityIssuer
	AuthService        *service.AuthService
	AdminService       *service.AdminService
	TripService        *service.TripService
	DestinationService *service.DestinationService
	ItineraryService   *service.ItineraryService
	RouteService       *service.RouteService
	CurrencyService    *service.CurrencyService

	AuthHandler        *handler.AuthHandler
	AdminHandler       *handler.AdminHandler
	TripHandler        *handler.TripHandler
	DestinationHandler *handler.DestinationHandler
	ItineraryHandler   *handler.ItineraryHandler
	RouteHandler       *handler.RouteHandler
	CurrencyHandler    *handler.CurrencyHandler
	HealthHandler      *handler.HealthHandler
}

// NewContainer wires repositories, services and handlers. redisClient is
// nil in token auth mode, where no session store is needed.
func NewContainer(cfg *config.Config, mongo *database.MongoDB, redisClient *redis.Client) *Container {
	c := &Container{
		Config: cfg,
		Mongo:  mongo,
		Redis:  redisClient,
	}

	db := mongo.Database()
	c.UserRepo = repository.NewMongoUserRepository(db)
	c.TripRepo = repository.NewMongoTripRepository(db)
	c.DestinationRepo = repository.NewMongoDestinationRepository(db)
	c.ItineraryRepo = repository.NewMongoItineraryRepository(db)
	c.RatingRepo = repository.NewMongoRatingRepository(db)
	c.FavoriteRepo = repository.NewMongoFavoriteRepository(db)
	c.RouteRepo = repository.NewMongoRouteRepository(db)

	if cfg.Auth.Mode == config.AuthModeSession {
		c.SessionRepo = repository.NewRedisSessionRepository(redisClient)
		c.Issuer = service.NewSessionIssuer(c.SessionRepo, cfg.Auth.SessionTTL)
	} else {
		c.Issuer = service.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}

	c.AuthService = service.NewAuthService(c.UserRepo, c.Issuer, service.AuthServiceConfig{
		BcryptCost: cfg.Auth.BcryptCost,
	})
	c.AdminService = service.NewAdminService(c.UserRepo, c.DestinationRepo, c.TripRepo, c.ItineraryRepo, c.RouteRepo)
	c.TripService = service.NewTripService(c.TripRepo)
	c.DestinationService = service.NewDestinationService(c.DestinationRepo, c.RatingRepo, c.FavoriteRepo)
	c.ItineraryService = service.NewItineraryService(c.ItineraryRepo, c.TripRepo)
	c.RouteService = service.NewRouteService(c.RouteRepo)
	c.CurrencyService = service.NewCurrencyService(cfg.Currency)

	c.AuthHandler = handler.NewAuthHandler(c.AuthService, cfg.Auth)
	c.AdminHandler = handler.NewAdminHandler(c.AdminService)
	c.TripHandler = handler.NewTripHandler(c.TripService)
	c.DestinationHandler = handler.NewDestinationHandler(c.DestinationService)
	c.ItineraryHandler = handler.NewItineraryHandler(c.ItineraryService)
	c.RouteHandler = handler.NewRouteHandler(c.RouteService)
	c.CurrencyHandler = handler.NewCurrencyHandler(c.CurrencyService)
	c.HealthHandler = handler.NewHealthHandler(mongo, redisClient)

	return c
}
