package app

import (
	"reflectboard/internal/app/health"
	"reflectboard/internal/app/identity"
	"reflectboard/internal/app/post"
	"reflectboard/internal/app/ranking"
	"reflectboard/internal/app/session"
	"reflectboard/internal/config"
	"reflectboard/internal/db"
	"reflectboard/internal/db/seeder"
	"reflectboard/internal/gateways/websocket"
	"reflectboard/internal/providers/redis"
	"reflectboard/internal/router"
	"reflectboard/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus()

	identityRepo := identity.NewRepository(dbConn)
	sessionRepo := session.NewRepository(dbConn)
	postRepo := post.NewRepository(dbConn)

	identityService := identity.NewService(identityRepo, logger)
	sessionService := session.NewService(sessionRepo, eventBus, logger)
	postService := post.NewService(postRepo, sessionService, identityService, redisProvider, eventBus, logger)
	rankingService := ranking.NewService(postRepo, redisProvider, eventBus, logger)

	hub := websocket.NewHub(logger, eventBus, identityService)
	go hub.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	identityHandler := identity.NewHandler(identityService)
	sessionHandler := session.NewHandler(sessionService)
	postHandler := post.NewHandler(postService)
	rankingHandler := ranking.NewHandler(rankingService)

	r := router.NewRouter(logger)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterIdentityRoutes(identityHandler)
	r.RegisterSessionRoutes(sessionHandler)
	r.RegisterPostRoutes(postHandler)
	r.RegisterRankingRoutes(rankingHandler)

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
