package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/api"
	"github.com/studyabroad/cms-api/config"
	"github.com/studyabroad/cms-api/database"
	admin_handlers "github.com/studyabroad/cms-api/handlers/admin"
	"github.com/studyabroad/cms-api/router"
	"github.com/studyabroad/cms-api/services/storage"
	"github.com/studyabroad/cms-api/utils"
	"github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/cache"
	"github.com/studyabroad/cms-api/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	utils.SetupLogger(env.GO_ENV)

	if env.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	// Initialize GORM database connection
	store, err := database.StartGORM(env)
	if err != nil {
		log.Error().Msg("check whether Postgres is running and DATABASE_URL / DB_* are set")
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		return err
	}

	// Redis only backs login lockouts; without it logins are not throttled.
	var attempts middleware.AttemptStore
	redisCache, err := cache.NewRedisCache(context.Background(), env.REDIS_URL, "cms:")
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, brute force protection disabled")
	} else {
		defer redisCache.Close()
		attempts = redisCache
	}

	var media admin_handlers.ImageStore
	spacesConfig := storage.SpacesConfig{
		AccessKey: env.SPACES_ACCESS_KEY,
		SecretKey: env.SPACES_SECRET_KEY,
		Bucket:    env.SPACES_BUCKET,
		Region:    env.SPACES_REGION,
		Endpoint:  env.SPACES_ENDPOINT,
		CDNURL:    env.SPACES_CDN_URL,
	}
	if spacesConfig.Enabled() {
		client, err := storage.NewSpacesClient(spacesConfig)
		if err != nil {
			return err
		}
		media = client
	} else {
		log.Warn().Msg("media storage not configured, uploads disabled")
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT))

	// Setup Routes
	router.SetupRoutes(server.GetEngine(), store, router.Options{
		JWTManager: auth.NewJWTManager(auth.JWTConfig{
			Secret: env.JWT_SECRET,
			Expiry: env.JWT_EXPIRY,
			Issuer: env.JWT_ISSUER,
		}),
		Attempts:          attempts,
		Media:             media,
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   env.RATE_LIMIT_WINDOW,
	})

	return server.Run()
}
