package di

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"

	"geocache-finder/api"
	"geocache-finder/api/flickr"
	"geocache-finder/config"
	"geocache-finder/dao/redis"
	"geocache-finder/db"
	"geocache-finder/logger"
	services "geocache-finder/service"
	"geocache-finder/server"
	"geocache-finder/server/handlers"
)

// Container holds all application dependencies.
type Container struct {
	Config               *config.Config
	Store                *db.SQLStore
	RedisClient          db.RedisClient
	RedisPhotoDao        *redis.RedisPhotoDAO
	FlickrAPI            flickr.FlickrAPI
	GeocacheQueryService *services.GeocacheQueryService
	PhotoService         *services.PhotoService
	GeocacheHandler      *handlers.GeocacheHandler
	PhotoHandler         *handlers.PhotoHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	GeocacheHttpServer   *server.GeocacheHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.L().Info("initializing_container", "env", cfg.Env, "store", cfg.DBDriver)
	c := &Container{Config: cfg}

	// The store is not pinged here: a down database fails individual searches
	// with a connection error instead of keeping the server from starting.
	store, err := db.OpenSQLStore(cfg)
	if err != nil {
		return nil, err
	}
	c.Store = store
	c.closers = append(c.closers, store.Close)

	geocacheQueryService, err := services.NewGeocacheQueryService(store, cfg.StoreQueryTimeout)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.GeocacheQueryService = geocacheQueryService

	// Redis only backs the photo cache, so running without it is fine.
	redisClient, err := db.OpenCacheRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	switch {
	case err != nil:
		logger.L().Warn("photo_cache_disabled", "err", err)
	case redisClient != nil:
		c.RedisClient = redisClient
		c.RedisPhotoDao = redis.NewRedisPhotoDAO(redisClient, cfg.PhotoCacheTTL)
		c.closers = append(c.closers, redisClient.Close)
	default:
		logger.L().Info("photo_cache_disabled", "reason", "REDIS_ADDR not set")
	}

	if cfg.Env != "prod" && cfg.FlickrAPIKey == "" {
		logger.L().Info("using_mock_flickr_api")
		c.FlickrAPI = flickr.NewFlickrApiClientMock()
	} else {
		c.FlickrAPI = flickr.NewFlickrApiClient(api.NewHTTPClient(cfg.FlickrEndpoint, cfg.FlickrTimeout), cfg.FlickrAPIKey)
	}
	c.PhotoService = services.NewPhotoService(c.RedisPhotoDao, c.FlickrAPI)

	c.GeocacheHandler = handlers.NewGeocacheHandler(geocacheQueryService, cfg.ExposeErrorDetails)
	c.PhotoHandler = handlers.NewPhotoHandler(c.PhotoService)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.GeocacheHandler, c.PhotoHandler, c.MuxRouter)
	c.GeocacheHttpServer = server.NewGeocacheHttpServer(c.Router, c.MuxRouter, cfg.ListenAddr())

	return c, nil
}

// Close releases the store pool and the redis client.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close: %w", err)
		}
	}
	c.closers = nil
	return firstErr
}
