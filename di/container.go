package di

import (
	"context"
	"fmt"

	"dataset-uploader/api"
	"dataset-uploader/api/targcontrol"
	"dataset-uploader/config"
	"dataset-uploader/dao/redis"
	"dataset-uploader/db"
	"dataset-uploader/server"
	"dataset-uploader/server/handlers"
	services "dataset-uploader/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Settings             config.Settings
	RedisClient          *db.GoRedisClient
	RunLock              services.RunLock
	TargControlFactory   targcontrol.Factory
	DatasetUploadService *services.DatasetUploadService
	BatchHandler         *handlers.BatchHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	UploaderHttpServer   *server.UploaderHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(settings config.Settings, logger *zap.Logger) (*Container, error) {
	logger.Info("initializing container", zap.String("env", settings.Env), zap.String("domain", settings.Domain))

	c := &Container{Settings: settings}

	// Run lock: shared through redis when configured, otherwise per process
	if settings.RedisAddress != "" {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     settings.RedisAddress,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		redisClient, err := db.NewGoRedisClient(context.Background(), redisInternalClient)
		if err != nil {
			redisInternalClient.Close()
			return nil, err
		}
		c.RedisClient = redisClient
		c.RunLock = redis.NewRedisRunLockDAO(redisClient, settings.RunLockTTL)
		logger.Info("using redis run lock", zap.String("address", settings.RedisAddress))
	} else {
		c.RunLock = services.NewLocalRunLock()
		logger.Info("using in-process run lock")
	}

	// TargControl API: a fresh client per run, or the fixture-backed mock
	if settings.Env == "mock" {
		mock, err := targcontrol.NewTargControlApiClientMockFromJSON(
			config.GetResourcePath(config.MOCK_REFERENCE_DATA_RESOURCE))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to load mock reference data: %w", err)
		}
		c.TargControlFactory = func(domain, apiKey string) targcontrol.TargControlAPI { return mock }
		logger.Info("using mock targcontrol api")
	} else {
		c.TargControlFactory = func(domain, apiKey string) targcontrol.TargControlAPI {
			httpClient := api.NewHTTPClient(config.BaseURL(settings.BaseURLFormat, domain), settings.HTTPTimeout)
			return targcontrol.NewTargControlApiClient(httpClient, apiKey)
		}
		logger.Info("using prod targcontrol api")
	}

	c.DatasetUploadService = services.NewDatasetUploadService(c.TargControlFactory, c.RunLock, logger)

	c.BatchHandler = handlers.NewBatchHandler(c.DatasetUploadService, settings, logger)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.BatchHandler, c.MuxRouter)
	c.UploaderHttpServer = server.NewUploaderHttpServer(c.Router, c.MuxRouter, settings.ServerAddress, logger)

	return c, nil
}

// Close releases the redis connection, if any.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
