// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/coursecms/internal/app/system/indexes"
	"github.com/dalemusser/coursecms/internal/app/system/media"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and initializes the media upload backend.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. Clients land in DBDeps for use by handlers.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	// Initialize the media upload backend
	var uploader media.Uploader
	switch appCfg.MediaHost {
	case "uploadthing":
		uploader, err = media.NewUploadThing(appCfg.UploadThingToken, appCfg.UploadTimeout, appCfg.MaxUploadBytes, logger)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize uploadthing media host: %w", err)
		}
		logger.Info("initialized uploadthing media host",
			zap.Duration("upload_timeout", appCfg.UploadTimeout),
			zap.Int64("max_upload_bytes", appCfg.MaxUploadBytes),
		)
	case "local", "":
		store, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		uploader = media.NewStorageUploader(store, appCfg.MaxUploadBytes, logger)
		logger.Info("initialized local media storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL),
		)
	default:
		return DBDeps{}, fmt.Errorf("unknown media host: %s", appCfg.MediaHost)
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Media:         uploader,
	}, nil
}

// EnsureSchema sets up indexes before Startup and before the HTTP handler is
// built. The context carries a timeout based on coreCfg.IndexBootTimeout.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
