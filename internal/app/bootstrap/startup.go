// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/coursecms/internal/app/store/users"
	"github.com/dalemusser/coursecms/internal/app/system/authutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting. The context will be cancelled if the process is asked to shut
// down while Startup is running.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedAdminEmail != "" {
		if err := seedAdmin(ctx, deps, appCfg, logger); err != nil {
			logger.Error("failed to seed admin account", zap.Error(err))
			return err
		}
	}
	return nil
}

// seedAdmin creates the configured admin account if it does not exist. An
// existing account keeps its password; the seed password only applies on
// first creation.
func seedAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	if err := authutil.ValidatePassword(appCfg.SeedAdminPassword); err != nil {
		return err
	}
	hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	users := userstore.New(deps.MongoDatabase)
	user, created, err := users.EnsureAdmin(ctx, appCfg.SeedAdminEmail, appCfg.SeedAdminName, hash)
	if err != nil {
		return err
	}

	if created {
		logger.Info("created admin account",
			zap.String("email", user.Email),
			zap.String("user_id", user.ID.Hex()))
	} else {
		logger.Debug("admin account already exists", zap.String("email", user.Email))
	}
	return nil
}
