// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/coursecms/internal/app/system/media"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "COURSECMS"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_token_secret, etc.
//   - Environment variables: COURSECMS_MONGO_URI, COURSECMS_AUTH_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --auth_token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coursecms", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Admin token configuration
	{Name: "auth_token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Admin token signing secret (32+ chars in production)"},
	{Name: "auth_token_ttl", Default: "24h", Desc: "Admin token lifetime (e.g., 24h, 12h, 30m)"},

	// Media host configuration
	{Name: "media_host", Default: "local", Desc: "Media backend: 'uploadthing' or 'local'"},
	{Name: "uploadthing_token", Default: "", Desc: "UploadThing credential token (required when media_host is 'uploadthing')"},
	{Name: "upload_timeout", Default: "60s", Desc: "Per-upload deadline against the media host"},
	{Name: "max_upload_bytes", Default: int(media.MaxUploadBytes), Desc: "Image size cap in bytes (default: 5 MiB)"},

	// Local storage configuration
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded images"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},

	{Name: "dev", Default: false, Desc: "Append error details to 5xx response messages"},

	// Admin seeding configuration
	{Name: "seed_admin_email", Default: "", Desc: "Email of admin account to create on startup"},
	{Name: "seed_admin_name", Default: "Admin", Desc: "Name of admin account to create on startup"},
	{Name: "seed_admin_password", Default: "", Desc: "Initial password for the seeded admin account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthTokenSecret: appValues.String("auth_token_secret"),
		AuthTokenTTL:    appValues.Duration("auth_token_ttl", 24*time.Hour),

		MediaHost:        appValues.String("media_host"),
		UploadThingToken: appValues.String("uploadthing_token"),
		UploadTimeout:    appValues.Duration("upload_timeout", media.DefaultUploadTimeout),
		MaxUploadBytes:   int64(appValues.Int("max_upload_bytes")),

		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		Dev: appValues.Bool("dev"),

		SeedAdminEmail:    appValues.String("seed_admin_email"),
		SeedAdminName:     appValues.String("seed_admin_name"),
		SeedAdminPassword: appValues.String("seed_admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.AuthTokenSecret) < auth.MinSecretLength {
		return fmt.Errorf("auth_token_secret must be at least %d characters", auth.MinSecretLength)
	}

	switch appCfg.MediaHost {
	case "local":
		// nothing to check; the storage path is created on demand
	case "uploadthing":
		if appCfg.UploadThingToken == "" {
			return fmt.Errorf("uploadthing_token is required when media_host is 'uploadthing'")
		}
	default:
		return fmt.Errorf("media_host must be 'uploadthing' or 'local', got %q", appCfg.MediaHost)
	}

	if appCfg.SeedAdminEmail != "" && appCfg.SeedAdminPassword == "" {
		return fmt.Errorf("seed_admin_password is required when seed_admin_email is set")
	}

	return nil
}
