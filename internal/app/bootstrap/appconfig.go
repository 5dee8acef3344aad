// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level and format, CORS, request body limits). AppConfig is
// everything specific to this application: the MongoDB connection, the admin
// token secret, the media host, and the seed admin account.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin token configuration
	AuthTokenSecret string        // Signing secret for admin bearer tokens (32+ chars in production)
	AuthTokenTTL    time.Duration // Token lifetime (default: 24h)

	// Media host configuration
	// MediaHost selects the upload backend: "uploadthing" or "local".
	MediaHost        string
	UploadThingToken string        // Credential token for the UploadThing-compatible host
	UploadTimeout    time.Duration // Per-upload deadline against the media host (default: 60s)
	MaxUploadBytes   int64         // Image size cap in bytes (default: 5 MiB)

	// Local storage configuration (only used if MediaHost is "local")
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// Dev mode appends underlying error details to 5xx response messages.
	Dev bool

	// Admin seeding configuration
	SeedAdminEmail    string // Email of the admin account to create on startup (if set)
	SeedAdminName     string // Name of the admin account to create on startup
	SeedAdminPassword string // Initial password for the seeded admin account
}
