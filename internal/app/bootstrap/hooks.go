// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through DB setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "coursecms", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig, // validate MongoDB URI, token secret, media host
	ConnectDB:      ConnectDB,      // connect to MongoDB, init media backend
	EnsureSchema:   EnsureSchema,   // create indexes
	Startup:        Startup,        // seed the admin account
	BuildHandler:   BuildHandler,   // build the HTTP router + middleware stack
	Shutdown:       Shutdown,       // disconnect MongoDB on shutdown
}
