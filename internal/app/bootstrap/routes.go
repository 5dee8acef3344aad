// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	authapifeature "github.com/dalemusser/coursecms/internal/app/features/authapi"
	careersfeature "github.com/dalemusser/coursecms/internal/app/features/careers"
	contactsfeature "github.com/dalemusser/coursecms/internal/app/features/contacts"
	enrollapifeature "github.com/dalemusser/coursecms/internal/app/features/enrollapi"
	enrollcoursesfeature "github.com/dalemusser/coursecms/internal/app/features/enrollcourses"
	healthfeature "github.com/dalemusser/coursecms/internal/app/features/health"
	homecontentfeature "github.com/dalemusser/coursecms/internal/app/features/homecontent"
	homecoursesfeature "github.com/dalemusser/coursecms/internal/app/features/homecourses"
	homeservicesfeature "github.com/dalemusser/coursecms/internal/app/features/homeservices"
	servicecontentfeature "github.com/dalemusser/coursecms/internal/app/features/servicecontent"
	statsapifeature "github.com/dalemusser/coursecms/internal/app/features/statsapi"
	sitestatsstore "github.com/dalemusser/coursecms/internal/app/store/sitestats"
	userstore "github.com/dalemusser/coursecms/internal/app/store/users"
	"github.com/dalemusser/coursecms/internal/app/system/apicors"
	"github.com/dalemusser/coursecms/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The API is token-authenticated JSON throughout: reads of site content are
// public, lead submissions are public, everything else requires an admin
// bearer token. CORS is permissive on /api since no cookies are involved.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.AuthTokenSecret, appCfg.AuthTokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}
	requireAdmin := tokens.RequireAdmin

	dev := appCfg.Dev || coreCfg.Env == "dev"

	statsStore := sitestatsstore.New(deps.MongoDatabase)
	users := userstore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Global middleware. CORS must be early in the chain to handle preflight
	// requests; security headers apply everywhere.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Content and lead API
	r.Route("/api", func(r chi.Router) {
		r.Use(apicors.Middleware())

		r.Mount("/auth", authapifeature.Routes(
			authapifeature.NewHandler(users, tokens, logger), requireAdmin))

		r.Mount("/home-content", homecontentfeature.Routes(
			homecontentfeature.NewHandler(deps.MongoDatabase, deps.Media, logger, dev), requireAdmin))
		r.Mount("/home-courses", homecoursesfeature.Routes(
			homecoursesfeature.NewHandler(deps.MongoDatabase, logger, dev), requireAdmin))
		r.Mount("/home-services", homeservicesfeature.Routes(
			homeservicesfeature.NewHandler(deps.MongoDatabase, deps.Media, logger, dev), requireAdmin))
		r.Mount("/services", servicecontentfeature.Routes(
			servicecontentfeature.NewHandler(deps.MongoDatabase, deps.Media, logger, dev), requireAdmin))
		r.Mount("/careers", careersfeature.Routes(
			careersfeature.NewHandler(deps.MongoDatabase, deps.Media, logger, dev), requireAdmin))

		r.Mount("/contact", contactsfeature.Routes(
			contactsfeature.NewHandler(deps.MongoDatabase, logger, dev), requireAdmin))
		r.Mount("/enroll", enrollapifeature.Routes(
			enrollapifeature.NewHandler(deps.MongoDatabase, statsStore, logger, dev), requireAdmin, logger))
		r.Mount("/enroll-courses", enrollcoursesfeature.Routes(
			enrollcoursesfeature.NewHandler(deps.MongoDatabase, logger, dev), requireAdmin))

		r.Mount("/stats", statsapifeature.Routes(
			statsapifeature.NewHandler(statsStore, logger), requireAdmin))
	})

	// Health checks and Kubernetes probes
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	return r, nil
}
