// Package apicors provides CORS middleware for the JSON API.
//
// The API authenticates with bearer tokens, not cookies, so there are no
// credentials for a cross-origin page to ride on: origins can be "*" and
// AllowCredentials stays off. The admin SPA and the public marketing pages
// both call the API from whatever origin they are served on.
package apicors

import (
	"net/http"
)

// Middleware returns permissive CORS middleware for token-authenticated
// JSON endpoints. Preflight OPTIONS requests are answered directly.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
