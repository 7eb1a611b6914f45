package middleware

import (
	"net/http"

	"vibe-frontend/internal/config"
	"github.com/rs/cors"
)

// NewCORS builds the CORS layer from the configured origin allowlist. Browser
// credentials (the session cookie) are always allowed; the preflight cache
// window comes from config.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           cfg.Server.CorsMaxAgeSeconds,
	})
	return c.Handler
}
