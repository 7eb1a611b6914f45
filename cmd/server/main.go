package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"vibe-frontend/internal/cache"
	"vibe-frontend/internal/config"
	"vibe-frontend/internal/guard"
	"vibe-frontend/internal/handlers"
	"vibe-frontend/internal/health"
	h "vibe-frontend/internal/http"
	"vibe-frontend/internal/middleware"
	"vibe-frontend/internal/services"
	"vibe-frontend/internal/session"
	"vibe-frontend/internal/upstream"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (reference data served uncached)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Upstream API client
	api := upstream.NewClient(cfg.Upstream.BaseURL)
	log.Printf("[Upstream] Proxying to %s", cfg.Upstream.BaseURL)

	// Session cookie manager
	sessions := session.NewManager(cfg)

	// Initialize services
	authService := services.NewAuthService(api)
	menuService := services.NewMenuService(api)

	// Page guard: per-request menu fetch, fail-closed
	pageGuard := guard.New(sessions, menuService)

	// Reference-data cache with explicit TTL + force-refresh policy
	refCache := cache.NewReferenceCache(time.Duration(cfg.Cache.ReferenceTTLMinutes) * time.Minute)

	// Health checker
	healthChecker := health.NewHealthChecker(api)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessions)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessions)
	oauthHandler := handlers.NewOAuthHandler(authService, sessions, cfg)
	menuHandler := handlers.NewMenuHandler(menuService)
	proxyHandler := handlers.NewProxyHandler(api, refCache)
	referenceHandler := handlers.NewReferenceHandler(api, refCache)
	pageHandler := handlers.NewPageHandler(pageGuard, authService, menuService, sessions)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(authHandler, oauthHandler, menuHandler, proxyHandler, referenceHandler, pageHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery, request logging, and CORS
	handler := middleware.PanicRecovery(middleware.RequestLogging(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s (env: %s)", addr, cfg.Server.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
