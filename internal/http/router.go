package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vibe-frontend/internal/handlers"
	"vibe-frontend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	menuHandler *handlers.MenuHandler,
	proxyHandler *handlers.ProxyHandler,
	referenceHandler *handlers.ReferenceHandler,
	pageHandler *handlers.PageHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Serve static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Public pages
	r.HandleFunc("/", pageHandler.HomePage).Methods("GET")
	r.HandleFunc("/login", pageHandler.LoginPage).Methods("GET")
	r.HandleFunc("/unauthorized", pageHandler.UnauthorizedPage).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")

	// OAuth social login (redirect-based, no session yet)
	r.HandleFunc("/oauth/{provider}", oauthHandler.Authorize).Methods("GET")
	r.HandleFunc("/oauth/{provider}/callback", oauthHandler.Callback).Methods("GET")

	// Protected API routes - session info and impersonation
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.RequireSession)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/impersonate", authHandler.Impersonate).Methods("POST")
	authAPI.HandleFunc("/impersonate/stop", authHandler.StopImpersonation).Methods("POST")

	// Protected API routes - menu tree
	menusAPI := r.PathPrefix("/api/menus").Subrouter()
	menusAPI.Use(authMiddleware.RequireSession)
	menusAPI.HandleFunc("", menuHandler.GetMenuTree).Methods("GET")

	// Protected API routes - cached reference data for picker widgets
	referenceAPI := r.PathPrefix("/api/hri/reference").Subrouter()
	referenceAPI.Use(authMiddleware.RequireSession)
	referenceAPI.HandleFunc("", referenceHandler.GetReferenceData).Methods("GET")

	// Protected API routes - resource proxies. Every registered resource gets
	// a pass-through for its whole subtree; grid resources also get /batch.
	for _, route := range handlers.ProxyRoutes() {
		sub := r.PathPrefix(route.LocalPrefix).Subrouter()
		sub.Use(authMiddleware.RequireSession)
		if route.Schema != nil {
			sub.HandleFunc("/batch", proxyHandler.Batch(route)).Methods("POST")
		}
		sub.PathPrefix("").HandlerFunc(proxyHandler.Forward(route)).
			Methods("GET", "POST", "PUT", "PATCH", "DELETE")
	}

	// Menu-gated pages: everything else under the page namespaces renders
	// through the guard.
	for _, prefix := range []string{"/hr", "/pay", "/tim", "/edu", "/out", "/mng"} {
		r.PathPrefix(prefix).HandlerFunc(pageHandler.AppPage).Methods("GET")
	}

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
