package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"vibe-frontend/internal/guard"
	"vibe-frontend/internal/menu"
	"vibe-frontend/internal/models"
	"vibe-frontend/internal/services"
	"vibe-frontend/internal/session"
	"vibe-frontend/templates"
)

// PageHandler renders the app shell for menu-gated pages. The actual screens
// are client-side; the server's job is the access decision and seeding the
// shell with the session's user and menu tree.
type PageHandler struct {
	templates *template.Template
	guard     *guard.Guard
	auth      *services.AuthService
	menus     *services.MenuService
	sessions  *session.Manager
}

func NewPageHandler(g *guard.Guard, auth *services.AuthService, menus *services.MenuService, sessions *session.Manager) *PageHandler {
	// Parse all templates from embedded filesystem
	tmpl := template.Must(template.ParseFS(templates.FS, "*.html"))

	return &PageHandler{
		templates: tmpl,
		guard:     g,
		auth:      auth,
		menus:     menus,
		sessions:  sessions,
	}
}

// LoginPage serves the login page
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "login.html", nil)
}

// UnauthorizedPage serves the permission-denied page
func (h *PageHandler) UnauthorizedPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "unauthorized.html", nil)
}

type shellData struct {
	UserJSON template.JS
	MenuJSON template.JS
	Path     string
}

// AppPage gates the requested page on the menu tree and renders the shell.
// User profile and menu tree are fetched from the backend concurrently.
func (h *PageHandler) AppPage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if !h.guard.RequireMenuAccess(w, r, path) {
		return
	}

	token := h.sessions.Token(r)

	var user *models.User
	var tree []*menu.Node

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		user, err = h.auth.Me(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		tree, err = h.menus.MenuTree(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		// The guard already admitted this session; a failure here means the
		// upstream degraded between the two calls.
		log.Printf("[Page] shell data fetch failed: %v", err)
		http.Redirect(w, r, guard.UnauthorizedPath, http.StatusFound)
		return
	}

	userJSON, _ := json.Marshal(user)
	menuJSON, _ := json.Marshal(tree)

	h.templates.ExecuteTemplate(w, "shell.html", shellData{
		UserJSON: template.JS(userJSON),
		MenuJSON: template.JS(menuJSON),
		Path:     path,
	})
}

// HomePage redirects to the first reachable menu path, or login.
func (h *PageHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.Token(r)
	if token == "" {
		http.Redirect(w, r, guard.LoginPath, http.StatusFound)
		return
	}

	tree, err := h.menus.MenuTree(r.Context(), token)
	if err != nil || len(tree) == 0 {
		http.Redirect(w, r, guard.UnauthorizedPath, http.StatusFound)
		return
	}

	paths := menu.CollectPaths(tree)
	if len(paths) == 0 {
		http.Redirect(w, r, guard.UnauthorizedPath, http.StatusFound)
		return
	}
	http.Redirect(w, r, paths[0], http.StatusFound)
}
