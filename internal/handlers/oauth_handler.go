package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"vibe-frontend/internal/config"
	"vibe-frontend/internal/services"
	"vibe-frontend/internal/session"
	"vibe-frontend/pkg/utils"
)

// OAuthHandler drives the redirect-based authorization-code flow for social
// login. The CSRF state value lives in a short-lived per-provider cookie; the
// code-for-token exchange happens in the backend.
type OAuthHandler struct {
	Service  *services.AuthService
	Sessions *session.Manager
	cfg      *config.Config
}

func NewOAuthHandler(service *services.AuthService, sessions *session.Manager, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{Service: service, Sessions: sessions, cfg: cfg}
}

// Authorize redirects the browser to the provider's authorize URL.
func (h *OAuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]
	provider, ok := h.cfg.OAuth[name]
	if !ok {
		utils.Detail(w, http.StatusBadRequest, "unknown oauth provider")
		return
	}

	state := uuid.NewString()
	h.Sessions.IssueOAuthState(w, name, state)

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", provider.ClientID)
	q.Set("redirect_uri", provider.RedirectURI)
	q.Set("state", state)
	if provider.Scope != "" {
		q.Set("scope", provider.Scope)
	}

	http.Redirect(w, r, provider.AuthorizeURL+"?"+q.Encode(), http.StatusFound)
}

// Callback verifies the state cookie, exchanges the code via the backend,
// and issues the session cookie.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]
	provider, ok := h.cfg.OAuth[name]
	if !ok {
		utils.Detail(w, http.StatusBadRequest, "unknown oauth provider")
		return
	}

	state := r.URL.Query().Get("state")
	expected := h.Sessions.OAuthState(w, r, name)
	if state == "" || state != expected {
		utils.Detail(w, http.StatusBadRequest, "oauth state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.Detail(w, http.StatusBadRequest, "authorization code missing")
		return
	}

	resp, err := h.Service.OAuthExchange(r.Context(), name, code, provider.RedirectURI)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	h.Sessions.Issue(w, resp.AccessToken, false)
	log.Printf("[OAuth] %s login completed", name)
	http.Redirect(w, r, "/", http.StatusFound)
}
