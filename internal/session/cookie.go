package session

import (
	"net/http"
	"time"

	"vibe-frontend/internal/config"
)

// Manager owns the vibe_hr_token session cookie: HTTP-only, SameSite=Lax,
// Secure in production. The token itself is issued and signed by the backend;
// this layer only transports it.
type Manager struct {
	cfg *config.Config
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Issue sets the session cookie. rememberMe stretches the lifetime from the
// default 480 minutes to 30 days (both configurable).
func (m *Manager) Issue(w http.ResponseWriter, token string, rememberMe bool) {
	maxAge := time.Duration(m.cfg.Session.MaxAgeMinutes) * time.Minute
	if rememberMe {
		maxAge = time.Duration(m.cfg.Session.RememberMeDays) * 24 * time.Hour
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Token extracts the bearer token from the request's session cookie.
// An absent cookie yields an empty token.
func (m *Manager) Token(r *http.Request) string {
	c, err := r.Cookie(m.cfg.Session.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// IssueOAuthState sets the short-lived CSRF state cookie for one provider.
func (m *Manager) IssueOAuthState(w http.ResponseWriter, provider, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     OAuthStateCookie(provider),
		Value:    state,
		Path:     "/",
		MaxAge:   m.cfg.Session.StateMaxAgeSecs,
		HttpOnly: true,
		Secure:   m.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// OAuthState reads and expires the state cookie for one provider.
func (m *Manager) OAuthState(w http.ResponseWriter, r *http.Request, provider string) string {
	name := OAuthStateCookie(provider)
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return c.Value
}

// OAuthStateCookie returns the per-provider state cookie name.
func OAuthStateCookie(provider string) string {
	return "vibe_hr_oauth_state_" + provider
}
