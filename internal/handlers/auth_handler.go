package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vibe-frontend/internal/middleware"
	"vibe-frontend/internal/models"
	"vibe-frontend/internal/services"
	"vibe-frontend/internal/session"
	"vibe-frontend/internal/upstream"
	"vibe-frontend/pkg/utils"
)

type AuthHandler struct {
	Service  *services.AuthService
	Sessions *session.Manager
}

func NewAuthHandler(service *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{Service: service, Sessions: sessions}
}

// Login forwards credentials to the backend and stores the issued token in
// the session cookie. remember_me stretches the cookie lifetime.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.Detail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	h.Sessions.Issue(w, resp.AccessToken, req.RememberMe)
	log.Printf("[Auth] login: %s", req.Username)
	utils.JSON(w, http.StatusOK, resp.User)
}

// Logout clears the session cookie. The backend token simply expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	utils.JSON(w, http.StatusOK, map[string]string{"detail": "logged out"})
}

// Me returns the backend's profile for the current session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())

	user, err := h.Service.Me(r.Context(), token)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// Impersonate exchanges the session for a token scoped to another user and
// re-issues the cookie with the standard lifetime.
func (h *AuthHandler) Impersonate(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())

	var req models.ImpersonateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		utils.Detail(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp, err := h.Service.Impersonate(r.Context(), token, req.UserID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	h.Sessions.Issue(w, resp.AccessToken, false)
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		log.Printf("[Auth] user %d impersonating user %d", claims.UserID, req.UserID)
	}
	utils.JSON(w, http.StatusOK, resp.User)
}

// StopImpersonation swaps back to the administrator's own token.
func (h *AuthHandler) StopImpersonation(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())

	resp, err := h.Service.StopImpersonation(r.Context(), token)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	h.Sessions.Issue(w, resp.AccessToken, false)
	utils.JSON(w, http.StatusOK, resp.User)
}

// writeUpstreamError maps a service error to the structured {detail} surface:
// the upstream's own status when it answered, 502 when it was unreachable.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Detail
		if detail == "" {
			detail = http.StatusText(apiErr.Status)
		}
		utils.Detail(w, apiErr.Status, detail)
		return
	}
	utils.Detail(w, http.StatusBadGateway, "upstream unreachable")
}
