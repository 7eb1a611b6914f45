package services

import (
	"context"
	"errors"
	"net/http"

	"vibe-frontend/internal/models"
	"vibe-frontend/internal/upstream"
)

// AuthService relays authentication calls to the backend. Credential checks,
// token signing, and expiry all happen upstream; this layer only moves tokens
// between the backend and the session cookie.
type AuthService struct {
	api *upstream.Client
}

func NewAuthService(api *upstream.Client) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}

	var resp models.TokenResponse
	if err := s.api.JSON(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := s.api.JSON(ctx, http.MethodGet, "/api/v1/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Impersonate exchanges the current session for a token scoped to another
// user. The backend enforces who may impersonate.
func (s *AuthService) Impersonate(ctx context.Context, token string, userID int64) (*models.TokenResponse, error) {
	req := &models.ImpersonateRequest{UserID: userID}
	var resp models.TokenResponse
	if err := s.api.JSON(ctx, http.MethodPost, "/api/v1/auth/impersonate", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopImpersonation swaps an impersonation token back for the
// administrator's own session token.
func (s *AuthService) StopImpersonation(ctx context.Context, token string) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	if err := s.api.JSON(ctx, http.MethodPost, "/api/v1/auth/impersonate/stop", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OAuthExchange forwards an authorization code to the backend, which talks to
// the provider and issues a first-party token.
func (s *AuthService) OAuthExchange(ctx context.Context, provider, code, redirectURI string) (*models.TokenResponse, error) {
	req := &models.OAuthCallbackRequest{Code: code, RedirectURI: redirectURI}
	var resp models.TokenResponse
	if err := s.api.JSON(ctx, http.MethodPost, "/api/v1/auth/oauth/"+provider, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
