package models

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// TokenResponse is the backend's answer to any token-issuing call
// (login, OAuth code exchange, impersonation).
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// User is the profile the backend attaches to a session.
type User struct {
	ID         int64    `json:"id"`
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Roles      []string `json:"roles"`
}

// ImpersonateRequest asks the backend to exchange the current session for a
// token scoped to another user.
type ImpersonateRequest struct {
	UserID int64 `json:"user_id"`
}

// OAuthCallbackRequest forwards an authorization code to the backend.
type OAuthCallbackRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}
