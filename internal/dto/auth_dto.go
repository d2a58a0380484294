package dto

// TokenResponse is returned by POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse is the identity payload served by GET /auth/users/me and
// consumed by the other services' remote role gates, so field names are part
// of the cross-service contract.
type MeResponse struct {
	Username string `json:"username"`
	UserRole string `json:"userRole"`
	Disabled bool   `json:"disabled"`
}
