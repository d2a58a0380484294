package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
)

// RemoteProvider resolves tokens by forwarding them to another service's
// /auth/users/me endpoint. The services do not share an in-process identity,
// so every protected request costs one network round-trip.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteProvider(baseURL string) *RemoteProvider {
	return &RemoteProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *RemoteProvider) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/users/me", nil)
	if err != nil {
		return nil, apierror.Unavailable(fmt.Sprintf("Could not connect to auth service: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// Transport failure is an availability problem, never an
		// authorization verdict.
		return nil, apierror.Unavailable(fmt.Sprintf("Could not connect to auth service: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := "Auth service error"
		var upstream apierror.APIError
		if err := json.NewDecoder(resp.Body).Decode(&upstream); err == nil && upstream.Detail != "" {
			detail = "Auth service error: " + upstream.Detail
		}
		return nil, apierror.Upstream(resp.StatusCode, detail)
	}

	var me dto.MeResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, apierror.Unavailable("Auth service returned an unreadable response")
	}
	return &Identity{
		Username: me.Username,
		Role:     me.UserRole,
		Disabled: me.Disabled,
	}, nil
}
