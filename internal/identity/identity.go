// Package identity resolves bearer tokens into (username, role, disabled)
// triples. The issuing service resolves tokens in-process against its own
// database; the other services resolve them by calling the auth service over
// HTTP. Handlers are agnostic to which provider is in play.
package identity

import "context"

// Identity is the resolved caller backing every authorization decision.
// Role and Disabled always reflect current storage, never token claims, so
// disabling a user takes effect on their very next request.
type Identity struct {
	UserID   uint
	Username string
	Role     string
	Disabled bool
}

type Provider interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}
