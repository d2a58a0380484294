package identity

import (
	"context"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const credentialsMsg = "Could not validate credentials"

// LocalProvider verifies tokens issued by this process and re-fetches the
// user row on every call.
type LocalProvider struct {
	secret string
	users  repository.UserRepository
}

func NewLocalProvider(secret string, users repository.UserRepository) *LocalProvider {
	return &LocalProvider{secret: secret, users: users}
}

func (p *LocalProvider) Resolve(ctx context.Context, tokenStr string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(p.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.InvalidToken(credentialsMsg)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, apierror.InvalidToken(credentialsMsg)
	}

	users, err := p.users.FindAllByUsername(ctx, sub)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierror.InvalidToken(credentialsMsg)
	}

	// Cashiers share a username; the first row wins, as in the issuer.
	u := users[0]
	return &Identity{
		UserID:   u.ID,
		Username: sub,
		Role:     u.Role,
		Disabled: u.Disabled,
	}, nil
}
