package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const IdentityKey = "identity"

// RequireRoles authenticates the bearer token through the given provider and
// rejects callers whose resolved role is not in the allowed list. The same
// middleware serves both the issuing service (local provider) and the
// downstream services (remote provider).
func RequireRoles(p identity.Provider, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		id, ok := resolveBearer(c, p)
		if !ok {
			return
		}
		if !allowed[id.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.New("Access denied. User does not have the required role."))
			return
		}
		c.Set(IdentityKey, id)
		c.Next()
	}
}

// Authenticated resolves the caller without any role restriction.
func Authenticated(p identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolveBearer(c, p)
		if !ok {
			return
		}
		c.Set(IdentityKey, id)
		c.Next()
	}
}

func resolveBearer(c *gin.Context, p identity.Provider) (*identity.Identity, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Not authenticated"))
		return nil, false
	}
	token := strings.TrimPrefix(header, "Bearer ")

	id, err := p.Resolve(c.Request.Context(), token)
	if err != nil {
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) {
			c.AbortWithStatusJSON(apiErr.Status, apierror.New(apiErr.Detail))
			return nil, false
		}
		log.Error().Err(err).Str("path", c.FullPath()).Msg("identity resolution failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
		return nil, false
	}
	if id.Disabled {
		// Matches the auth service's own /users/me response for a disabled
		// account, so local and remote gating agree.
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Inactive user"))
		return nil, false
	}
	return id, true
}

// GetIdentity retrieves the resolved caller from the Gin context.
func GetIdentity(c *gin.Context) *identity.Identity {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	id, _ := v.(*identity.Identity)
	return id
}
