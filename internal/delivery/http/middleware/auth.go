package middleware

import (
	"net/http"

	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/response"
	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

const (
	identityKey  = "identity"
	userIDKey    = "user_id"
	requestIDKey = "request_id"
)

type AuthMiddleware struct {
	resolver auth.IdentityResolver
}

func NewAuthMiddleware(resolver auth.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAuth rejects the request with 401 before any handler runs when no
// identity can be resolved.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolver.Resolve(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized())
			return
		}

		c.Set(identityKey, identity)
		c.Set(userIDKey, identity.ID)
		c.Next()
	}
}

// GetIdentity returns the identity stored by RequireAuth.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// SetIdentity stores identity on the context. Tests use it to bypass token
// verification.
func SetIdentity(c *gin.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
	c.Set(userIDKey, identity.ID)
}
