package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Bentshims/Fastmoney/internal/domain"
)

const principalKey = "principal"

// Claims is the token payload shared between signing (auth service) and
// verification (this middleware).
type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	BusinessID string `json:"business_id"`
	jwt.RegisteredClaims
}

// Auth validates the Bearer token and injects the authenticated principal
// into the request context. Handlers trust it and never re-derive identity.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(
			strings.TrimPrefix(header, "Bearer "),
			&claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			},
		)
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(principalKey, domain.Principal{
			Subject:    claims.Subject,
			Email:      claims.Email,
			Role:       claims.Role,
			BusinessID: claims.BusinessID,
		})
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Auth must run first.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}

// CurrentPrincipal returns the principal set by Auth; the zero value when the
// request is unauthenticated.
func CurrentPrincipal(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}
