package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fitlink/api/internal/config"
	"fitlink/api/internal/models"
	"fitlink/api/internal/security"
)

type userLookup interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type tokenLookup interface {
	GetByToken(ctx context.Context, raw string) (models.Token, error)
}

type revocationCheck interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth validates the bearer token three ways: JWT signature and claims, the
// Redis revocation denylist, and the ledger row, which must exist, still be
// active and not be past its expiry date. The resolved user is stored in the
// context for handlers.
func Auth(cfg *config.AppConfig, users userLookup, tokens tokenLookup, denylist revocationCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		raw := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(raw, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if denylist != nil {
			// a denylist error only costs the fast path; the ledger
			// check below still rejects revoked tokens
			if revoked, err := denylist.IsRevoked(c.Request.Context(), raw); err == nil && revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_revoked"})
				return
			}
		}

		ledger, err := tokens.GetByToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_not_found"})
			return
		}
		if !ledger.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_revoked"})
			return
		}
		if ledger.Expired(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_expired"})
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			return
		}

		c.Set("access_token", raw)
		c.Set("access_claims", *claims)
		c.Set("current_user", user)

		c.Next()
	}
}

// CurrentUser returns the acting principal resolved by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get("current_user")
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
