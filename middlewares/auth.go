package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Deinys/SmartHome-Backend/revocation"
	"github.com/Deinys/SmartHome-Backend/utils"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	ClaimsKey = "token_claims"
)

// AuthMiddleware validates the bearer token from the Authorization header or
// the token query parameter, rejects revoked tokens and stores the caller's
// user id in the context.
func AuthMiddleware(tokens *utils.Tokens, revoked revocation.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		// Browsers cannot set headers on websocket upgrades.
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.Revoked(c.Request.Context(), claims.ID)
			if err != nil {
				slog.Error("revocation lookup failed", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify token"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

func CurrentClaims(c *gin.Context) (utils.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return utils.Claims{}, false
	}
	claims, ok := v.(utils.Claims)
	return claims, ok
}
