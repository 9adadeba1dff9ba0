package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/auth"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/types"
)

type AuthenticatedUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	SessionID string `json:"-"`
}

// UserLoader resolves the user a token was issued to.
type UserLoader interface {
	GetUser(ctx context.Context, userID uint) (*models.User, error)
}

// tokenFromRequest reads the session cookie, falling back to a Bearer
// Authorization header.
func tokenFromRequest(ctx *gin.Context) (string, bool) {
	if cookie, err := ctx.Cookie(types.TokenCookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

func AuthMiddleware(tokens *auth.TokenManager, users UserLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := tokenFromRequest(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		claims, err := tokens.Verify(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), claims.UserID)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			IsAdmin:   user.IsAdmin,
			SessionID: claims.SessionID,
		})
		ctx.Next()
	}
}
