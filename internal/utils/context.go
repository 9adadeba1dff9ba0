package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/middleware"
	"github.com/monocle-dev/projectdesk/internal/types"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

// GetCurrentUser returns the user AuthMiddleware stored for the request.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	user, ok := value.(middleware.AuthenticatedUser)

	if !ok || user.ID == 0 {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)
	return user.ID, err
}

// GetCurrentSessionID returns the browser session the request's token was
// issued for.
func GetCurrentSessionID(ctx *gin.Context) (string, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return "", err
	}

	if user.SessionID == "" {
		return "", ErrNotAuthenticated
	}

	return user.SessionID, nil
}
