package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/realtime"
	"github.com/monocle-dev/projectdesk/internal/services"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/monocle-dev/projectdesk/internal/utils"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// startSession issues a token for a new browser session and sets the
// session cookie.
func (h *Handler) startSession(ctx *gin.Context, user *models.User) bool {
	token, err := h.tokens.Generate(user.ID, uuid.NewString())

	if err != nil {
		h.log.WithError(err).Error("Failed to generate JWT")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	h.setSessionCookie(ctx, token, int(h.tokens.TTL().Seconds()))
	return true
}

func (h *Handler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request")
		return
	}

	user, err := h.accounts.Register(ctx.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if !h.startSession(ctx, user) {
		return
	}

	h.hub.Publish(realtime.GlobalTopic, []types.Region{types.RegionUsersTable})

	ctx.JSON(http.StatusCreated, gin.H{"user": userResponse(user)})
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request")
		return
	}

	user, err := h.accounts.Authenticate(ctx.Request.Context(), req.Login, req.Password)

	if errors.Is(err, apperrors.ErrUnauthorized) {
		ctx.JSON(http.StatusUnauthorized, apperrors.ToResponse(err))
		return
	}

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if !h.startSession(ctx, user) {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func (h *Handler) Logout(ctx *gin.Context) {
	if sessionID, err := utils.GetCurrentSessionID(ctx); err == nil {
		h.console.Sessions().Drop(sessionID)
	}

	h.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: "Logged out successfully"})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
			IsAdmin:  currentUser.IsAdmin,
		},
	})
}

func (h *Handler) UpdateMe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request")
		return
	}

	user, err := h.accounts.UpdateProfile(ctx.Request.Context(), userID, services.UpdateProfileInput{
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
