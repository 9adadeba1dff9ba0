package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/monocle-dev/projectdesk/internal/utils"
	"github.com/monocle-dev/projectdesk/internal/views"
)

func (h *Handler) ListUsers(ctx *gin.Context) {
	actingID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.users.AdminListUsers(ctx.Request.Context(), actingID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, views.UsersTable(users, actingID))
}

func (h *Handler) PromoteUser(ctx *gin.Context) {
	actingID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	if err := h.users.PromoteUserToAdmin(ctx.Request.Context(), actingID, userID); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionPromoteUser)

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: "User promoted to admin successfully"})
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	actingID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	memberOf, err := h.users.DeleteUser(ctx.Request.Context(), actingID, userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionDeleteUser, memberOf...)

	ctx.Status(http.StatusNoContent)
}
