package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/monocle-dev/projectdesk/internal/utils"
	"github.com/monocle-dev/projectdesk/internal/views"
)

type CreateProjectRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
}

type CloseProjectRequest struct {
	EndDate string `json:"end_date" binding:"required"`
}

type AddMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request")
		return
	}

	startDate, err := types.ParseDate(req.StartDate)

	if err != nil {
		h.respondError(ctx, apperrors.Validation("start_date", "Start date must be a valid date (YYYY-MM-DD)"))
		return
	}

	projectID, err := h.projects.CreateProject(ctx.Request.Context(), userID, req.Name, startDate)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionCreateProject, projectID)

	ctx.JSON(http.StatusCreated, gin.H{"id": projectID})
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	managed, err := h.projects.ListManagedProjects(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	member, err := h.projects.ListMemberProjects(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"managed": views.ProjectsTable(managed, true),
		"member":  views.ProjectsTable(member, false),
	})
}

func (h *Handler) GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	project, err := h.projects.GetProject(ctx.Request.Context(), projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project": views.ProjectDetail(project, userID),
		"members": views.MemberList(project, userID),
	})
}

func (h *Handler) ListCandidates(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	project, err := h.projects.GetProject(ctx.Request.Context(), projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	users, err := h.users.ListAllUsers(ctx.Request.Context())

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, views.CandidateList(project, users))
}

func (h *Handler) CloseProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	var req CloseProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request")
		return
	}

	endDate, err := types.ParseDate(req.EndDate)

	if err != nil {
		h.respondError(ctx, apperrors.Validation("end_date", "End date must be a valid date (YYYY-MM-DD)"))
		return
	}

	if err := h.projects.CloseProject(ctx.Request.Context(), userID, projectID, endDate); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionCloseProject, projectID)

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: "Project closed successfully"})
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	if err := h.projects.DeleteProject(ctx.Request.Context(), userID, projectID); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionDeleteProject, projectID)

	ctx.Status(http.StatusNoContent)
}

func (h *Handler) AddMember(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	var req AddMemberRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request")
		return
	}

	if err := h.projects.AddMember(ctx.Request.Context(), userID, projectID, req.UserID); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionAddMember, projectID)

	ctx.JSON(http.StatusCreated, types.MessageResponse{Message: "Member added successfully"})
}

func (h *Handler) RemoveMember(ctx *gin.Context) {
	actingID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, userID, err := utils.GetProjectUserID(ctx)

	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	if err := h.projects.RemoveMember(ctx.Request.Context(), actingID, projectID, userID); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.console.Announce(types.ActionRemoveMember, projectID)

	ctx.Status(http.StatusNoContent)
}
