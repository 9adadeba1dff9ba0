package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/realtime"
	"github.com/monocle-dev/projectdesk/internal/utils"
)

func (h *Handler) WebSocket(c *gin.Context) {
	h.hub.Serve(c.Writer, c.Request, realtime.GlobalTopic)
}

// ProjectWebSocket subscribes to the invalidations of one project.
func (h *Handler) ProjectWebSocket(c *gin.Context) {
	projectID, err := utils.GetProjectID(c)

	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if _, err := h.projects.GetProject(c.Request.Context(), projectID); err != nil {
		h.respondError(c, err)
		return
	}

	h.hub.Serve(c.Writer, c.Request, realtime.ProjectTopic(projectID))
}
