package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/console"
	"github.com/monocle-dev/projectdesk/internal/utils"
)

func actorFrom(ctx *gin.Context) (console.Actor, bool) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return console.Actor{}, false
	}

	return console.Actor{UserID: user.ID, IsAdmin: user.IsAdmin, SessionID: user.SessionID}, true
}

// ConsoleEvent hands a browser event to the console. Payloads that do not
// decode are treated as an event where nothing fired.
func (h *Handler) ConsoleEvent(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var event console.Event

	if err := ctx.ShouldBindJSON(&event); err != nil {
		h.log.WithError(err).Debug("Ignoring malformed console event")
		event = console.Event{}
	}

	ctx.JSON(http.StatusOK, h.console.Handle(ctx.Request.Context(), actor, event))
}

func (h *Handler) ConsoleRegions(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, h.console.Navigate(ctx.Request.Context(), actor, ctx.Query("path")))
}
