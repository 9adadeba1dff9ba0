package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/auth"
	"github.com/monocle-dev/projectdesk/internal/console"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/realtime"
	"github.com/monocle-dev/projectdesk/internal/services"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CookieOptions struct {
	Domain string
	Secure bool
}

type Options struct {
	Projects *services.ProjectService
	Users    *services.UserService
	Accounts *services.AccountService
	Console  *console.Bridge
	Hub      *realtime.Hub
	Tokens   *auth.TokenManager
	Database Pinger
	Cookie   CookieOptions
}

type Handler struct {
	projects *services.ProjectService
	users    *services.UserService
	accounts *services.AccountService
	console  *console.Bridge
	hub      *realtime.Hub
	tokens   *auth.TokenManager
	database Pinger
	cookie   CookieOptions
	log      *logrus.Entry
}

func New(opts Options) *Handler {
	return &Handler{
		projects: opts.Projects,
		users:    opts.Users,
		accounts: opts.Accounts,
		console:  opts.Console,
		hub:      opts.Hub,
		tokens:   opts.Tokens,
		database: opts.Database,
		cookie:   opts.Cookie,
		log:      logging.For("handlers"),
	}
}

// respondError writes err with the status of its kind. Internal failures
// are logged and rendered without their cause.
func (h *Handler) respondError(ctx *gin.Context, err error) {
	if !apperrors.IsDomain(err) {
		h.log.WithError(err).
			WithField("request_id", ctx.GetString(types.ContextRequestKey)).
			Error("Request failed")
		_ = ctx.Error(err)
	}

	ctx.JSON(apperrors.StatusCode(err), apperrors.ToResponse(err))
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}
