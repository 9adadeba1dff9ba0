package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/projectdesk/internal/handlers"
	"github.com/monocle-dev/projectdesk/internal/middleware"
)

func NewRouter(origins []string, h *handlers.Handler, requireAuth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/ws", requireAuth, h.WebSocket)
		api.GET("/ws/:project_id", requireAuth, h.ProjectWebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", requireAuth, h.Logout)
			auth.GET("/me", requireAuth, h.Me)
			auth.PATCH("/me", requireAuth, h.UpdateMe)
		}

		users := api.Group("/users", requireAuth)
		{
			users.GET("", h.ListUsers)
			users.POST("/:user_id/promote", h.PromoteUser)
			users.DELETE("/:user_id", h.DeleteUser)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:project_id", h.GetProject)
			projects.GET("/:project_id/candidates", h.ListCandidates)
			projects.POST("/:project_id/close", h.CloseProject)
			projects.DELETE("/:project_id", h.DeleteProject)

			// Membership endpoints
			projects.POST("/:project_id/members", h.AddMember)
			projects.DELETE("/:project_id/members/:user_id", h.RemoveMember)
		}

		consoleGroup := api.Group("/console", requireAuth)
		{
			consoleGroup.POST("/events", h.ConsoleEvent)
			consoleGroup.GET("/regions", h.ConsoleRegions)
		}
	}

	return r
}
