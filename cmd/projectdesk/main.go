package main

import (
	"context"

	"github.com/monocle-dev/projectdesk/db"
	"github.com/monocle-dev/projectdesk/internal/auth"
	"github.com/monocle-dev/projectdesk/internal/config"
	"github.com/monocle-dev/projectdesk/internal/console"
	"github.com/monocle-dev/projectdesk/internal/handlers"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/middleware"
	"github.com/monocle-dev/projectdesk/internal/realtime"
	"github.com/monocle-dev/projectdesk/internal/router"
	"github.com/monocle-dev/projectdesk/internal/services"
	"github.com/monocle-dev/projectdesk/internal/store"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		logging.Logger.Fatalf("Error loading configuration: %v", err)
	}

	if err := logging.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		logging.Logger.Fatalf("Invalid log configuration: %v", err)
	}

	log := logging.For("main")

	conn, err := db.ConnectDatabase(cfg.DatabaseDriver, cfg.DatabaseURL)

	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.MigrateDatabase(conn); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	repo := store.NewRepository(conn, store.BreakerSettings{
		Timeout:             cfg.BreakerTimeout,
		ConsecutiveFailures: cfg.BreakerFailures,
	})

	projects := services.NewProjectService(repo)
	users := services.NewUserService(repo)
	accounts := services.NewAccountService(repo)

	if cfg.AdminUsername != "" {
		admin, err := accounts.EnsureAdmin(context.Background(), services.RegisterInput{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		})

		if err != nil {
			log.WithError(err).Fatal("Failed to bootstrap administrator")
		}

		log.WithField("user_id", admin.ID).Info("Administrator account ready")
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	if err != nil {
		log.WithError(err).Fatal("Failed to initialize tokens")
	}

	hub := realtime.NewHub(cfg.Origins())
	bridge := console.NewBridge(projects, users, console.NewSessions(tokens.TTL()), hub)

	h := handlers.New(handlers.Options{
		Projects: projects,
		Users:    users,
		Accounts: accounts,
		Console:  bridge,
		Hub:      hub,
		Tokens:   tokens,
		Database: repo,
		Cookie: handlers.CookieOptions{
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure,
		},
	})

	r := router.NewRouter(cfg.Origins(), h, middleware.AuthMiddleware(tokens, users))

	log.WithField("port", cfg.Port).Info("Starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
