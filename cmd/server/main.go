package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/authgate/backend/internal/config"
	"github.com/authgate/backend/internal/database"
	"github.com/authgate/backend/internal/handlers"
	"github.com/authgate/backend/internal/middleware"
	"github.com/authgate/backend/internal/services"
	"github.com/authgate/backend/internal/stores"
	"github.com/authgate/backend/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()

	var (
		userStore   stores.UserStore
		bannedStore stores.BannedTokenStore
	)
	switch cfg.Store.Backend {
	case "postgres":
		db, err := database.Connect(cfg.Store.DB)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		userStore = stores.NewGormUserStore(db)
		bannedStore = stores.NewGormBannedTokenStore(db)
	case "memory":
		userStore = stores.NewMemoryUserStore()
		bannedStore = stores.NewMemoryBannedTokenStore()
	default:
		log.Fatalf("unknown store backend: %q", cfg.Store.Backend)
	}
	challengeStore := stores.NewMemoryChallengeStore()

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, bannedStore)

	var emailClient services.EmailClient = services.LogEmailClient{}
	if cfg.SMTP.Host != "" {
		emailClient = services.NewSMTPEmailClient(cfg.SMTP)
	}

	authService := services.NewAuthService(userStore, challengeStore, tokenService, emailClient)
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userStore)

	app := fiber.New(fiber.Config{BodyLimit: 1 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/verify-2fa", authHandler.Verify2FA)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/verify-token", authHandler.VerifyToken)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"address": listenAddr,
		"backend": cfg.Store.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
