package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/database"
	"github.com/sandy-the-earth/nfc-backend/internal/auth"
	"github.com/sandy-the-earth/nfc-backend/internal/config"
	"github.com/sandy-the-earth/nfc-backend/internal/email"
	"github.com/sandy-the-earth/nfc-backend/internal/handlers"
	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/routes"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
	"github.com/sandy-the-earth/nfc-backend/internal/storage"
	"github.com/sandy-the-earth/nfc-backend/internal/workers"
)

// Run boots the whole application: config, database, services, HTTP server
// and background workers. Blocks until SIGINT/SIGTERM, then drains.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.DSN, cfg.Server.Env)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	files, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		return err
	}

	var mailer email.Provider
	if cfg.Email.SMTPHost != "" {
		mailer, err = email.NewSMTPProvider(email.Config{
			SMTPHost:  cfg.Email.SMTPHost,
			SMTPPort:  cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.WithError(err).Warn("email disabled, provider setup failed")
			mailer = nil
		}
	}

	svc := services.NewServices(db, cfg, mailer)
	h := handlers.NewHandlers(svc, files, cfg)

	router := gin.New()
	routes.RegisterRoutes(router, h)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := workers.NewSubscriptionWorker(svc.Subscription, time.Hour)
	go worker.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
		return err
	}
	return nil
}

// Main runs the app and exits non-zero on startup failure.
func Main() {
	if err := Run(); err != nil {
		logger.WithError(err).Error("startup failed")
		os.Exit(1)
	}
}
