// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/mailer-backend/internal/config"
	"github.com/unclebandit/mailer-backend/internal/controller"
	"github.com/unclebandit/mailer-backend/internal/db"
	"github.com/unclebandit/mailer-backend/internal/handler"
	"github.com/unclebandit/mailer-backend/internal/mailer"
	"github.com/unclebandit/mailer-backend/internal/repository"
	"github.com/unclebandit/mailer-backend/internal/service"
	"github.com/unclebandit/mailer-backend/internal/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to init logger: ", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, logger); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	transport, err := mailer.New(cfg.Mail, logger)
	if err != nil {
		logger.Fatal("failed to init mail transport", zap.Error(err))
	}

	emailRepo := &repository.EmailRepository{DB: conn}

	emailService := &service.EmailService{
		EmailRepo: emailRepo,
		Templates: &service.TemplateService{
			Provider: service.FSProvider{FS: templates.Open(cfg.TemplateDir)},
			Logger:   logger,
		},
		Transport: transport,
		Settings: service.Settings{
			MailFrom:      cfg.MailFrom,
			OperatorEmail: cfg.OperatorEmail,
		},
		Logger: logger,
	}

	emailController := &controller.EmailController{
		EmailService: emailService,
		Logger:       logger,
	}

	router := handler.NewRouter(
		emailController,
		&handler.HealthHandler{DB: conn},
		cfg.CORSAllowedOrigins,
		logger,
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
