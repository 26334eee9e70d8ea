package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unclebandit/mailer-backend/internal/config"
	"github.com/unclebandit/mailer-backend/internal/db"
	"github.com/unclebandit/mailer-backend/internal/mailer"
	"github.com/unclebandit/mailer-backend/internal/queue"
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

	emailService := &service.EmailService{
		EmailRepo: &repository.EmailRepository{DB: conn},
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

	consumer, err := queue.Dial(cfg.AMQP.URL, cfg.AMQP.Queue, logger)
	if err != nil {
		logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatal("failed to start consuming", zap.Error(err))
	}

	worker := &queue.Worker{
		Deliveries: msgs,
		Handler:    queue.NotificationHandler(emailService, logger),
		Logger:     logger,
	}

	logger.Info("worker running, waiting for notifications")
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("worker stopped", zap.Error(err))
	}
	logger.Info("worker stopped")
}
