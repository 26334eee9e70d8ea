// internal/service/email_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/mailer-backend/internal/mailer"
	"github.com/unclebandit/mailer-backend/internal/model"
	"github.com/unclebandit/mailer-backend/internal/repository"
)

// MailTransport is the only capability the send pipeline needs from a mailer.
type MailTransport interface {
	Deliver(ctx context.Context, msg mailer.Message) error
}

// Settings are the sender addresses resolved from configuration.
type Settings struct {
	// MailFrom is the sender for portfolio contact emails.
	MailFrom string
	// OperatorEmail is both sender and recipient of deployment notifications.
	OperatorEmail string
}

type EmailService struct {
	EmailRepo repository.EmailRepositoryInterface
	Templates *TemplateService
	Transport MailTransport
	Settings  Settings
	Logger    *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Send validates req, builds the email for its variant and runs it through
// SendEmail. Template failures are returned before any delivery attempt.
func (s *EmailService) Send(ctx context.Context, req Request) (*model.Email, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email, err := req.build(s)
	if err != nil {
		return nil, err
	}
	return s.SendEmail(ctx, email)
}

func (s *EmailService) SendPortfolioEmail(ctx context.Context, req PortfolioRequest) (*model.Email, error) {
	s.logger().Info("processing contact email",
		zap.String("from", req.Email),
		zap.String("subject", req.Subject),
	)
	return s.Send(ctx, req)
}

func (s *EmailService) SendCoolifyEmail(ctx context.Context, req WebhookRequest) (*model.Email, error) {
	s.logger().Info("processing coolify webhook",
		zap.String("event", req.Event),
		zap.String("application", req.ApplicationName),
		zap.Bool("success", req.succeeded()),
	)
	return s.Send(ctx, req)
}

// SendEmail stamps the send time, makes exactly one delivery attempt and
// stores the email exactly once. A delivery failure only sets StatusError;
// only store failures are returned.
func (s *EmailService) SendEmail(ctx context.Context, email *model.Email) (*model.Email, error) {
	logger := s.logger()

	now := s.now()
	email.SendDateEmail = &now

	if err := s.deliver(ctx, email); err != nil {
		email.StatusEmail = model.StatusError
		logger.Error("failed to send email",
			zap.String("to", email.EmailTo),
			zap.String("subject", email.Subject),
			zap.Error(err),
		)
	} else {
		email.StatusEmail = model.StatusSent
		logger.Info("email sent",
			zap.String("to", email.EmailTo),
			zap.String("subject", email.Subject),
		)
	}

	// the outcome is recorded even if the caller went away after delivery
	saved, err := s.EmailRepo.Save(context.WithoutCancel(ctx), email)
	if err != nil {
		logger.Error("failed to save email", zap.String("status", string(email.StatusEmail)), zap.Error(err))
		return nil, err
	}
	logger.Info("email saved",
		zap.String("status", string(saved.StatusEmail)),
		zap.Int64("email_id", saved.ID),
	)
	return saved, nil
}

// FindAll lists stored emails; the zero PageRequest is page 0 of 5, id DESC.
func (s *EmailService) FindAll(ctx context.Context, req model.PageRequest) (*model.Page, error) {
	return s.EmailRepo.FindAll(ctx, req.Normalize())
}

// FindByID returns appErrors.ErrEmailNotFound when the ID was never stored.
func (s *EmailService) FindByID(ctx context.Context, id int64) (*model.Email, error) {
	return s.EmailRepo.FindByID(ctx, id)
}

// deliver turns a transport panic into an error so the record is still stored.
func (s *EmailService) deliver(ctx context.Context, email *model.Email) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: transport panic: %v", mailer.ErrDeliveryFailed, r)
		}
	}()
	return s.Transport.Deliver(ctx, mailer.Message{
		From:    email.EmailFrom,
		To:      email.EmailTo,
		Subject: email.Subject,
		Text:    email.Text,
		HTML:    email.HTML,
	})
}

func (s *EmailService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *EmailService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
