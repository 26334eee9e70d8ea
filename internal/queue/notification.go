package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
	"github.com/unclebandit/mailer-backend/internal/model"
	"github.com/unclebandit/mailer-backend/internal/service"
)

type NotificationSender interface {
	SendCoolifyEmail(ctx context.Context, req service.WebhookRequest) (*model.Email, error)
}

// NotificationHandler decodes a deployment webhook payload and sends the
// notification email through the regular send pipeline.
func NotificationHandler(sender NotificationSender, logger *zap.Logger) Handler {
	return func(ctx context.Context, body []byte) error {
		var req service.WebhookRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return appErrors.NewValidation("", fmt.Sprintf("invalid notification payload: %v", err))
		}

		email, err := sender.SendCoolifyEmail(ctx, req)
		if err != nil {
			return err
		}
		logger.Info("deployment notification recorded",
			zap.Int64("email_id", email.ID),
			zap.String("status", string(email.StatusEmail)),
		)
		return nil
	}
}
