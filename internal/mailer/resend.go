package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendTransport sends through the Resend API.
type ResendTransport struct {
	client *resend.Client
}

func NewResendTransport(apiKey string) (*ResendTransport, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Resend API key is required", ErrInvalidConfig)
	}
	return &ResendTransport{client: resend.NewClient(apiKey)}, nil
}

func (t *ResendTransport) Deliver(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	_, err := t.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("%w: resend: %w", ErrDeliveryFailed, err)
	}
	return nil
}
