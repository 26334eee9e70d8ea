package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkTransport sends through Postmark's transactional API.
type PostmarkTransport struct {
	client *postmark.Client
}

func NewPostmarkTransport(serverToken, accountToken string) (*PostmarkTransport, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("%w: Postmark server token is required", ErrInvalidConfig)
	}
	return &PostmarkTransport{client: postmark.NewClient(serverToken, accountToken)}, nil
}

func (t *PostmarkTransport) Deliver(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	resp, err := t.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.Text,
		HTMLBody: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("%w: postmark error %d - %s", ErrDeliveryFailed, resp.ErrorCode, resp.Message)
	}
	return nil
}
