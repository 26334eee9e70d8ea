// Package mailer delivers rendered emails through SMTP or a provider API
// (Postmark, Resend). During development messages can be written to disk.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/unclebandit/mailer-backend/internal/config"
)

var (
	// ErrInvalidConfig is returned when a transport is missing required settings.
	ErrInvalidConfig = errors.New("mailer: invalid configuration")
	// ErrDeliveryFailed wraps every error reported while handing a message to a transport.
	ErrDeliveryFailed = errors.New("mailer: delivery failed")
)

// Message is what a transport needs to send one email. HTML is optional;
// when present the message is sent as multipart/alternative.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) validate() error {
	switch {
	case strings.TrimSpace(m.From) == "":
		return fmt.Errorf("%w: missing sender", ErrDeliveryFailed)
	case strings.TrimSpace(m.To) == "":
		return fmt.Errorf("%w: missing recipient", ErrDeliveryFailed)
	}
	return nil
}

// Transport sends one message synchronously.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

// New builds the transport selected by cfg.Transport.
func New(cfg config.MailConfig, logger *zap.Logger) (Transport, error) {
	switch strings.ToLower(cfg.Transport) {
	case "", "smtp":
		signer, err := NewDKIMSigner(DKIMConfig{
			Selector:   cfg.DKIMSelector,
			Domain:     cfg.DKIMDomain,
			KeyPath:    cfg.DKIMKeyPath,
			PrivateKey: cfg.DKIMPrivateKey,
		})
		if err != nil {
			return nil, err
		}
		return NewSMTPTransport(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			TLSMode:  cfg.SMTPTLSMode,
		}, signer)
	case "postmark":
		return NewPostmarkTransport(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	case "resend":
		return NewResendTransport(cfg.ResendAPIKey)
	case "dev":
		logger.Warn("using dev mail transport, emails are written to disk", zap.String("dir", cfg.DevDir))
		return NewDevTransport(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, cfg.Transport)
	}
}
