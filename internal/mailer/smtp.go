package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

const (
	TLSModeStartTLS = "starttls"
	TLSModeTLS      = "tls"
	TLSModePlain    = "plain"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLSMode  string
}

// SMTPTransport sends each message over a fresh SMTP session.
type SMTPTransport struct {
	config      SMTPConfig
	auth        smtp.Auth
	signer      *DKIMSigner
	dialTimeout time.Duration
	now         func() time.Time
}

// NewSMTPTransport validates cfg. Authentication is skipped when Username
// is empty, which suits local relays.
func NewSMTPTransport(cfg SMTPConfig, signer *DKIMSigner) (*SMTPTransport, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: SMTP host is required", ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: SMTP port must be between 1 and 65535", ErrInvalidConfig)
	}
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeStartTLS
	}
	if cfg.TLSMode != TLSModeStartTLS && cfg.TLSMode != TLSModeTLS && cfg.TLSMode != TLSModePlain {
		return nil, fmt.Errorf("%w: SMTP TLS mode must be starttls, tls, or plain", ErrInvalidConfig)
	}

	t := &SMTPTransport{
		config:      cfg,
		signer:      signer,
		dialTimeout: 30 * time.Second,
		now:         time.Now,
	}
	if cfg.Username != "" {
		t.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return t, nil
}

func (t *SMTPTransport) Deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	if err := msg.validate(); err != nil {
		return err
	}

	data, err := buildMIME(msg, t.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	data, err = t.signer.Sign(data, msg.From)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if err := t.send(ctx, msg.From, msg.To, data); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return nil
}

func (t *SMTPTransport) send(ctx context.Context, from, to string, data []byte) error {
	addr := net.JoinHostPort(t.config.Host, strconv.Itoa(t.config.Port))
	dialer := &net.Dialer{Timeout: t.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Minute)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	tlsConf := &tls.Config{ServerName: t.config.Host, MinVersion: tls.VersionTLS12}
	if t.config.TLSMode == TLSModeTLS {
		tlsConn := tls.Client(conn, tlsConf)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return fmt.Errorf("tls handshake: %w", err)
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, t.config.Host)
	if err != nil {
		return fmt.Errorf("new client: %w", err)
	}
	defer client.Close()

	if t.config.TLSMode == TLSModeStartTLS {
		if err := client.StartTLS(tlsConf); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if t.auth != nil {
		if err := client.Auth(t.auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data start: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("data write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("data close: %w", err)
	}

	// The message is accepted once DATA is closed; some servers drop the
	// connection before answering QUIT.
	_ = client.Quit()
	return nil
}
