package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/mailer-backend/internal/config"
)

func TestNewSelectsTransport(t *testing.T) {
	logger := zap.NewNop()

	tr, err := New(config.MailConfig{Transport: "smtp", SMTPHost: "mail.example.com", SMTPPort: 587}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPTransport{}, tr)

	tr, err = New(config.MailConfig{Transport: "postmark", PostmarkServerToken: "token"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &PostmarkTransport{}, tr)

	tr, err = New(config.MailConfig{Transport: "resend", ResendAPIKey: "re_test"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ResendTransport{}, tr)

	tr, err = New(config.MailConfig{Transport: "dev", DevDir: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &DevTransport{}, tr)
}

func TestNewRejectsBadConfig(t *testing.T) {
	logger := zap.NewNop()

	_, err := New(config.MailConfig{Transport: "carrier-pigeon"}, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = New(config.MailConfig{Transport: "postmark"}, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = New(config.MailConfig{Transport: "resend"}, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = New(config.MailConfig{Transport: "smtp"}, logger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
