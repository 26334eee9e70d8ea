package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResendTestTransport(t *testing.T, h http.HandlerFunc) *ResendTransport {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tr, err := NewResendTransport("re_test")
	require.NoError(t, err)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	tr.client.BaseURL = base
	return tr
}

func TestResendTransportDeliver(t *testing.T) {
	var got map[string]any
	tr := newResendTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	})

	err := tr.Deliver(context.Background(), Message{
		From:    "noreply@example.com",
		To:      "ops@example.com",
		Subject: "deploy",
		Text:    "ok",
		HTML:    "<p>ok</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", got["from"])
	assert.Equal(t, []any{"ops@example.com"}, got["to"])
	assert.Equal(t, "deploy", got["subject"])
	assert.Equal(t, "<p>ok</p>", got["html"])
}

func TestResendTransportReportsAPIErrors(t *testing.T) {
	tr := newResendTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	})

	err := tr.Deliver(context.Background(), Message{From: "bad", To: "ops@example.com", Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}

func TestResendTransportValidatesMessage(t *testing.T) {
	tr, err := NewResendTransport("re_test")
	require.NoError(t, err)

	err = tr.Deliver(context.Background(), Message{From: "noreply@example.com"})
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}
