package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevTransportWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tr := NewDevTransport(dir)
	tr.now = func() time.Time { return fixedNow }

	err := tr.Deliver(context.Background(), Message{From: "a@x.com", To: "b@x.com", Subject: "Novo contato: Oi", Text: "Hello", HTML: "<p>Hello</p>"})
	require.NoError(t, err)

	emls, err := filepath.Glob(filepath.Join(dir, "*.eml"))
	require.NoError(t, err)
	require.Len(t, emls, 1)
	assert.Equal(t, fileStem(fixedNow, "Novo contato: Oi")+".eml", filepath.Base(emls[0]))

	metas, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, metas, 1)

	raw, err := os.ReadFile(metas[0])
	require.NoError(t, err)
	var meta devMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "b@x.com", meta.To)
	assert.True(t, meta.HasHTML)
}

func TestDevTransportRejectsMissingRecipient(t *testing.T) {
	tr := NewDevTransport(t.TempDir())
	err := tr.Deliver(context.Background(), Message{From: "a@x.com"})
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}

func TestSubjectSlug(t *testing.T) {
	assert.Equal(t, "novo-contato-oi", subjectSlug("Novo contato: Oi"))
	assert.Equal(t, "deployment-success", subjectSlug("  deployment_success!! "))
	assert.Equal(t, "message", subjectSlug("???"))
	assert.Equal(t, "message", subjectSlug(""))
	assert.Len(t, subjectSlug(strings.Repeat("a", 200)), maxSlugLen)
}

func TestFileStemSortsByTime(t *testing.T) {
	earlier := fileStem(fixedNow, "b")
	later := fileStem(fixedNow.Add(time.Millisecond), "a")
	assert.Less(t, earlier, later)
	assert.True(t, strings.HasSuffix(earlier, "-b"))
}
