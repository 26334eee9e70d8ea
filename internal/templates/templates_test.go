package templates_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/mailer-backend/internal/templates"
)

func TestOpenEmbeddedByDefault(t *testing.T) {
	fsys := templates.Open("")
	for _, name := range []string{templates.PortfolioContact, templates.CoolifyDeploy} {
		data, err := fs.ReadFile(fsys, name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "${contact.")
	}
}

func TestOpenDirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, templates.PortfolioContact), []byte("<p>${contact.name}</p>"), 0o644))

	fsys := templates.Open(dir)
	data, err := fs.ReadFile(fsys, templates.PortfolioContact)
	require.NoError(t, err)
	assert.Equal(t, "<p>${contact.name}</p>", string(data))

	_, err = fs.Stat(fsys, templates.CoolifyDeploy)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
