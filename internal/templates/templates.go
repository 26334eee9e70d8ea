// Package templates embeds the default HTML email templates.
package templates

import (
	"embed"
	"io/fs"
	"os"
)

const (
	PortfolioContact = "template-email.html"
	CoolifyDeploy    = "template-email-coolify.html"
)

//go:embed *.html
var FS embed.FS

// Open serves templates from dir, or the embedded set when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return FS
	}
	return os.DirFS(dir)
}
