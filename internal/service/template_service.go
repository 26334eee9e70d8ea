// internal/service/template_service.go
package service

import (
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
)

// TemplateProvider resolves named template resources.
type TemplateProvider interface {
	Exists(name string) bool
	Read(name string) (string, error)
}

// FSProvider serves templates from a filesystem, e.g. os.DirFS or the
// embedded defaults in internal/templates.
type FSProvider struct {
	FS fs.FS
}

func (p FSProvider) Exists(name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(p.FS, name)
	return err == nil && !info.IsDir()
}

func (p FSProvider) Read(name string) (string, error) {
	b, err := fs.ReadFile(p.FS, name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type TemplateService struct {
	Provider TemplateProvider
	Logger   *zap.Logger
}

// LoadTemplate returns the raw template text. A missing template is an
// ErrTemplateNotFound; there is no fallback.
func (s *TemplateService) LoadTemplate(name string) (string, error) {
	if !s.Provider.Exists(name) {
		s.logger().Error("template not found", zap.String("template", name))
		return "", appErrors.NewTemplateNotFound(name)
	}
	text, err := s.Provider.Read(name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	s.logger().Debug("template loaded", zap.String("template", name))
	return text, nil
}

// ProcessTemplate replaces every ${contact.<key>} placeholder for the given
// keys. Placeholders for other keys are left untouched; replacement is
// literal and never recursive.
func (s *TemplateService) ProcessTemplate(template string, data map[string]string) string {
	result := RenderTemplate(template, data)
	s.logger().Debug("template processed", zap.Int("variables", len(data)))
	return result
}

func (s *TemplateService) LoadAndProcessTemplate(name string, data map[string]string) (string, error) {
	template, err := s.LoadTemplate(name)
	if err != nil {
		return "", err
	}
	return s.ProcessTemplate(template, data), nil
}

func (s *TemplateService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// RenderTemplate substitutes all placeholders in a single pass so a value
// that itself contains a placeholder is never expanded again.
func RenderTemplate(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, placeholder(k), v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func placeholder(key string) string {
	return "${contact." + key + "}"
}
