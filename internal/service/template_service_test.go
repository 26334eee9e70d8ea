package service_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
	"github.com/unclebandit/mailer-backend/internal/service"
	"github.com/unclebandit/mailer-backend/internal/templates"
)

func newTemplateService(files map[string]string) *service.TemplateService {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return &service.TemplateService{Provider: service.FSProvider{FS: fsys}}
}

func TestProcessTemplate(t *testing.T) {
	svc := newTemplateService(nil)

	got := svc.ProcessTemplate(
		"Hi ${contact.name}, ${contact.name}! ${contact.unknown} <${contact.email}>",
		map[string]string{"name": "Ana", "email": "ana@x.com"},
	)
	assert.Equal(t, "Hi Ana, Ana! ${contact.unknown} <ana@x.com>", got)
}

func TestProcessTemplateEmptyValueAndNoRecursion(t *testing.T) {
	svc := newTemplateService(nil)

	got := svc.ProcessTemplate(
		"[${contact.phone}] ${contact.message}",
		map[string]string{"phone": "", "message": "${contact.phone} literally"},
	)
	assert.Equal(t, "[] ${contact.phone} literally", got)
}

func TestProcessTemplateIsOrderIndependent(t *testing.T) {
	svc := newTemplateService(nil)
	vars := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"}
	want := svc.ProcessTemplate("${contact.a}${contact.b}${contact.c}${contact.d}${contact.e}", vars)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, svc.ProcessTemplate("${contact.a}${contact.b}${contact.c}${contact.d}${contact.e}", vars))
	}
	assert.Equal(t, "12345", want)
}

func TestLoadAndProcessTemplate(t *testing.T) {
	svc := newTemplateService(map[string]string{"hello.html": "<p>${contact.name}</p>"})

	got, err := svc.LoadAndProcessTemplate("hello.html", map[string]string{"name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Ana</p>", got)
}

func TestLoadTemplateNotFound(t *testing.T) {
	svc := newTemplateService(map[string]string{"hello.html": "x"})

	_, err := svc.LoadAndProcessTemplate("missing.html", nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsTemplateNotFound(err))

	_, err = svc.LoadTemplate("../hello.html")
	assert.True(t, appErrors.IsTemplateNotFound(err))
}

func TestEmbeddedTemplatesExist(t *testing.T) {
	p := service.FSProvider{FS: templates.FS}
	assert.True(t, p.Exists(templates.PortfolioContact))
	assert.True(t, p.Exists(templates.CoolifyDeploy))
	assert.False(t, p.Exists("."))

	body, err := p.Read(templates.PortfolioContact)
	require.NoError(t, err)
	for _, key := range []string{"name", "email", "phone", "subject", "message"} {
		assert.Contains(t, body, "${contact."+key+"}")
	}
}
