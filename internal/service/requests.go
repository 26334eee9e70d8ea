// internal/service/requests.go
package service

import (
	"fmt"
	"net/mail"
	"strings"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
	"github.com/unclebandit/mailer-backend/internal/model"
	"github.com/unclebandit/mailer-backend/internal/templates"
)

// Request is one of GenericRequest, PortfolioRequest or WebhookRequest.
type Request interface {
	Validate() error
	build(s *EmailService) (*model.Email, error)
}

// GenericRequest already carries every field of the email.
type GenericRequest struct {
	OwnerRef  string `json:"ownerRef"`
	EmailFrom string `json:"emailFrom"`
	EmailTo   string `json:"emailTo"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	HTML      string `json:"html,omitempty"`
}

func (r GenericRequest) Validate() error {
	return firstError(
		requireEmail("emailFrom", r.EmailFrom),
		requireEmail("emailTo", r.EmailTo),
		requireText("subject", r.Subject),
		requireText("text", r.Text),
	)
}

func (r GenericRequest) build(*EmailService) (*model.Email, error) {
	return &model.Email{
		OwnerRef:  r.OwnerRef,
		EmailFrom: r.EmailFrom,
		EmailTo:   r.EmailTo,
		Subject:   r.Subject,
		Text:      r.Text,
		HTML:      r.HTML,
	}, nil
}

// PortfolioRequest is a contact-form submission from a portfolio site.
type PortfolioRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	OwnerRef string `json:"ownerRef"`
	EmailTo  string `json:"emailTo"`
}

func (r PortfolioRequest) Validate() error {
	return firstError(
		requireText("name", r.Name),
		requireEmail("email", r.Email),
		requireText("phone", r.Phone),
		requireText("subject", r.Subject),
		requireText("message", r.Message),
		requireText("ownerRef", r.OwnerRef),
		requireEmail("emailTo", r.EmailTo),
	)
}

func (r PortfolioRequest) build(s *EmailService) (*model.Email, error) {
	html, err := s.Templates.LoadAndProcessTemplate(templates.PortfolioContact, map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"phone":   r.Phone,
		"subject": r.Subject,
		"message": r.Message,
	})
	if err != nil {
		return nil, err
	}

	return &model.Email{
		OwnerRef:  r.OwnerRef,
		EmailFrom: s.Settings.MailFrom,
		EmailTo:   r.EmailTo,
		Subject:   "Novo contato: " + r.Subject,
		Text:      r.plainText(),
		HTML:      html,
	}, nil
}

func (r PortfolioRequest) plainText() string {
	return fmt.Sprintf("Nome: %s\nEmail: %s\nTelefone: %s\nAssunto: %s\nMensagem: %s",
		r.Name, r.Email, r.Phone, r.Subject, r.Message)
}

// WebhookRequest is the deployment notification payload posted by Coolify.
type WebhookRequest struct {
	Success         *bool  `json:"success"`
	Message         string `json:"message"`
	Event           string `json:"event"`
	ApplicationName string `json:"application_name"`
	ApplicationUUID string `json:"application_uuid"`
	DeploymentUUID  string `json:"deployment_uuid"`
	DeploymentURL   string `json:"deployment_url"`
	Project         string `json:"project"`
	Environment     string `json:"environment"`
	FQDN            string `json:"fqdn"`
}

const webhookOwnerRef = "Coolify Webhook"

func (r WebhookRequest) Validate() error {
	var successErr error
	if r.Success == nil {
		successErr = appErrors.NewValidation("success", "must not be null")
	}
	return firstError(
		successErr,
		requireText("message", r.Message),
		requireText("event", r.Event),
		requireText("application_name", r.ApplicationName),
		requireText("application_uuid", r.ApplicationUUID),
		requireText("deployment_uuid", r.DeploymentUUID),
		requireText("deployment_url", r.DeploymentURL),
		requireText("project", r.Project),
		requireText("environment", r.Environment),
		requireText("fqdn", r.FQDN),
	)
}

func (r WebhookRequest) succeeded() bool {
	return r.Success != nil && *r.Success
}

func (r WebhookRequest) build(s *EmailService) (*model.Email, error) {
	icon, status := "❌", "error"
	if r.succeeded() {
		icon, status = "✅", "success"
	}

	html, err := s.Templates.LoadAndProcessTemplate(templates.CoolifyDeploy, map[string]string{
		"icon":             icon,
		"success":          status,
		"message":          r.Message,
		"event_title":      strings.ToUpper(strings.ReplaceAll(r.Event, "_", " ")),
		"application_name": r.ApplicationName,
		"application_uuid": r.ApplicationUUID,
		"deployment_uuid":  r.DeploymentUUID,
		"deployment_url":   r.DeploymentURL,
		"project":          r.Project,
		"environment":      r.Environment,
		"fqdn":             r.FQDN,
	})
	if err != nil {
		return nil, err
	}

	return &model.Email{
		OwnerRef:  webhookOwnerRef,
		EmailFrom: s.Settings.OperatorEmail,
		EmailTo:   s.Settings.OperatorEmail,
		Subject:   r.Event,
		Text:      r.plainText(),
		HTML:      html,
	}, nil
}

func (r WebhookRequest) plainText() string {
	status := "Falha"
	if r.succeeded() {
		status = "Sucesso"
	}
	return fmt.Sprintf(
		"Status: %s\n"+
			"Evento: %s\n"+
			"Mensagem: %s\n"+
			"Aplicação: %s\n"+
			"Projeto: %s\n"+
			"Ambiente: %s\n"+
			"URL da Aplicação: %s\n"+
			"URL do Deployment: %s\n"+
			"Application UUID: %s\n"+
			"Deployment UUID: %s",
		status,
		r.Event,
		r.Message,
		r.ApplicationName,
		r.Project,
		r.Environment,
		r.FQDN,
		r.DeploymentURL,
		r.ApplicationUUID,
		r.DeploymentUUID,
	)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return appErrors.NewValidation(field, "must not be blank")
	}
	return nil
}

func requireEmail(field, value string) error {
	if err := requireText(field, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return appErrors.NewValidation(field, "must be a well-formed email address")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Request = GenericRequest{}
	_ Request = PortfolioRequest{}
	_ Request = WebhookRequest{}
)
