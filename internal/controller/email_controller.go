// internal/controller/email_controller.go
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
	"github.com/unclebandit/mailer-backend/internal/model"
	"github.com/unclebandit/mailer-backend/internal/service"
)

// EmailService is the part of service.EmailService the HTTP layer uses.
type EmailService interface {
	Send(ctx context.Context, req service.Request) (*model.Email, error)
	SendPortfolioEmail(ctx context.Context, req service.PortfolioRequest) (*model.Email, error)
	SendCoolifyEmail(ctx context.Context, req service.WebhookRequest) (*model.Email, error)
	FindAll(ctx context.Context, req model.PageRequest) (*model.Page, error)
	FindByID(ctx context.Context, id int64) (*model.Email, error)
}

type EmailController struct {
	EmailService EmailService
	Logger       *zap.Logger
}

// SendingEmail handles POST /api/sending-email.
func (c *EmailController) SendingEmail(w http.ResponseWriter, r *http.Request) {
	var body service.GenericRequest
	if !decodeBody(w, r, &body) {
		return
	}

	email, err := c.EmailService.Send(r.Context(), body)
	if err != nil {
		c.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, email)
}

// SendingPortfolioEmail handles POST /api/sending-portfolio-email.
func (c *EmailController) SendingPortfolioEmail(w http.ResponseWriter, r *http.Request) {
	var body service.PortfolioRequest
	if !decodeBody(w, r, &body) {
		return
	}

	email, err := c.EmailService.SendPortfolioEmail(r.Context(), body)
	if err != nil {
		c.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, email)
}

// CoolifyWebhook handles POST /api/webhooks/coolify.
func (c *EmailController) CoolifyWebhook(w http.ResponseWriter, r *http.Request) {
	var body service.WebhookRequest
	if !decodeBody(w, r, &body) {
		return
	}

	email, err := c.EmailService.SendCoolifyEmail(r.Context(), body)
	if err != nil {
		c.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, email)
}

// GetAllEmails handles GET /api/emails?page=0&size=5&sort=id,desc.
func (c *EmailController) GetAllEmails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))

	req := model.PageRequest{Page: page, Size: size}
	if sort := q.Get("sort"); sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		req.Sort = strings.TrimSpace(field)
		if strings.EqualFold(strings.TrimSpace(dir), "asc") {
			req.Direction = model.SortAsc
		}
	}

	result, err := c.EmailService.FindAll(r.Context(), req)
	if err != nil {
		c.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetOneEmail handles GET /api/emails/{id}.
func (c *EmailController) GetOneEmail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid email id", http.StatusBadRequest)
		return
	}

	email, err := c.EmailService.FindByID(r.Context(), id)
	if err != nil {
		c.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, email)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (c *EmailController) writeError(w http.ResponseWriter, err error) {
	var (
		validation *appErrors.ErrValidation
		notFound   *appErrors.ErrEmailNotFound
		template   *appErrors.ErrTemplateNotFound
	)
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, "Email not found.", http.StatusNotFound)
	case errors.As(err, &template):
		c.logger().Error("email template failure", zap.Error(err))
		http.Error(w, "error processing email template: "+template.Error(), http.StatusInternalServerError)
	default:
		c.logger().Error("request failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (c *EmailController) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var _ EmailService = (*service.EmailService)(nil)
