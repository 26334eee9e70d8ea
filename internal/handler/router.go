// internal/handler/router.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/unclebandit/mailer-backend/internal/controller"
)

// NewRouter wires the email API and health check onto a chi router.
func NewRouter(emails *controller.EmailController, health *HealthHandler, allowedOrigins []string, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sending-email", emails.SendingEmail)
		r.Post("/sending-portfolio-email", emails.SendingPortfolioEmail)
		r.Post("/webhooks/coolify", emails.CoolifyWebhook)
		r.Get("/emails", emails.GetAllEmails)
		r.Get("/emails/{id}", emails.GetOneEmail)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}
