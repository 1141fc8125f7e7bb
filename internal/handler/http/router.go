package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mpopescu/phonebook/pkg/health"
	"github.com/mpopescu/phonebook/pkg/middleware"

	"github.com/mpopescu/phonebook/internal/service"
)

// NewRouter creates a chi router with all phonebook routes registered.
// Dependencies come in explicitly; nothing here reaches for globals.
func NewRouter(
	contactService *service.ContactService,
	authService *service.AuthService,
	verifier TokenVerifier,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("phonebook"))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	authHandler := NewAuthHandler(authService)
	contactHandler := NewContactHandler(contactService)

	r.Route("/api", func(r chi.Router) {
		// Login is public; every verb except POST is a fixed 400.
		r.Post("/login", authHandler.Login)
		r.Get("/login", authHandler.MethodNotAllowed)
		r.Put("/login", authHandler.MethodNotAllowed)
		r.Delete("/login", authHandler.MethodNotAllowed)

		r.Route("/contacts", func(r chi.Router) {
			r.Use(Auth(verifier))

			r.Get("/", contactHandler.List)
			r.Post("/", contactHandler.Create)
			r.Put("/", contactHandler.BulkUpdate)
			r.Delete("/", contactHandler.DeleteCollection)

			r.Get("/{id}", contactHandler.Get)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})
	})

	return r
}
