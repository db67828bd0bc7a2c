// Package businessform предоставляет маршруты для основного приложения.
package businessform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EgorCode/businessform-sub002/internal/http/handlers/health"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/stats"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/abandon"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/answer"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/comparison"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/eligibility"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/recommendation"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/reset"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/start"
	"github.com/EgorCode/businessform-sub002/internal/http/handlers/wizard/step"
	"github.com/EgorCode/businessform-sub002/internal/http/middlewarectx"
	wizardservice "github.com/EgorCode/businessform-sub002/internal/services/wizard"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, wizardService *wizardservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		// Старт не требует идентификатора сессии — он его выдаёт.
		r.Post("/wizard/start", start.New(logger, wizardService).ServeHTTP)

		r.Get("/stats", stats.New(logger, wizardService).ServeHTTP)

		// Группа маршрутов, работающих в рамках сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(logger))
			r.Post("/wizard/answer", answer.New(logger, wizardService).ServeHTTP)
			r.Get("/wizard/step", step.New(logger, wizardService).ServeHTTP)
			r.Get("/wizard/eligibility", eligibility.New(logger, wizardService).ServeHTTP)
			r.Get("/wizard/recommendation", recommendation.New(logger, wizardService).ServeHTTP)
			r.Get("/wizard/comparison", comparison.New(logger, wizardService).ServeHTTP)
			r.Post("/wizard/reset", reset.New(logger, wizardService).ServeHTTP)
			r.Delete("/wizard/session", abandon.New(logger, wizardService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
