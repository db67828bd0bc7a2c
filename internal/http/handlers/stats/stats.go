// Package stats реализует HTTP-обработчик агрегатов архива подборов:
// распределение завершённых подборов по формам бизнеса за финансовый год.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/EgorCode/businessform-sub002/internal/http/response"
	"github.com/EgorCode/businessform-sub002/internal/lib/sl"
	wizardservice "github.com/EgorCode/businessform-sub002/internal/services/wizard"
)

// Handler обрабатывает запросы статистики подборов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статистики.
type Service interface {
	Stats(ctx context.Context) (*wizardservice.StatsView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает распределение подборов по формам.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	view, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(view))
}
