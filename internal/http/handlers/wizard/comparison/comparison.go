// Package comparison реализует HTTP-обработчик сравнительной таблицы
// налоговой нагрузки по всем парам (форма, режим).
package comparison

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/EgorCode/businessform-sub002/internal/http/middlewarectx"
	"github.com/EgorCode/businessform-sub002/internal/http/response"
	"github.com/EgorCode/businessform-sub002/internal/lib/sl"
	"github.com/EgorCode/businessform-sub002/internal/models"
	wizardservice "github.com/EgorCode/businessform-sub002/internal/services/wizard"
)

// Handler обрабатывает запросы на построение сравнительной таблицы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сравнения.
type Service interface {
	Comparison(ctx context.Context, sessionID string) ([]wizardservice.ComparisonRow, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает расчёт по каждой зарегистрированной паре,
// включая недоступные пользователю формы.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wizard.comparison"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID, ok := middlewarectx.SessionIDFromContext(r.Context())
	if !ok {
		log.Error("session id not found in context")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing session id"))
		return
	}

	rows, err := h.service.Comparison(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Error("session not found", slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
			return
		}
		log.Error("failed to build comparison", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build comparison"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"rows": rows,
	}))
}
