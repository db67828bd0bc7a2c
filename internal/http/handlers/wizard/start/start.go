// Package start реализует HTTP-обработчик запуска новой сессии мастера.
//
// Handler создаёт сессию через бизнес-логику и возвращает её идентификатор
// вместе с первым вопросом опроса.
package start

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

// Handler обрабатывает запросы на запуск сессии мастера.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики мастера
}

// Service описывает интерфейс бизнес-логики запуска сессии.
type Service interface {
	Start(ctx context.Context) (*wizardservice.SessionView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на запуск сессии.
//
// Выполняет:
// - Создание сессии в бизнес-логике.
// - Возврат идентификатора сессии и первого вопроса в JSON-формате.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wizard.start"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	view, err := h.service.Start(r.Context())
	if err != nil {
		log.Error("failed to start wizard session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not start session"))
		return
	}

	log.Info("started wizard session", slog.String("session_id", view.SessionID))
	render.JSON(w, r, response.StatusOKWithData(view))
}
