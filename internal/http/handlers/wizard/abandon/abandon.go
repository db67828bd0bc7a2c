// Package abandon реализует HTTP-обработчик досрочного завершения сессии:
// снимок удаляется, идентификатор сессии перестаёт действовать.
package abandon

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
)

// Handler обрабатывает запросы на удаление сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления сессии.
type Service interface {
	Abandon(ctx context.Context, sessionID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP удаляет сессию из хранилища снимков.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wizard.abandon"

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

	if err := h.service.Abandon(r.Context(), sessionID); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Error("session not found", slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
			return
		}
		log.Error("failed to abandon session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not abandon session"))
		return
	}

	log.Info("abandoned wizard session", slog.String("session_id", sessionID))
	render.JSON(w, r, response.OK())
}
