// Package eligibility реализует HTTP-обработчик проверки доступности форм
// бизнеса по текущим ответам сессии. Запрос легитимен на любом шаге:
// до полного набора обязательных ответов формы закрыты с причиной
// incomplete_input (предпросмотр).
package eligibility

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

// Handler обрабатывает запросы на проверку доступности форм.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки доступности.
type Service interface {
	Eligibility(ctx context.Context, sessionID string) (map[models.BusinessForm]models.EligibilityResult, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// formView — результат проверки одной формы с текстами причин:
// коды разворачиваются в прозу только здесь, на границе представления.
type formView struct {
	Form     models.BusinessForm `json:"form"`
	Title    string              `json:"title"`
	Eligible bool                `json:"eligible"`
	Reasons  []string            `json:"reasons,omitempty"`
}

// ServeHTTP возвращает доступность каждой формы с причинами отказа.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wizard.eligibility"

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

	results, err := h.service.Eligibility(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Error("session not found", slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
			return
		}
		log.Error("failed to evaluate eligibility", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not evaluate eligibility"))
		return
	}

	views := make([]formView, 0, len(results))
	for _, form := range models.AllForms() {
		result, ok := results[form]
		if !ok {
			continue
		}
		view := formView{
			Form:     form,
			Title:    form.Title(),
			Eligible: result.Eligible,
		}
		for _, reason := range result.Reasons {
			view.Reasons = append(view.Reasons, reason.Text())
		}
		views = append(views, view)
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"forms": views,
	}))
}
