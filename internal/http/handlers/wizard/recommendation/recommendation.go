// Package recommendation реализует HTTP-обработчик получения ранжированной
// рекомендации по текущим ответам сессии. Ответ безопасно запрашивать на
// каждое изменение ответов: расчёт чистый и идемпотентный.
package recommendation

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

// Handler обрабатывает запросы на получение рекомендации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подбора.
type Service interface {
	Recommendation(ctx context.Context, sessionID string) (models.Recommendation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// itemView — позиция рекомендации с суммами в рублях для отображения.
type itemView struct {
	Form        models.BusinessForm      `json:"form"`
	FormTitle   string                   `json:"form_title"`
	Regime      models.TaxRegime         `json:"regime"`
	RegimeTitle string                   `json:"regime_title"`
	Calculation models.CalculationResult `json:"calculation"`
	TaxRub      string                   `json:"tax_rub"`
	NetRub      string                   `json:"net_rub"`
}

// ServeHTTP возвращает статус подбора и ранжированный список пар.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wizard.recommendation"

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

	recommendation, err := h.service.Recommendation(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Error("session not found", slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
			return
		}
		log.Error("failed to build recommendation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build recommendation"))
		return
	}

	items := make([]itemView, 0, len(recommendation.Items))
	for _, item := range recommendation.Items {
		items = append(items, itemView{
			Form:        item.Form,
			FormTitle:   item.Form.Title(),
			Regime:      item.Regime,
			RegimeTitle: item.Regime.Title(),
			Calculation: item.Calculation,
			TaxRub:      item.Calculation.Tax.FormatRubles(),
			NetRub:      item.Calculation.Net.FormatRubles(),
		})
	}

	log.Info("built recommendation",
		slog.String("session_id", sessionID),
		slog.String("status", string(recommendation.Status)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recommendation_status": recommendation.Status,
		"items":                 items,
	}))
}
