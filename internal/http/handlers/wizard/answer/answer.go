// Package answer реализует HTTP-обработчик приёма ответа на шаг мастера.
//
// Handler принимает JSON с идентификатором вопроса и значением, валидирует
// его, передаёт в бизнес-логику и возвращает обновлённое состояние сессии
// со следующим вопросом либо статусом завершения.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package answer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/EgorCode/businessform-sub002/internal/http/middlewarectx"
	"github.com/EgorCode/businessform-sub002/internal/http/response"
	"github.com/EgorCode/businessform-sub002/internal/lib/sl"
	"github.com/EgorCode/businessform-sub002/internal/models"
	wizardservice "github.com/EgorCode/businessform-sub002/internal/services/wizard"
)

// Handler обрабатывает запросы на сохранение ответа на шаг мастера.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики мастера
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики приёма ответа.
type Service interface {
	Answer(ctx context.Context, sessionID string, questionID models.QuestionID,
		value models.AnswerValue) (*wizardservice.SessionView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос с ответом на шаг.
//
// Выполняет:
// - Декодирование JSON с ответом из тела запроса.
// - Валидацию структуры ответа.
// - Извлечение идентификатора сессии из контекста запроса.
// - Вызов бизнес-логики сохранения ответа.
// - Возврат обновлённого состояния сессии или ошибки в JSON-формате.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wizard.answer"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAnswer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sessionID, ok := middlewarectx.SessionIDFromContext(r.Context())
	if !ok {
		log.Error("session id not found in context")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing session id"))
		return
	}

	questionID, value, err := req.ToAnswer()
	if err != nil {
		log.Error("failed to convert answer", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid answer value"))
		return
	}

	view, err := h.service.Answer(r.Context(), sessionID, questionID, value)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Error("answer rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(validationErr.Error()))
		case errors.Is(err, models.ErrSessionNotFound):
			log.Error("session not found", slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("session not found"))
		default:
			log.Error("failed to save answer", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not save answer"))
		}
		return
	}

	log.Info("saved answer",
		slog.String("session_id", sessionID),
		slog.String("question_id", string(questionID)))
	render.JSON(w, r, response.StatusOKWithData(view))
}
