package recommendation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EgorCode/businessform-sub002/internal/http/middlewarectx"
	"github.com/EgorCode/businessform-sub002/internal/models"
)

// MockService реализует интерфейс recommendation.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Recommendation(ctx context.Context, sessionID string) (models.Recommendation, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(models.Recommendation), args.Error(1)
}

func TestRecommendationHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	okRecommendation := models.Recommendation{
		Status: models.RecommendationOK,
		Items: []models.RecommendationItem{
			{
				Form:   models.FormSelfEmployed,
				Regime: models.RegimeNPD,
				Calculation: models.CalculationResult{
					Form: models.FormSelfEmployed, Regime: models.RegimeNPD,
					Gross: 100_000_000, TaxableBase: 100_000_000,
					Tax: 6_000_000, Net: 94_000_000,
				},
				Score: 94_000_000,
			},
		},
	}

	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockService)
		expectedStatus int
		checkBody      func(*testing.T, string)
	}{
		{
			name:      "успешная рекомендация",
			sessionID: "sess-1",
			setupMock: func(m *MockService) {
				m.On("Recommendation", mock.Anything, "sess-1").
					Return(okRecommendation, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"recommendation_status":"ok"`)
				assert.Contains(t, body, `"form":"self_employed"`)
				assert.Contains(t, body, `"net_rub":"940 000,00 ₽"`)
			},
		},
		{
			name:      "нет подходящей формы — статус, а не ошибка",
			sessionID: "sess-1",
			setupMock: func(m *MockService) {
				m.On("Recommendation", mock.Anything, "sess-1").
					Return(models.Recommendation{Status: models.RecommendationNoEligibleForm}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"recommendation_status":"no_eligible_form"`)
			},
		},
		{
			name:           "нет идентификатора сессии",
			sessionID:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "missing session id")
			},
		},
		{
			name:      "сессия не найдена",
			sessionID: "ghost",
			setupMock: func(m *MockService) {
				m.On("Recommendation", mock.Anything, "ghost").
					Return(models.Recommendation{}, models.ErrSessionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "session not found")
			},
		},
		{
			name:      "ошибка сервиса",
			sessionID: "sess-1",
			setupMock: func(m *MockService) {
				m.On("Recommendation", mock.Anything, "sess-1").
					Return(models.Recommendation{}, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "could not build recommendation")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/wizard/recommendation", nil)
			ctx := context.WithValue(req.Context(), middlewarectx.SessionID, tt.sessionID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkBody(t, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}
