package wizardservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EgorCode/businessform-sub002/internal/models"
	"github.com/EgorCode/businessform-sub002/internal/wizard"
)

// MockStore реализует интерфейс SessionStore поверх карты: снимки
// проходят через JSON, как и в настоящем хранилище.
type MockStore struct {
	data    map[string][]byte
	failSet error
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Get(_ context.Context, key string, result any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (m *MockStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if m.failSet != nil {
		return m.failSet
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockStore) Invalidate(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// MockArchive реализует интерфейс ArchiveRepository.
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) SaveResult(ctx context.Context, entry models.ArchiveEntry) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}

func (m *MockArchive) CountByForm(ctx context.Context, fiscalYear int) (map[models.BusinessForm]int, error) {
	args := m.Called(ctx, fiscalYear)
	counts, _ := args.Get(0).(map[models.BusinessForm]int)
	return counts, args.Error(1)
}

func testRules() *models.RuleSet {
	return &models.RuleSet{
		FiscalYear: 2026,
		MinorUnits: 100,
		Forms: map[models.BusinessForm]models.FormRules{
			models.FormSelfEmployed: {
				SimplicityRank: 1, MaxRevenue: 240_000_000,
				MaxPartners: 0, MaxEmployees: 0,
			},
			models.FormSoleProprietor: {SimplicityRank: 2, MaxPartners: 0, MaxEmployees: -1},
			models.FormLLC:            {SimplicityRank: 3, MaxPartners: 50, MaxEmployees: -1},
		},
		Pairings: []models.PairingRules{
			{Form: models.FormSelfEmployed, Regime: models.RegimeNPD, RateBP: 600, MaxEmployees: -1},
			{
				Form: models.FormSoleProprietor, Regime: models.RegimeUSNIncome,
				RateBP: 600, MaxRevenue: 4_500_000_000_000, MaxEmployees: 130,
				FixedContribution:          5_739_000,
				ExtraContributionThreshold: 30_000_000,
				ExtraContributionRateBP:    100,
				ExtraContributionCap:       28_761_000,
			},
		},
	}
}

func newTestService(store *MockStore, archive *MockArchive) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(store, archive, testRules(), 30*time.Minute, logger)
}

func completeSession(t *testing.T, svc *Service, sessionID string) *SessionView {
	t.Helper()
	ctx := context.Background()

	steps := []struct {
		question models.QuestionID
		value    models.AnswerValue
	}{
		{models.QuestionIncome, models.MoneyAnswer(100_000_000)},
		{models.QuestionExpenses, models.MoneyAnswer(0)},
		{models.QuestionPartners, models.NumberAnswer(0)},
		{models.QuestionHasEmployees, models.BoolAnswer(false)},
		{models.QuestionActivity, models.EnumAnswer("services")},
		{models.QuestionRegion, models.BoolAnswer(false)},
	}
	var view *SessionView
	var err error
	for _, step := range steps {
		view, err = svc.Answer(ctx, sessionID, step.question, step.value)
		require.NoError(t, err)
	}
	return view
}

func TestService_StartAndStep(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	svc := newTestService(store, archive)

	view, err := svc.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, wizard.StateInProgress, view.State)
	require.NotNil(t, view.Question)
	assert.Equal(t, models.QuestionIncome, view.Question.ID)

	// Снимок восстанавливается из хранилища.
	current, err := svc.CurrentStep(context.Background(), view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, view.SessionID, current.SessionID)
	assert.Equal(t, models.QuestionIncome, current.Question.ID)
}

func TestService_SessionNotFound(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	svc := newTestService(store, archive)

	_, err := svc.CurrentStep(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = svc.Answer(context.Background(), "ghost",
		models.QuestionIncome, models.MoneyAnswer(1))
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

// TestService_CompletionArchivesResult: завершение опроса архивирует
// первичную рекомендацию ровно один раз.
func TestService_CompletionArchivesResult(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	svc := newTestService(store, archive)

	archive.On("SaveResult", mock.Anything, mock.MatchedBy(func(entry models.ArchiveEntry) bool {
		return entry.Form == models.FormSelfEmployed &&
			entry.Regime == models.RegimeNPD &&
			entry.FiscalYear == 2026
	})).Return(1, nil).Once()

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	view := completeSession(t, svc, started.SessionID)
	assert.Equal(t, wizard.StateCompleted, view.State)
	assert.Nil(t, view.Question)

	// Правка ответа на уже завершённой сессии не архивирует повторно,
	// пока сессия не завершится заново из незавершённого состояния.
	_, err = svc.Answer(context.Background(), started.SessionID,
		models.QuestionIncome, models.MoneyAnswer(200_000_000))
	require.NoError(t, err)

	archive.AssertExpectations(t)
}

// TestService_ArchiveFailureDoesNotBreakFlow: ошибка архива логируется,
// но не мешает пользователю получить результат.
func TestService_ArchiveFailureDoesNotBreakFlow(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	svc := newTestService(store, archive)

	archive.On("SaveResult", mock.Anything, mock.Anything).
		Return(0, errors.New("database error"))

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	view := completeSession(t, svc, started.SessionID)
	assert.Equal(t, wizard.StateCompleted, view.State)
}

func TestService_RecommendationAndEligibility(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	archive.On("SaveResult", mock.Anything, mock.Anything).Return(1, nil)
	svc := newTestService(store, archive)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	// Предпросмотр до ответов: fail-closed.
	recommendation, err := svc.Recommendation(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationIncomplete, recommendation.Status)

	completeSession(t, svc, started.SessionID)

	eligible, err := svc.Eligibility(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.True(t, eligible[models.FormSelfEmployed].Eligible)

	recommendation, err = svc.Recommendation(context.Background(), started.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.RecommendationOK, recommendation.Status)
	top, ok := recommendation.Top()
	require.True(t, ok)
	assert.Equal(t, models.FormSelfEmployed, top.Form)
}

func TestService_Comparison(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	archive.On("SaveResult", mock.Anything, mock.Anything).Return(1, nil)
	svc := newTestService(store, archive)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)
	completeSession(t, svc, started.SessionID)

	rows, err := svc.Comparison(context.Background(), started.SessionID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.FormSelfEmployed, rows[0].Form)
	assert.True(t, rows[0].Eligible)
	assert.Equal(t, "60 000,00 ₽", rows[0].TaxRub)
	assert.Equal(t, "940 000,00 ₽", rows[0].NetRub)
}

func TestService_Reset(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	archive.On("SaveResult", mock.Anything, mock.Anything).Return(1, nil)
	svc := newTestService(store, archive)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)
	completeSession(t, svc, started.SessionID)

	view, err := svc.Reset(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StateNotStarted, view.State)
	assert.Nil(t, view.Question)
}

// TestService_Abandon: удаление сессии стирает снимок — повторные
// запросы по тому же идентификатору получают "сессия не найдена".
func TestService_Abandon(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	svc := newTestService(store, archive)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(context.Background(), started.SessionID))

	_, err = svc.CurrentStep(context.Background(), started.SessionID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	err = svc.Abandon(context.Background(), started.SessionID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestService_Stats(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	archive.On("CountByForm", mock.Anything, 2026).Return(map[models.BusinessForm]int{
		models.FormSelfEmployed:   7,
		models.FormSoleProprietor: 3,
	}, nil)
	svc := newTestService(store, archive)

	view, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2026, view.FiscalYear)
	assert.Equal(t, 10, view.Total)
	assert.Equal(t, 7, view.ByForm[models.FormSelfEmployed])
	archive.AssertExpectations(t)
}

func TestService_StatsArchiveError(t *testing.T) {
	store := NewMockStore()
	archive := new(MockArchive)
	archive.On("CountByForm", mock.Anything, 2026).
		Return(nil, errors.New("connection refused"))
	svc := newTestService(store, archive)

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}
