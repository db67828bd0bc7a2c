// Package wizardservice содержит бизнес-логику сессий мастера подбора:
// создание и восстановление сессий из хранилища снимков, приём ответов,
// производные запросы и архивирование завершённых подборов.
package wizardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EgorCode/businessform-sub002/internal/lib/sl"
	"github.com/EgorCode/businessform-sub002/internal/models"
	"github.com/EgorCode/businessform-sub002/internal/taxcalc"
	"github.com/EgorCode/businessform-sub002/internal/wizard"
)

// SessionStore определяет методы хранилища снимков сессий. Каждая сессия
// хранится под собственным ключом: состояние не разделяется между
// пользователями, истёкший снимок равносилен отсутствию сессии.
type SessionStore interface {
	// Get читает значение по ключу; false — ключа нет или он истёк.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение по ключу.
	Invalidate(ctx context.Context, key string) error
}

// ArchiveRepository определяет методы архива завершённых подборов.
type ArchiveRepository interface {
	// SaveResult сохраняет обезличенную запись о завершённом подборе.
	SaveResult(ctx context.Context, entry models.ArchiveEntry) (int, error)
	// CountByForm возвращает распределение подборов по формам за год.
	CountByForm(ctx context.Context, fiscalYear int) (map[models.BusinessForm]int, error)
}

// Service реализует бизнес-логику мастера. Таблицы правил записаны при
// создании и далее только читаются.
type Service struct {
	store   SessionStore
	archive ArchiveRepository
	rules   *models.RuleSet
	ttl     time.Duration
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(store SessionStore, archive ArchiveRepository, rules *models.RuleSet,
	ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		archive: archive,
		rules:   rules,
		ttl:     ttl,
		log:     log,
	}
}

// QuestionView — вопрос текущего шага в виде, готовом для ответа API.
type QuestionView struct {
	ID       models.QuestionID `json:"id"`
	Kind     models.AnswerKind `json:"kind"`
	Prompt   string            `json:"prompt"`
	Min      int64             `json:"min,omitempty"`
	Max      int64             `json:"max,omitempty"`
	Options  []string          `json:"options,omitempty"`
	Answered int               `json:"answered"`
	Total    int               `json:"total"`
}

// SessionView — снимок сессии для ответа API.
type SessionView struct {
	SessionID string        `json:"session_id"`
	State     wizard.State  `json:"state"`
	Question  *QuestionView `json:"question,omitempty"`
}

// ComparisonRow — строка сравнительной таблицы: расчёт одной пары
// (форма, режим) и доступность формы при текущих ответах. Суммы
// дублируются в рублях — перевод из копеек происходит только здесь,
// на границе представления.
type ComparisonRow struct {
	Form        models.BusinessForm      `json:"form"`
	FormTitle   string                   `json:"form_title"`
	Regime      models.TaxRegime         `json:"regime"`
	RegimeTitle string                   `json:"regime_title"`
	Eligible    bool                     `json:"eligible"`
	Calculation models.CalculationResult `json:"calculation"`
	TaxRub      string                   `json:"tax_rub"`
	NetRub      string                   `json:"net_rub"`
}

func sessionKey(id string) string {
	return fmt.Sprintf("wizard:session:%s", id)
}

// Start создаёт новую сессию, переводит её на первый шаг и сохраняет снимок.
func (s *Service) Start(ctx context.Context) (*SessionView, error) {
	const op = "wizardservice.Start"

	session := wizard.NewSession(uuid.NewString())
	session.Start()

	if err := s.store.Set(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("started wizard session", slog.String("session_id", session.ID))

	return s.view(session), nil
}

// Answer принимает ответ на шаг, сохраняет обновлённый снимок и при
// завершении опроса архивирует первичную рекомендацию. Ошибка архива
// не прерывает сценарий: подбор пользователю важнее аналитики.
func (s *Service) Answer(ctx context.Context, sessionID string,
	questionID models.QuestionID, value models.AnswerValue) (*SessionView, error) {
	const op = "wizardservice.Answer"

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wasCompleted := session.State == wizard.StateCompleted
	if err := session.AnswerStep(questionID, value); err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.State == wizard.StateCompleted && !wasCompleted {
		s.archiveResult(ctx, session)
	}

	return s.view(session), nil
}

// CurrentStep возвращает снимок сессии с вопросом текущего шага.
func (s *Service) CurrentStep(ctx context.Context, sessionID string) (*SessionView, error) {
	const op = "wizardservice.CurrentStep"

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.view(session), nil
}

// Eligibility возвращает доступность форм по текущему снимку ответов.
// Запрос легитимен на любом шаге: до полного набора обязательных ответов
// все формы закрыты с причиной incomplete_input.
func (s *Service) Eligibility(ctx context.Context, sessionID string) (map[models.BusinessForm]models.EligibilityResult, error) {
	const op = "wizardservice.Eligibility"

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session.CurrentEligibleForms(s.rules), nil
}

// Recommendation возвращает ранжированную рекомендацию по текущему
// снимку ответов.
func (s *Service) Recommendation(ctx context.Context, sessionID string) (models.Recommendation, error) {
	const op = "wizardservice.Recommendation"

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("%s: %w", op, err)
	}
	return session.CurrentRecommendation(s.rules), nil
}

// Comparison строит сравнительную таблицу по всем зарегистрированным
// парам (форма, режим), включая недоступные формы: поясняющему экрану
// нужна полная картина.
func (s *Service) Comparison(ctx context.Context, sessionID string) ([]ComparisonRow, error) {
	const op = "wizardservice.Comparison"

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eligible := session.CurrentEligibleForms(s.rules)

	var rows []ComparisonRow
	for _, pairing := range s.rules.Pairings {
		calc, err := taxcalc.Calculate(pairing.Form, pairing.Regime, session.Answers, s.rules)
		if err != nil {
			if errors.Is(err, models.ErrIncompleteInput) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rows = append(rows, ComparisonRow{
			Form:        pairing.Form,
			FormTitle:   pairing.Form.Title(),
			Regime:      pairing.Regime,
			RegimeTitle: pairing.Regime.Title(),
			Eligible:    eligible[pairing.Form].Eligible,
			Calculation: calc,
			TaxRub:      calc.Tax.FormatRubles(),
			NetRub:      calc.Net.FormatRubles(),
		})
	}
	return rows, nil
}

// Reset отбрасывает все ответы сессии и сохраняет пустой снимок.
func (s *Service) Reset(ctx context.Context, sessionID string) (*SessionView, error) {
	const op = "wizardservice.Reset"

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	session.Reset()

	if err := s.store.Set(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("reset wizard session", slog.String("session_id", session.ID))
	return s.view(session), nil
}

// Abandon завершает сессию досрочно: снимок удаляется из хранилища,
// идентификатор перестаёт действовать.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	const op = "wizardservice.Abandon"

	if _, err := s.load(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Invalidate(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("abandoned wizard session", slog.String("session_id", sessionID))
	return nil
}

// StatsView — распределение завершённых подборов по формам за
// финансовый год.
type StatsView struct {
	FiscalYear int                         `json:"fiscal_year"`
	Total      int                         `json:"total"`
	ByForm     map[models.BusinessForm]int `json:"by_form"`
}

// Stats агрегирует архив обезличенных результатов за текущий
// финансовый год.
func (s *Service) Stats(ctx context.Context) (*StatsView, error) {
	const op = "wizardservice.Stats"

	counts, err := s.archive.CountByForm(ctx, s.rules.FiscalYear)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := &StatsView{FiscalYear: s.rules.FiscalYear, ByForm: counts}
	for _, count := range counts {
		view.Total += count
	}
	return view, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*wizard.Session, error) {
	var session wizard.Session
	found, err := s.store.Get(ctx, sessionKey(sessionID), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Service) view(session *wizard.Session) *SessionView {
	view := &SessionView{
		SessionID: session.ID,
		State:     session.State,
	}
	if question, ok := session.Current(); ok {
		answered, total := session.Progress()
		view.Question = &QuestionView{
			ID:       question.ID,
			Kind:     question.Kind,
			Prompt:   question.Prompt,
			Min:      question.Min,
			Max:      question.Max,
			Options:  question.Options,
			Answered: answered,
			Total:    total,
		}
	}
	return view
}

// archiveResult сохраняет первичную рекомендацию завершённой сессии.
// Подбор без единой доступной формы не архивируется.
func (s *Service) archiveResult(ctx context.Context, session *wizard.Session) {
	recommendation := session.CurrentRecommendation(s.rules)
	top, ok := recommendation.Top()
	if !ok {
		return
	}

	entry := models.ArchiveEntry{
		SessionID:     session.ID,
		FiscalYear:    s.rules.FiscalYear,
		Form:          top.Form,
		Regime:        top.Regime,
		Gross:         top.Calculation.Gross,
		Tax:           top.Calculation.Tax,
		Contributions: top.Calculation.Contributions,
		Net:           top.Calculation.Net,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.archive.SaveResult(ctx, entry); err != nil {
		s.log.Warn("failed to archive recommendation",
			slog.String("session_id", session.ID), sl.Err(err))
		return
	}
	s.log.Info("archived completed recommendation",
		slog.String("session_id", session.ID),
		slog.String("form", string(top.Form)),
		slog.String("regime", string(top.Regime)))
}
