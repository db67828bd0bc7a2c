package wizard

import (
	"time"

	"github.com/EgorCode/businessform-sub002/internal/eligibility"
	"github.com/EgorCode/businessform-sub002/internal/models"
	"github.com/EgorCode/businessform-sub002/internal/recommend"
)

// State — состояние сессии мастера.
type State string

// Состояния конечного автомата сессии. Completed не терминально:
// редактирование любого раннего ответа возвращает сессию в InProgress
// на соответствующий шаг.
const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Session — сессия мастера: единственная изменяемая часть ядра. Состояние
// принадлежит одному пользователю; изоляция сессий между пользователями —
// обязанность хранилища снимков, конкурентная мутация одной сессии
// не поддерживается. Структура сериализуется в JSON при сохранении снимка.
type Session struct {
	ID        string             `json:"id"`
	State     State              `json:"state"`
	Step      models.QuestionID  `json:"step,omitempty"`
	Answers   models.UserAnswers `json:"answers"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewSession создаёт сессию в состоянии NotStarted.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		State:     StateNotStarted,
		Answers:   models.UserAnswers{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start переводит сессию на первый шаг опроса. Повторный вызов на уже
// идущей сессии ничего не меняет.
func (s *Session) Start() {
	if s.State != StateNotStarted {
		return
	}
	s.State = StateInProgress
	s.Step = FirstQuestion().ID
	s.UpdatedAt = time.Now().UTC()
}

// AnswerStep валидирует и сохраняет ответ на вопрос. Ответ на уже
// пройденный вопрос перезаписывает прежнее значение (last-write-wins);
// если правка меняет ветку графа, ответы на ставшие недостижимыми вопросы
// отбрасываются, остальные сохраняются. Текущим шагом становится первый
// достижимый вопрос без ответа; если таких нет — сессия завершена.
// Возвращает *models.ValidationError при несоответствии типа или выходе
// значения за диапазон.
func (s *Session) AnswerStep(id models.QuestionID, value models.AnswerValue) error {
	question, ok := QuestionByID(id)
	if !ok {
		return models.NewValidationError(id, "unknown question")
	}
	if err := question.validate(value); err != nil {
		return err
	}

	s.Answers[id] = value

	// Правка точки ветвления делает часть ветки недостижимой: её ответы
	// больше не участвуют ни в проверках, ни в расчётах.
	keep := reachable(s.Answers)
	for answered := range s.Answers {
		if !keep[answered] {
			delete(s.Answers, answered)
		}
	}

	if next := firstUnanswered(s.Answers); next != "" {
		s.State = StateInProgress
		s.Step = next
	} else {
		s.State = StateCompleted
		s.Step = ""
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Current возвращает вопрос текущего шага; false — опрос завершён
// или не начат.
func (s *Session) Current() (Question, bool) {
	if s.State != StateInProgress {
		return Question{}, false
	}
	return QuestionByID(s.Step)
}

// Progress возвращает число отвеченных вопросов и длину опроса при
// текущих ответах: ветвление меняет число достижимых шагов.
func (s *Session) Progress() (answered, total int) {
	return len(s.Answers), len(reachable(s.Answers))
}

// Reset отбрасывает все ответы и возвращает сессию в NotStarted.
func (s *Session) Reset() {
	s.Answers = models.UserAnswers{}
	s.State = StateNotStarted
	s.Step = ""
	s.UpdatedAt = time.Now().UTC()
}

// CurrentEligibleForms возвращает доступность форм по текущему снимку
// ответов. Запрос производный и только читающий: его можно звать на любом
// шаге, до полного набора обязательных ответов он даёт fail-closed
// предпросмотр с причиной incomplete_input.
func (s *Session) CurrentEligibleForms(rules *models.RuleSet) map[models.BusinessForm]models.EligibilityResult {
	return eligibility.Evaluate(s.Answers.Clone(), rules)
}

// CurrentRecommendation возвращает рекомендацию по текущему снимку
// ответов. До полного набора обязательных ответов вернётся статус
// incomplete_input с пустым списком.
func (s *Session) CurrentRecommendation(rules *models.RuleSet) models.Recommendation {
	return recommend.Recommend(s.Answers.Clone(), rules)
}
