// Package wizard реализует пошаговый опрос мастера подбора формы бизнеса:
// граф вопросов с условными переходами и конечный автомат сессии.
package wizard

import (
	"github.com/EgorCode/businessform-sub002/internal/models"
)

// Question — узел графа шагов: объявление типа значения, границы
// допустимого диапазона и переход к следующему шагу. Переходы могут
// зависеть от уже данных ответов (условные ветки).
type Question struct {
	ID     models.QuestionID
	Kind   models.AnswerKind
	Prompt string

	// Min и Max — допустимый диапазон для числовых и денежных ответов.
	Min int64
	Max int64
	// Options — допустимые варианты для ответов-перечислений.
	Options []string

	// next возвращает идентификатор следующего шага при текущих ответах;
	// пустой идентификатор означает конец опроса.
	next func(answers models.UserAnswers) models.QuestionID
}

// maxIncome ограничивает выручку сверху (100 млрд рублей в копейках):
// целочисленная арифметика ставок не переполняется в этих пределах.
const maxIncome = 100_000_000_000 * models.KopecksPerRuble

// graph — граф шагов мастера. Порядок обхода: выручка → расходы →
// партнёры → наличие сотрудников → (число сотрудников | пропуск) →
// деятельность → льготный регион.
var graph = []Question{
	{
		ID:     models.QuestionIncome,
		Kind:   models.AnswerMoney,
		Prompt: "Какова ожидаемая выручка за год?",
		Min:    1,
		Max:    maxIncome,
		next: func(models.UserAnswers) models.QuestionID {
			return models.QuestionExpenses
		},
	},
	{
		ID:     models.QuestionExpenses,
		Kind:   models.AnswerMoney,
		Prompt: "Сколько из этого составят подтверждаемые расходы?",
		Min:    0,
		Max:    maxIncome,
		next: func(models.UserAnswers) models.QuestionID {
			return models.QuestionPartners
		},
	},
	{
		ID:     models.QuestionPartners,
		Kind:   models.AnswerNumber,
		Prompt: "Сколько у вас партнёров (соучредителей)?",
		Min:    0,
		Max:    50,
		next: func(models.UserAnswers) models.QuestionID {
			return models.QuestionHasEmployees
		},
	},
	{
		ID:     models.QuestionHasEmployees,
		Kind:   models.AnswerBool,
		Prompt: "Планируете нанимать сотрудников?",
		next: func(answers models.UserAnswers) models.QuestionID {
			if has, ok := answers.HasEmployees(); ok && has {
				return models.QuestionEmployees
			}
			return models.QuestionActivity
		},
	},
	{
		ID:     models.QuestionEmployees,
		Kind:   models.AnswerNumber,
		Prompt: "Сколько сотрудников планируете нанять?",
		Min:    1,
		Max:    500,
		next: func(models.UserAnswers) models.QuestionID {
			return models.QuestionActivity
		},
	},
	{
		ID:      models.QuestionActivity,
		Kind:    models.AnswerEnum,
		Prompt:  "Чем планируете заниматься?",
		Options: []string{"services", "trade", "production", "licensed"},
		next: func(models.UserAnswers) models.QuestionID {
			return models.QuestionRegion
		},
	},
	{
		ID:     models.QuestionRegion,
		Kind:   models.AnswerBool,
		Prompt: "Зарегистрированы ли вы в регионе с льготной ставкой УСН?",
		next: func(models.UserAnswers) models.QuestionID {
			return ""
		},
	},
}

// questionByID индексирует граф для поиска вопроса за O(1).
var questionByID = func() map[models.QuestionID]Question {
	idx := make(map[models.QuestionID]Question, len(graph))
	for _, q := range graph {
		idx[q.ID] = q
	}
	return idx
}()

// FirstQuestion возвращает стартовый шаг мастера.
func FirstQuestion() Question {
	return graph[0]
}

// QuestionByID возвращает вопрос по идентификатору.
func QuestionByID(id models.QuestionID) (Question, bool) {
	q, ok := questionByID[id]
	return q, ok
}

// reachable возвращает множество вопросов, достижимых из стартового шага
// при данных ответах. Используется для отбрасывания ответов на вопросы,
// ставшие недостижимыми после редактирования точки ветвления.
func reachable(answers models.UserAnswers) map[models.QuestionID]bool {
	seen := make(map[models.QuestionID]bool, len(graph))
	id := graph[0].ID
	for id != "" && !seen[id] {
		seen[id] = true
		q := questionByID[id]
		id = q.next(answers)
	}
	return seen
}

// firstUnanswered возвращает первый достижимый вопрос без ответа;
// пустой идентификатор означает, что опрос завершён.
func firstUnanswered(answers models.UserAnswers) models.QuestionID {
	id := graph[0].ID
	for id != "" {
		if _, ok := answers[id]; !ok {
			return id
		}
		id = questionByID[id].next(answers)
	}
	return ""
}

// validate проверяет значение против объявления вопроса: соответствие
// типа и попадание в диапазон или перечень.
func (q Question) validate(value models.AnswerValue) error {
	if value.Kind != q.Kind {
		return models.NewValidationError(q.ID, "expected %s value, got %s", q.Kind, value.Kind)
	}
	switch q.Kind {
	case models.AnswerMoney, models.AnswerNumber:
		if value.Int < q.Min || value.Int > q.Max {
			return models.NewValidationError(q.ID, "value %d out of range [%d, %d]", value.Int, q.Min, q.Max)
		}
	case models.AnswerEnum:
		for _, opt := range q.Options {
			if value.Str == opt {
				return nil
			}
		}
		return models.NewValidationError(q.ID, "unknown option %q", value.Str)
	}
	return nil
}
