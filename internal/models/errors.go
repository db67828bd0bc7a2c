package models

import (
	"errors"
	"fmt"
)

// Ошибки ядра. Деловые исходы (нет подходящей формы, неполный ввод при
// предпросмотре) ошибками не являются и выражаются статусами; ошибки ниже
// означают структурно некорректный ввод или неверную конфигурацию.
var (
	// ErrInvalidCombination — пара (форма, режим) не зарегистрирована
	// в таблице пар RuleSet. Ошибка конфигурации, не деловой исход.
	ErrInvalidCombination = errors.New("invalid form/regime combination")

	// ErrIncompleteInput — обязательный ответ отсутствует там, где
	// вычисление без него невозможно.
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrSessionNotFound — сессия мастера не найдена или истекла.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError — отказ принять значение одного шага: несоответствие
// типа или выход за допустимый диапазон. Ошибка локальна для шага,
// повторный ввод корректного значения её устраняет.
type ValidationError struct {
	Question QuestionID
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Question, e.Message)
}

// NewValidationError создаёт ValidationError для вопроса.
func NewValidationError(q QuestionID, format string, args ...any) *ValidationError {
	return &ValidationError{Question: q, Message: fmt.Sprintf(format, args...)}
}
