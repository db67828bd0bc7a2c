package models

import "fmt"

// DummyAnswer используется для приёма ответа на шаг из JSON-запроса,
// прежде чем конвертировать его в AnswerValue. Заполняется ровно одно
// поле значения в соответствии с kind.
type DummyAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`                       // Идентификатор вопроса
	Kind       string `json:"kind" validate:"required,oneof=money number bool enum"` // Тип значения
	Int        int64  `json:"int,omitempty"`                                         // Денежное или числовое значение
	Bool       bool   `json:"bool,omitempty"`                                        // Значение да/нет
	Str        string `json:"str,omitempty"`                                         // Вариант перечня
}

// ToAnswer конвертирует DTO в идентификатор вопроса и типизированное значение.
func (d DummyAnswer) ToAnswer() (QuestionID, AnswerValue, error) {
	kind := AnswerKind(d.Kind)
	switch kind {
	case AnswerMoney, AnswerNumber, AnswerBool, AnswerEnum:
	default:
		return "", AnswerValue{}, fmt.Errorf("unknown answer kind %q", d.Kind)
	}
	return QuestionID(d.QuestionID), AnswerValue{
		Kind: kind,
		Int:  d.Int,
		Bool: d.Bool,
		Str:  d.Str,
	}, nil
}
