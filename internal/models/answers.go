package models

// QuestionID — идентификатор шага мастера.
type QuestionID string

// Шаги мастера. Порядок обхода и условные переходы задаёт граф шагов
// в пакете wizard, здесь только идентификаторы.
const (
	QuestionIncome       QuestionID = "income"              // Годовая выручка, копейки
	QuestionExpenses     QuestionID = "expenses"            // Подтверждаемые расходы за год, копейки
	QuestionPartners     QuestionID = "partners"            // Число партнёров (соучредителей)
	QuestionHasEmployees QuestionID = "has_employees"       // Есть ли наёмные сотрудники
	QuestionEmployees    QuestionID = "employees"           // Число сотрудников
	QuestionActivity     QuestionID = "activity"            // Категория деятельности
	QuestionRegion       QuestionID = "region_preferential" // Регион с льготной ставкой УСН
)

// AnswerKind — тип значения ответа.
type AnswerKind string

// Типы значений ответов.
const (
	AnswerMoney  AnswerKind = "money"  // Денежная сумма в копейках
	AnswerNumber AnswerKind = "number" // Целое число
	AnswerBool   AnswerKind = "bool"   // Да/нет
	AnswerEnum   AnswerKind = "enum"   // Один вариант из закрытого перечня
)

// AnswerValue — значение одного ответа. Заполнено ровно одно поле,
// соответствующее Kind; структура сериализуется в JSON при сохранении
// снимка сессии в хранилище.
type AnswerValue struct {
	Kind AnswerKind `json:"kind"`
	Int  int64      `json:"int,omitempty"`
	Bool bool       `json:"bool,omitempty"`
	Str  string     `json:"str,omitempty"`
}

// MoneyAnswer создаёт ответ с денежной суммой.
func MoneyAnswer(v Money) AnswerValue { return AnswerValue{Kind: AnswerMoney, Int: int64(v)} }

// NumberAnswer создаёт ответ с целым числом.
func NumberAnswer(v int64) AnswerValue { return AnswerValue{Kind: AnswerNumber, Int: v} }

// BoolAnswer создаёт ответ да/нет.
func BoolAnswer(v bool) AnswerValue { return AnswerValue{Kind: AnswerBool, Bool: v} }

// EnumAnswer создаёт ответ с вариантом из перечня.
func EnumAnswer(v string) AnswerValue { return AnswerValue{Kind: AnswerEnum, Str: v} }

// UserAnswers — накопленные ответы пользователя: отображение идентификатора
// вопроса в значение. Повторный ответ на вопрос перезаписывает прежний
// (last-write-wins). Структура живёт только в рамках сессии мастера.
type UserAnswers map[QuestionID]AnswerValue

// Clone возвращает независимую копию ответов. Производные запросы мастера
// работают со снимком, чтобы пересчёт не наблюдал частичных изменений.
func (a UserAnswers) Clone() UserAnswers {
	cp := make(UserAnswers, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}

// Income возвращает годовую выручку, если она указана.
func (a UserAnswers) Income() (Money, bool) {
	v, ok := a[QuestionIncome]
	if !ok || v.Kind != AnswerMoney {
		return 0, false
	}
	return Money(v.Int), true
}

// Expenses возвращает расходы за год, если они указаны.
func (a UserAnswers) Expenses() (Money, bool) {
	v, ok := a[QuestionExpenses]
	if !ok || v.Kind != AnswerMoney {
		return 0, false
	}
	return Money(v.Int), true
}

// Partners возвращает число партнёров, если оно указано.
func (a UserAnswers) Partners() (int, bool) {
	v, ok := a[QuestionPartners]
	if !ok || v.Kind != AnswerNumber {
		return 0, false
	}
	return int(v.Int), true
}

// HasEmployees возвращает признак наличия сотрудников, если он указан.
func (a UserAnswers) HasEmployees() (bool, bool) {
	v, ok := a[QuestionHasEmployees]
	if !ok || v.Kind != AnswerBool {
		return false, false
	}
	return v.Bool, true
}

// Employees возвращает число сотрудников. Если пользователь ответил,
// что сотрудников нет, возвращает 0 и true: ветка с точным числом
// в этом случае пропускается графом шагов.
func (a UserAnswers) Employees() (int, bool) {
	if has, ok := a.HasEmployees(); ok && !has {
		return 0, true
	}
	v, ok := a[QuestionEmployees]
	if !ok || v.Kind != AnswerNumber {
		return 0, false
	}
	return int(v.Int), true
}

// Activity возвращает категорию деятельности, если она указана.
func (a UserAnswers) Activity() (Activity, bool) {
	v, ok := a[QuestionActivity]
	if !ok || v.Kind != AnswerEnum {
		return "", false
	}
	return Activity(v.Str), true
}

// PreferentialRegion возвращает признак льготного региона. Вопрос
// необязательный: отсутствие ответа трактуется как «нет».
func (a UserAnswers) PreferentialRegion() bool {
	v, ok := a[QuestionRegion]
	if !ok || v.Kind != AnswerBool {
		return false
	}
	return v.Bool
}
