package models

// Reason — код нарушенного ограничения. Коды разворачиваются в текст
// только на границе представления, ядро оперирует перечислением.
type Reason string

// Коды причин недоступности формы.
const (
	ReasonIncompleteInput  Reason = "incomplete_input"  // Не все обязательные ответы получены
	ReasonRevenueCeiling   Reason = "revenue_ceiling"   // Превышен потолок годовой выручки
	ReasonPartnerLimit     Reason = "partner_limit"     // Превышено допустимое число партнёров
	ReasonEmployeeLimit    Reason = "employee_limit"    // Превышено допустимое число сотрудников
	ReasonActivityExcluded Reason = "activity_excluded" // Категория деятельности недоступна для формы
)

// Text возвращает русское описание причины.
func (r Reason) Text() string {
	switch r {
	case ReasonIncompleteInput:
		return "получены не все обязательные ответы"
	case ReasonRevenueCeiling:
		return "годовая выручка превышает допустимый потолок"
	case ReasonPartnerLimit:
		return "число партнёров превышает допустимое"
	case ReasonEmployeeLimit:
		return "число сотрудников превышает допустимое"
	case ReasonActivityExcluded:
		return "вид деятельности недоступен для этой формы"
	}
	return string(r)
}

// EligibilityResult — результат проверки одной формы: флаг доступности
// и полный список нарушенных ограничений. Список полон намеренно:
// поясняющему интерфейсу нужны все причины, а не первая найденная.
type EligibilityResult struct {
	Form     BusinessForm `json:"form"`
	Eligible bool         `json:"eligible"`
	Reasons  []Reason     `json:"reasons,omitempty"`
}

// CalculationResult — результат расчёта налоговой нагрузки одной пары
// (форма, режим). Все суммы в копейках. Инвариант:
// Net = Gross − Expenses − Tax − Contributions.
type CalculationResult struct {
	Form   BusinessForm `json:"form"`
	Regime TaxRegime    `json:"regime"`

	Gross         Money `json:"gross"`         // Годовая выручка
	Expenses      Money `json:"expenses"`      // Учтённые расходы (0 для режимов без вычета)
	TaxableBase   Money `json:"taxable_base"`  // Налоговая база
	Tax           Money `json:"tax"`           // Налог с учётом минимального порога
	Contributions Money `json:"contributions"` // Страховые взносы: фиксированные + дополнительный
	Net           Money `json:"net"`           // Чистый доход
}

// RecommendationStatus — итоговый статус подбора.
type RecommendationStatus string

// Статусы подбора. NoEligibleForm и IncompleteInput — легитимные деловые
// исходы, а не ошибки: мастер показывает по ним поясняющий экран.
const (
	RecommendationOK             RecommendationStatus = "ok"
	RecommendationNoEligibleForm RecommendationStatus = "no_eligible_form"
	RecommendationIncomplete     RecommendationStatus = "incomplete_input"
)

// RecommendationItem — одна позиция ранжированного списка.
type RecommendationItem struct {
	Form        BusinessForm      `json:"form"`
	Regime      TaxRegime         `json:"regime"`
	Calculation CalculationResult `json:"calculation"`
	// Score — ключ ранжирования, равен чистому доходу в копейках.
	Score Money `json:"score"`
}

// Recommendation — итог подбора: статус, доступность каждой формы и
// список пар, отсортированный по чистому доходу (убывание) с разрешением
// ничьих по административной простоте (возрастание).
type Recommendation struct {
	Status      RecommendationStatus               `json:"status"`
	Eligibility map[BusinessForm]EligibilityResult `json:"eligibility"`
	Items       []RecommendationItem               `json:"items,omitempty"`
}

// Top возвращает первичную рекомендацию, если список не пуст.
func (r Recommendation) Top() (RecommendationItem, bool) {
	if len(r.Items) == 0 {
		return RecommendationItem{}, false
	}
	return r.Items[0], true
}
