// Package models содержит доменные структуры мастера подбора формы бизнеса:
// формы ведения деятельности, налоговые режимы, ответы пользователя,
// таблицы правил и результаты расчётов.
package models

// BusinessForm — форма ведения бизнеса. Используется как ключ
// во всех таблицах правил и результатах.
type BusinessForm string

// Поддерживаемые формы ведения бизнеса.
const (
	FormSelfEmployed   BusinessForm = "self_employed"   // Самозанятый (плательщик НПД)
	FormSoleProprietor BusinessForm = "sole_proprietor" // Индивидуальный предприниматель
	FormLLC            BusinessForm = "llc"             // Общество с ограниченной ответственностью
)

// AllForms перечисляет формы в порядке возрастания административной нагрузки.
// Порядок значим: он же используется как запасной критерий ранжирования.
func AllForms() []BusinessForm {
	return []BusinessForm{FormSelfEmployed, FormSoleProprietor, FormLLC}
}

// Valid сообщает, является ли значение известной формой бизнеса.
func (f BusinessForm) Valid() bool {
	switch f {
	case FormSelfEmployed, FormSoleProprietor, FormLLC:
		return true
	}
	return false
}

// Title возвращает русское название формы для отображения на границе представления.
func (f BusinessForm) Title() string {
	switch f {
	case FormSelfEmployed:
		return "Самозанятость (НПД)"
	case FormSoleProprietor:
		return "Индивидуальный предприниматель"
	case FormLLC:
		return "ООО"
	}
	return string(f)
}

// TaxRegime — налоговый режим. Не каждый режим допустим для каждой формы:
// допустимые сочетания задаются таблицей пар в RuleSet.
type TaxRegime string

// Поддерживаемые налоговые режимы.
const (
	RegimeNPD              TaxRegime = "npd"                // Налог на профессиональный доход
	RegimeUSNIncome        TaxRegime = "usn_income"         // УСН «доходы»
	RegimeUSNIncomeExpense TaxRegime = "usn_income_expense" // УСН «доходы минус расходы»
	RegimeGeneral          TaxRegime = "general"            // Общая система налогообложения
)

// Valid сообщает, является ли значение известным налоговым режимом.
func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeNPD, RegimeUSNIncome, RegimeUSNIncomeExpense, RegimeGeneral:
		return true
	}
	return false
}

// Title возвращает русское название режима.
func (r TaxRegime) Title() string {
	switch r {
	case RegimeNPD:
		return "НПД"
	case RegimeUSNIncome:
		return "УСН «доходы»"
	case RegimeUSNIncomeExpense:
		return "УСН «доходы минус расходы»"
	case RegimeGeneral:
		return "ОСНО"
	}
	return string(r)
}

// Activity — категория деятельности пользователя. Закрытый перечень:
// часть категорий исключает отдельные формы (например, перепродажа
// товаров и лицензируемая деятельность недоступны на НПД).
type Activity string

// Категории деятельности.
const (
	ActivityServices   Activity = "services"   // Услуги
	ActivityTrade      Activity = "trade"      // Торговля (перепродажа товаров)
	ActivityProduction Activity = "production" // Производство
	ActivityLicensed   Activity = "licensed"   // Лицензируемая деятельность
)

// Valid сообщает, является ли значение известной категорией деятельности.
func (a Activity) Valid() bool {
	switch a {
	case ActivityServices, ActivityTrade, ActivityProduction, ActivityLicensed:
		return true
	}
	return false
}
