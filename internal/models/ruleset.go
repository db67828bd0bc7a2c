package models

// RuleSet — таблицы налоговых правил одного финансового года. Значение
// загружается один раз при старте процесса и далее только читается:
// конкурентное чтение без синхронизации безопасно, мутация после загрузки
// запрещена. Ставки хранятся в базисных пунктах (1% = 100 б.п.), суммы —
// в копейках, что делает все расчёты целочисленными.
type RuleSet struct {
	FiscalYear int   `yaml:"fiscal_year"`
	MinorUnits int64 `yaml:"minor_units"` // минорных единиц в рубле; калькулятор требует копейки

	Forms    map[BusinessForm]FormRules `yaml:"forms"`
	Pairings []PairingRules             `yaml:"pairings"`
}

// FormRules — требования и ограничения одной формы бизнеса.
type FormRules struct {
	// SimplicityRank — административная простота формы: меньше — проще.
	// Используется как второй ключ ранжирования рекомендаций.
	SimplicityRank int `yaml:"simplicity_rank"`

	// MaxRevenue — потолок годовой выручки в копейках, 0 — без ограничения.
	MaxRevenue Money `yaml:"max_revenue"`
	// MaxPartners — максимум партнёров; -1 — без ограничения.
	MaxPartners int `yaml:"max_partners"`
	// MaxEmployees — максимум сотрудников; -1 — без ограничения.
	MaxEmployees int `yaml:"max_employees"`
	// ExcludedActivities — категории деятельности, закрытые для формы.
	ExcludedActivities []Activity `yaml:"excluded_activities"`
}

// AllowsRevenue проверяет выручку против потолка формы.
func (f FormRules) AllowsRevenue(v Money) bool {
	return f.MaxRevenue == 0 || v <= f.MaxRevenue
}

// AllowsPartners проверяет число партнёров против ограничения формы.
func (f FormRules) AllowsPartners(n int) bool {
	return f.MaxPartners < 0 || n <= f.MaxPartners
}

// AllowsEmployees проверяет число сотрудников против ограничения формы.
func (f FormRules) AllowsEmployees(n int) bool {
	return f.MaxEmployees < 0 || n <= f.MaxEmployees
}

// AllowsActivity проверяет, не входит ли категория в список исключений.
func (f FormRules) AllowsActivity(a Activity) bool {
	for _, excluded := range f.ExcludedActivities {
		if excluded == a {
			return false
		}
	}
	return true
}

// PairingRules — правила одной допустимой пары (форма, режим): ставка,
// минимальный налог и страховые взносы. Пара, отсутствующая в таблице,
// считается недопустимой комбинацией.
type PairingRules struct {
	Form   BusinessForm `yaml:"form"`
	Regime TaxRegime    `yaml:"regime"`

	// RateBP — базовая ставка налога в базисных пунктах.
	RateBP int64 `yaml:"rate_bp"`
	// RegionalRateBP — льготная ставка для регионов с пониженной ставкой УСН;
	// 0 — региональной льготы нет.
	RegionalRateBP int64 `yaml:"regional_rate_bp"`
	// MinTaxRateBP — ставка минимального налога от выручки (УСН «доходы минус
	// расходы»: 1% от выручки, если рассчитанный налог ниже); 0 — порога нет.
	MinTaxRateBP int64 `yaml:"min_tax_rate_bp"`
	// ExpensesDeductible — вычитаются ли расходы из налоговой базы.
	ExpensesDeductible bool `yaml:"expenses_deductible"`

	// MaxRevenue — потолок выручки самого режима (лимит УСН), 0 — нет.
	MaxRevenue Money `yaml:"max_revenue"`
	// MaxEmployees — потолок сотрудников режима, -1 — нет.
	MaxEmployees int `yaml:"max_employees"`

	// FixedContribution — фиксированные годовые страховые взносы, копейки.
	FixedContribution Money `yaml:"fixed_contribution"`
	// ExtraContributionThreshold — порог дохода, свыше которого начисляется
	// дополнительный взнос, копейки.
	ExtraContributionThreshold Money `yaml:"extra_contribution_threshold"`
	// ExtraContributionRateBP — ставка дополнительного взноса, б.п.
	ExtraContributionRateBP int64 `yaml:"extra_contribution_rate_bp"`
	// ExtraContributionCap — верхняя граница дополнительного взноса, копейки;
	// 0 — без ограничения.
	ExtraContributionCap Money `yaml:"extra_contribution_cap"`
}

// Rate возвращает действующую ставку пары с учётом льготного региона.
func (p PairingRules) Rate(preferentialRegion bool) int64 {
	if preferentialRegion && p.RegionalRateBP > 0 {
		return p.RegionalRateBP
	}
	return p.RateBP
}

// Pairing возвращает правила пары (форма, режим), если пара зарегистрирована.
func (rs *RuleSet) Pairing(form BusinessForm, regime TaxRegime) (PairingRules, bool) {
	for _, p := range rs.Pairings {
		if p.Form == form && p.Regime == regime {
			return p, true
		}
	}
	return PairingRules{}, false
}

// RegimesFor возвращает режимы, зарегистрированные для формы, в порядке
// объявления в таблице пар.
func (rs *RuleSet) RegimesFor(form BusinessForm) []TaxRegime {
	var regimes []TaxRegime
	for _, p := range rs.Pairings {
		if p.Form == form {
			regimes = append(regimes, p.Regime)
		}
	}
	return regimes
}
