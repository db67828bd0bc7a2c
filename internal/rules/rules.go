// Package rules загружает таблицы налоговых правил из YAML-файла и
// проверяет их согласованность. Загруженный RuleSet неизменяем: ядро
// получает его как значение при каждом вызове и никогда не мутирует.
package rules

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/EgorCode/businessform-sub002/internal/models"
)

// Load читает RuleSet финансового года из файла и валидирует его.
// Вызывается один раз при старте процесса; после возврата значение
// только читается, поэтому конкурентный доступ безопасен без блокировок.
func Load(path string, fiscalYear int) (*models.RuleSet, error) {
	const op = "rules.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: rules file %s: %w", op, path, err)
	}

	var rs models.RuleSet
	if err := cleanenv.ReadConfig(path, &rs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if rs.FiscalYear != fiscalYear {
		return nil, fmt.Errorf("%s: rules file is for year %d, want %d", op, rs.FiscalYear, fiscalYear)
	}
	if err := validate(&rs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rs, nil
}

// validate проверяет структурную согласованность таблиц: известность форм
// и режимов, положительность ставок, наличие правил формы для каждой пары.
func validate(rs *models.RuleSet) error {
	// Калькулятор считает в копейках; файл правил в другой точности
	// дал бы суммы, сдвинутые на порядки.
	if rs.MinorUnits != models.KopecksPerRuble {
		return fmt.Errorf("minor_units must be %d (kopecks per ruble), got %d",
			models.KopecksPerRuble, rs.MinorUnits)
	}
	if len(rs.Forms) == 0 {
		return fmt.Errorf("no forms declared")
	}
	if len(rs.Pairings) == 0 {
		return fmt.Errorf("no form/regime pairings declared")
	}

	for form, fr := range rs.Forms {
		if !form.Valid() {
			return fmt.Errorf("unknown business form %q", form)
		}
		if fr.SimplicityRank <= 0 {
			return fmt.Errorf("form %s: simplicity_rank must be positive", form)
		}
		for _, a := range fr.ExcludedActivities {
			if !a.Valid() {
				return fmt.Errorf("form %s: unknown excluded activity %q", form, a)
			}
		}
	}

	seen := make(map[string]bool, len(rs.Pairings))
	for _, p := range rs.Pairings {
		if !p.Form.Valid() {
			return fmt.Errorf("pairing: unknown business form %q", p.Form)
		}
		if !p.Regime.Valid() {
			return fmt.Errorf("pairing %s: unknown tax regime %q", p.Form, p.Regime)
		}
		if _, ok := rs.Forms[p.Form]; !ok {
			return fmt.Errorf("pairing %s/%s: form has no rules entry", p.Form, p.Regime)
		}
		key := string(p.Form) + "/" + string(p.Regime)
		if seen[key] {
			return fmt.Errorf("duplicate pairing %s", key)
		}
		seen[key] = true
		if p.RateBP <= 0 {
			return fmt.Errorf("pairing %s: rate_bp must be positive", key)
		}
		if p.RegionalRateBP < 0 || p.MinTaxRateBP < 0 || p.ExtraContributionRateBP < 0 {
			return fmt.Errorf("pairing %s: negative rate", key)
		}
		if p.FixedContribution < 0 || p.ExtraContributionThreshold < 0 || p.ExtraContributionCap < 0 {
			return fmt.Errorf("pairing %s: negative contribution amount", key)
		}
	}
	return nil
}
