// Package taxcalc рассчитывает налоговую нагрузку пары (форма, режим):
// налог, страховые взносы и чистый доход. Все суммы — целые копейки,
// ставки — базисные пункты, округление half-up на границе копейки.
// Расчёт чистый и идемпотентный: мастер вызывает его на каждое изменение
// ответа для живого предпросмотра.
package taxcalc

import (
	"fmt"

	"github.com/EgorCode/businessform-sub002/internal/models"
)

// Calculate рассчитывает CalculationResult для пары (форма, режим).
// Возвращает models.ErrInvalidCombination, если пара не зарегистрирована
// в таблице пар RuleSet, и models.ErrIncompleteInput, если не указана
// выручка. Идентичный ввод всегда даёт побитово идентичный результат.
func Calculate(form models.BusinessForm, regime models.TaxRegime,
	answers models.UserAnswers, rules *models.RuleSet) (models.CalculationResult, error) {
	const op = "taxcalc.Calculate"

	pairing, ok := rules.Pairing(form, regime)
	if !ok {
		return models.CalculationResult{}, fmt.Errorf("%s: %s/%s: %w", op, form, regime, models.ErrInvalidCombination)
	}

	gross, ok := answers.Income()
	if !ok {
		return models.CalculationResult{}, fmt.Errorf("%s: %w", op, models.ErrIncompleteInput)
	}
	if gross < 0 {
		return models.CalculationResult{}, fmt.Errorf("%s: negative revenue", op)
	}

	// Расходы участвуют в базе только на режимах с вычетом и не могут
	// превышать выручку.
	var deductible models.Money
	if pairing.ExpensesDeductible {
		if expenses, ok := answers.Expenses(); ok {
			deductible = expenses
			if deductible > gross {
				deductible = gross
			}
			if deductible < 0 {
				deductible = 0
			}
		}
	}

	base := gross - deductible
	tax := base.ApplyRate(pairing.Rate(answers.PreferentialRegion()))

	// Минимальный налог: 1% от выручки, если рассчитанный налог ниже.
	// Порог действует даже при базе около нуля.
	if pairing.MinTaxRateBP > 0 {
		if minTax := gross.ApplyRate(pairing.MinTaxRateBP); tax < minTax {
			tax = minTax
		}
	}

	contributions := calculateContributions(base, pairing)

	net := gross - deductible - tax - contributions
	if net < 0 {
		net = 0
	}

	return models.CalculationResult{
		Form:          form,
		Regime:        regime,
		Gross:         gross,
		Expenses:      deductible,
		TaxableBase:   base,
		Tax:           tax,
		Contributions: contributions,
		Net:           net,
	}, nil
}

// calculateContributions считает страховые взносы пары: фиксированная
// годовая часть плюс дополнительный взнос с дохода сверх порога,
// ограниченный сверху. На НПД взносов нет — у пары нулевые правила.
func calculateContributions(base models.Money, pairing models.PairingRules) models.Money {
	total := pairing.FixedContribution

	if pairing.ExtraContributionRateBP > 0 && base > pairing.ExtraContributionThreshold {
		extra := (base - pairing.ExtraContributionThreshold).ApplyRate(pairing.ExtraContributionRateBP)
		if pairing.ExtraContributionCap > 0 && extra > pairing.ExtraContributionCap {
			extra = pairing.ExtraContributionCap
		}
		total += extra
	}
	return total
}
