// Package recommend собирает итоговую рекомендацию: фильтрует формы через
// проверку доступности, считает налоговую нагрузку каждой допустимой пары
// и ранжирует результаты. Пакет чистый, его безопасно вызывать на каждое
// изменение ответов для сценариев «а что если».
package recommend

import (
	"sort"

	"github.com/EgorCode/businessform-sub002/internal/eligibility"
	"github.com/EgorCode/businessform-sub002/internal/models"
	"github.com/EgorCode/businessform-sub002/internal/taxcalc"
)

// Recommend строит ранжированную рекомендацию по текущим ответам.
// Первичный ключ сортировки — чистый доход (убывание), ничьи разрешаются
// административной простотой формы (возрастание: самозанятость проще ИП,
// ИП проще ООО). Если ни одна форма не доступна, возвращается статус
// no_eligible_form с пустым списком — это деловой исход, не ошибка.
// При неполном наборе обязательных ответов возвращается статус
// incomplete_input: предпросмотр до конца мастера легитимен.
func Recommend(answers models.UserAnswers, rules *models.RuleSet) models.Recommendation {
	elig := eligibility.Evaluate(answers, rules)

	if len(eligibility.MissingRequired(answers)) > 0 {
		return models.Recommendation{
			Status:      models.RecommendationIncomplete,
			Eligibility: elig,
		}
	}

	income, _ := answers.Income()
	employees, _ := answers.Employees()

	var items []models.RecommendationItem
	for _, form := range models.AllForms() {
		result, ok := elig[form]
		if !ok || !result.Eligible {
			continue
		}
		for _, regime := range rules.RegimesFor(form) {
			pairing, _ := rules.Pairing(form, regime)
			// Лимиты самого режима (потолки УСН): пара за пределами
			// лимита пропускается, форма при этом остаётся доступной.
			if pairing.MaxRevenue > 0 && income > pairing.MaxRevenue {
				continue
			}
			if pairing.MaxEmployees >= 0 && employees > pairing.MaxEmployees {
				continue
			}
			calc, err := taxcalc.Calculate(form, regime, answers, rules)
			if err != nil {
				continue
			}
			items = append(items, models.RecommendationItem{
				Form:        form,
				Regime:      regime,
				Calculation: calc,
				Score:       calc.Net,
			})
		}
	}

	if len(items) == 0 {
		return models.Recommendation{
			Status:      models.RecommendationNoEligibleForm,
			Eligibility: elig,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return rules.Forms[items[i].Form].SimplicityRank < rules.Forms[items[j].Form].SimplicityRank
	})

	return models.Recommendation{
		Status:      models.RecommendationOK,
		Eligibility: elig,
		Items:       items,
	}
}
