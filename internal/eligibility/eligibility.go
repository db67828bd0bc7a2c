// Package eligibility проверяет, какие формы бизнеса юридически доступны
// пользователю при его ответах. Проверка чистая: результат зависит только
// от переданных ответов и таблиц правил, побочных эффектов нет.
package eligibility

import (
	"github.com/EgorCode/businessform-sub002/internal/models"
)

// requiredQuestions — ответы, без которых проверка невозможна. Отсутствие
// любого из них закрывает все формы с причиной incomplete_input:
// умолчания не подставляются (fail-closed).
var requiredQuestions = []models.QuestionID{
	models.QuestionIncome,
	models.QuestionPartners,
	models.QuestionHasEmployees,
	models.QuestionActivity,
}

// MissingRequired возвращает обязательные вопросы, на которые ещё нет ответа.
func MissingRequired(answers models.UserAnswers) []models.QuestionID {
	var missing []models.QuestionID
	for _, q := range requiredQuestions {
		if _, ok := answers[q]; !ok {
			missing = append(missing, q)
		}
	}
	// Число сотрудников обязательно только на ветке «сотрудники есть».
	if has, ok := answers.HasEmployees(); ok && has {
		if _, ok := answers[models.QuestionEmployees]; !ok {
			missing = append(missing, models.QuestionEmployees)
		}
	}
	return missing
}

// Evaluate проверяет каждую форму бизнеса против жёстких ограничений
// RuleSet независимо и возвращает результат по каждой форме. Форма
// доступна тогда и только тогда, когда не нарушено ни одно ограничение;
// нарушения перечисляются все, а не только первое — поясняющему
// интерфейсу нужен полный список.
func Evaluate(answers models.UserAnswers, rules *models.RuleSet) map[models.BusinessForm]models.EligibilityResult {
	results := make(map[models.BusinessForm]models.EligibilityResult, len(rules.Forms))

	if len(MissingRequired(answers)) > 0 {
		for _, form := range models.AllForms() {
			results[form] = models.EligibilityResult{
				Form:    form,
				Reasons: []models.Reason{models.ReasonIncompleteInput},
			}
		}
		return results
	}

	income, _ := answers.Income()
	partners, _ := answers.Partners()
	employees, _ := answers.Employees()
	activity, _ := answers.Activity()

	for _, form := range models.AllForms() {
		formRules, ok := rules.Forms[form]
		if !ok {
			continue
		}
		var reasons []models.Reason
		if !formRules.AllowsRevenue(income) {
			reasons = append(reasons, models.ReasonRevenueCeiling)
		}
		if !formRules.AllowsPartners(partners) {
			reasons = append(reasons, models.ReasonPartnerLimit)
		}
		if !formRules.AllowsEmployees(employees) {
			reasons = append(reasons, models.ReasonEmployeeLimit)
		}
		if !formRules.AllowsActivity(activity) {
			reasons = append(reasons, models.ReasonActivityExcluded)
		}
		results[form] = models.EligibilityResult{
			Form:     form,
			Eligible: len(reasons) == 0,
			Reasons:  reasons,
		}
	}
	return results
}
