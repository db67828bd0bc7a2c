package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorCode/businessform-sub002/internal/models"
)

// testRules собирает полные таблицы правил с показателями 2026 года.
func testRules() *models.RuleSet {
	return &models.RuleSet{
		FiscalYear: 2026,
		MinorUnits: 100,
		Forms: map[models.BusinessForm]models.FormRules{
			models.FormSelfEmployed: {
				SimplicityRank: 1,
				MaxRevenue:     240_000_000,
				MaxPartners:    0,
				MaxEmployees:   0,
				ExcludedActivities: []models.Activity{
					models.ActivityTrade, models.ActivityLicensed,
				},
			},
			models.FormSoleProprietor: {
				SimplicityRank: 2,
				MaxPartners:    0,
				MaxEmployees:   -1,
			},
			models.FormLLC: {
				SimplicityRank: 3,
				MaxPartners:    50,
				MaxEmployees:   -1,
			},
		},
		Pairings: []models.PairingRules{
			{
				Form: models.FormSelfEmployed, Regime: models.RegimeNPD,
				RateBP: 600, MaxEmployees: -1,
			},
			{
				Form: models.FormSoleProprietor, Regime: models.RegimeUSNIncome,
				RateBP: 600, RegionalRateBP: 100,
				MaxRevenue: 4_500_000_000_000, MaxEmployees: 130,
				FixedContribution:          5_739_000,
				ExtraContributionThreshold: 30_000_000,
				ExtraContributionRateBP:    100,
				ExtraContributionCap:       28_761_000,
			},
			{
				Form: models.FormSoleProprietor, Regime: models.RegimeUSNIncomeExpense,
				RateBP: 1500, RegionalRateBP: 500, MinTaxRateBP: 100,
				ExpensesDeductible: true,
				MaxRevenue:         4_500_000_000_000, MaxEmployees: 130,
				FixedContribution:          5_739_000,
				ExtraContributionThreshold: 30_000_000,
				ExtraContributionRateBP:    100,
				ExtraContributionCap:       28_761_000,
			},
			{
				Form: models.FormSoleProprietor, Regime: models.RegimeGeneral,
				RateBP: 1300, ExpensesDeductible: true, MaxEmployees: -1,
				FixedContribution:          5_739_000,
				ExtraContributionThreshold: 30_000_000,
				ExtraContributionRateBP:    100,
				ExtraContributionCap:       28_761_000,
			},
			{
				Form: models.FormLLC, Regime: models.RegimeUSNIncome,
				RateBP: 600, RegionalRateBP: 100,
				MaxRevenue: 4_500_000_000_000, MaxEmployees: 130,
			},
			{
				Form: models.FormLLC, Regime: models.RegimeUSNIncomeExpense,
				RateBP: 1500, RegionalRateBP: 500, MinTaxRateBP: 100,
				ExpensesDeductible: true,
				MaxRevenue:         4_500_000_000_000, MaxEmployees: 130,
			},
			{
				Form: models.FormLLC, Regime: models.RegimeGeneral,
				RateBP: 2500, ExpensesDeductible: true, MaxEmployees: -1,
			},
		},
	}
}

func fullAnswers(income models.Money, partners int) models.UserAnswers {
	return models.UserAnswers{
		models.QuestionIncome:       models.MoneyAnswer(income),
		models.QuestionExpenses:     models.MoneyAnswer(0),
		models.QuestionPartners:     models.NumberAnswer(int64(partners)),
		models.QuestionHasEmployees: models.BoolAnswer(false),
		models.QuestionActivity:     models.EnumAnswer("services"),
	}
}

// TestRecommend_SelfEmployedWins: услуги с выручкой 1 000 000 ₽ в год без
// партнёров и сотрудников — доступны и самозанятость, и ИП, лучший чистый
// доход у самозанятости: на НПД нет фиксированных взносов.
func TestRecommend_SelfEmployedWins(t *testing.T) {
	rules := testRules()

	got := Recommend(fullAnswers(100_000_000, 0), rules)
	require.Equal(t, models.RecommendationOK, got.Status)

	assert.True(t, got.Eligibility[models.FormSelfEmployed].Eligible)
	assert.True(t, got.Eligibility[models.FormSoleProprietor].Eligible)

	top, ok := got.Top()
	require.True(t, ok)
	assert.Equal(t, models.FormSelfEmployed, top.Form)
	assert.Equal(t, models.RegimeNPD, top.Regime)

	// Самозанятость выигрывает у ИП на УСН «доходы» именно на взносах.
	for _, item := range got.Items {
		if item.Form == models.FormSoleProprietor && item.Regime == models.RegimeUSNIncome {
			assert.Greater(t, top.Calculation.Net, item.Calculation.Net)
		}
	}
}

// TestRecommend_PartnersExcludeSelfEmployed: выручка 5 000 000 ₽ и два
// партнёра — самозанятость и ИП закрыты ограничением по партнёрам,
// наверху остаётся ООО.
func TestRecommend_PartnersExcludeSelfEmployed(t *testing.T) {
	rules := testRules()

	got := Recommend(fullAnswers(500_000_000, 2), rules)
	require.Equal(t, models.RecommendationOK, got.Status)

	selfEmployed := got.Eligibility[models.FormSelfEmployed]
	assert.False(t, selfEmployed.Eligible)
	assert.Contains(t, selfEmployed.Reasons, models.ReasonPartnerLimit)

	top, ok := got.Top()
	require.True(t, ok)
	assert.Equal(t, models.FormLLC, top.Form)
}

// TestRecommend_Ranking: список отсортирован по чистому доходу по убыванию,
// ничьи разрешает административная простота.
func TestRecommend_Ranking(t *testing.T) {
	rules := testRules()

	got := Recommend(fullAnswers(100_000_000, 0), rules)
	require.Equal(t, models.RecommendationOK, got.Status)
	require.NotEmpty(t, got.Items)

	for i := 1; i < len(got.Items); i++ {
		prev, cur := got.Items[i-1], got.Items[i]
		if prev.Score == cur.Score {
			assert.LessOrEqual(t,
				rules.Forms[prev.Form].SimplicityRank,
				rules.Forms[cur.Form].SimplicityRank)
			continue
		}
		assert.Greater(t, prev.Score, cur.Score)
	}
}

// TestRecommend_NoEligibleForm: статус вместо ошибки, список пуст.
func TestRecommend_NoEligibleForm(t *testing.T) {
	rules := testRules()
	// Единственная форма в усечённых правилах недоступна из-за партнёров.
	rules.Forms = map[models.BusinessForm]models.FormRules{
		models.FormSelfEmployed: rules.Forms[models.FormSelfEmployed],
	}
	rules.Pairings = rules.Pairings[:1]

	got := Recommend(fullAnswers(100_000_000, 2), rules)
	assert.Equal(t, models.RecommendationNoEligibleForm, got.Status)
	assert.Empty(t, got.Items)
}

// TestRecommend_IncompleteInput: предпросмотр до конца опроса —
// статус incomplete_input, все формы закрыты fail-closed.
func TestRecommend_IncompleteInput(t *testing.T) {
	rules := testRules()

	got := Recommend(models.UserAnswers{
		models.QuestionIncome: models.MoneyAnswer(100_000_000),
	}, rules)
	assert.Equal(t, models.RecommendationIncomplete, got.Status)
	assert.Empty(t, got.Items)
	for _, form := range models.AllForms() {
		assert.Contains(t, got.Eligibility[form].Reasons, models.ReasonIncompleteInput)
	}
}

// TestRecommend_RegimeCeilingSkipsPair: выручка сверх лимита УСН исключает
// пары УСН, но форма остаётся доступной на ОСНО.
func TestRecommend_RegimeCeilingSkipsPair(t *testing.T) {
	rules := testRules()

	got := Recommend(fullAnswers(5_000_000_000_000, 0), rules)
	require.Equal(t, models.RecommendationOK, got.Status)

	for _, item := range got.Items {
		assert.NotEqual(t, models.RegimeUSNIncome, item.Regime)
		assert.NotEqual(t, models.RegimeUSNIncomeExpense, item.Regime)
	}
	top, ok := got.Top()
	require.True(t, ok)
	assert.Equal(t, models.RegimeGeneral, top.Regime)
}

// TestRecommend_Repeatable: повторный вызов с теми же ответами даёт
// идентичный результат — сценарии «а что если» безопасны.
func TestRecommend_Repeatable(t *testing.T) {
	rules := testRules()
	answers := fullAnswers(100_000_000, 0)

	first := Recommend(answers, rules)
	second := Recommend(answers, rules)
	assert.Equal(t, first, second)
}
