package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmturner/pocketwatch/internal/model"
)

var insightsNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func insightByType(t *testing.T, insights []Insight, typ string) Insight {
	t.Helper()
	for _, in := range insights {
		if in.Type == typ {
			return in
		}
	}
	t.Fatalf("no insight of type %q", typ)
	return Insight{}
}

func TestInsights_AlwaysFourRules(t *testing.T) {
	insights := Insights(model.Snapshot{}, insightsNow)
	require.Len(t, insights, 4)

	types := make([]string, 0, 4)
	for _, in := range insights {
		types = append(types, in.Type)
	}
	assert.Equal(t, []string{"spending-pattern", "category-insight", "budget-alert", "goals-progress"}, types)
}

func TestInsights_SpendingPattern(t *testing.T) {
	overspending := model.Snapshot{Transactions: []model.Transaction{
		tx(model.KindIncome, 100, "Salary", march(1)),
		tx(model.KindExpense, 175.50, "Food", march(2)),
	}}

	in := insightByType(t, Insights(overspending, insightsNow), "spending-pattern")
	assert.Equal(t, ToneBad, in.Tone)
	assert.Contains(t, in.Message, "$75.50 more than you earn")

	saving := model.Snapshot{Transactions: []model.Transaction{
		tx(model.KindIncome, 1000, "Salary", march(1)),
		tx(model.KindExpense, 400, "Food", march(2)),
	}}

	in = insightByType(t, Insights(saving, insightsNow), "spending-pattern")
	assert.Equal(t, ToneGood, in.Tone)
	assert.Contains(t, in.Message, "saving $600.00 this month")
}

func TestInsights_CategoryBranches(t *testing.T) {
	empty := insightByType(t, Insights(model.Snapshot{}, insightsNow), "category-insight")
	assert.Contains(t, empty.Message, "No expense data")

	snap := model.Snapshot{Transactions: []model.Transaction{
		tx(model.KindExpense, 80, "Food", march(1)),
		tx(model.KindExpense, 20, "Shopping", march(2)),
	}}
	in := insightByType(t, Insights(snap, insightsNow), "category-insight")
	assert.Contains(t, in.Message, `"Food"`)
	assert.Contains(t, in.Message, "$80.00")
}

func TestInsights_BudgetBranches(t *testing.T) {
	none := insightByType(t, Insights(model.Snapshot{}, insightsNow), "budget-alert")
	assert.Contains(t, none.Message, "Consider setting up budgets")

	one := model.Snapshot{Budgets: []model.Budget{
		{Category: "Food", Amount: decimal.NewFromInt(300), Period: model.PeriodMonthly},
	}}
	in := insightByType(t, Insights(one, insightsNow), "budget-alert")
	assert.Contains(t, in.Message, "1 active budget set")

	two := model.Snapshot{Budgets: []model.Budget{
		{Category: "Food", Amount: decimal.NewFromInt(300), Period: model.PeriodMonthly},
		{Category: "Shopping", Amount: decimal.NewFromInt(100), Period: model.PeriodMonthly},
	}}
	in = insightByType(t, Insights(two, insightsNow), "budget-alert")
	assert.Contains(t, in.Message, "2 active budgets set")
}

func TestInsights_GoalBranches(t *testing.T) {
	none := insightByType(t, Insights(model.Snapshot{}, insightsNow), "goals-progress")
	assert.Contains(t, none.Message, "Setting financial goals")

	snap := model.Snapshot{Goals: []model.Goal{
		{Name: "a", Target: decimal.NewFromInt(100), Progress: decimal.NewFromInt(100)},
		{Name: "b", Target: decimal.NewFromInt(100), Progress: decimal.NewFromInt(10)},
	}}
	in := insightByType(t, Insights(snap, insightsNow), "goals-progress")
	assert.Contains(t, in.Message, "1 active goal in progress")
}

func TestInsights_Deterministic(t *testing.T) {
	snap := model.Snapshot{
		Transactions: []model.Transaction{
			tx(model.KindIncome, 1000, "Salary", march(1)),
			tx(model.KindExpense, 300, "Food", march(2)),
		},
		Budgets: []model.Budget{{Category: "Food", Amount: decimal.NewFromInt(400), Period: model.PeriodMonthly}},
		Goals:   []model.Goal{{Name: "Fund", Target: decimal.NewFromInt(500), Progress: decimal.NewFromInt(50)}},
	}

	assert.Equal(t, Insights(snap, insightsNow), Insights(snap, insightsNow))
}

func TestRecommendations_Fixed(t *testing.T) {
	recs := Recommendations()
	require.Len(t, recs, 4)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Emergency Fund Priority", recs[0].Title)
}

func TestHealth_AllGood(t *testing.T) {
	snap := model.Snapshot{
		Transactions: []model.Transaction{
			tx(model.KindIncome, 1000, "Salary", march(1)),
			tx(model.KindExpense, 300, "Food", march(2)),
		},
		Budgets: []model.Budget{{Category: "Food", Amount: decimal.NewFromInt(500), Period: model.PeriodMonthly}},
		Goals:   []model.Goal{{Name: "Fund", Target: decimal.NewFromInt(500), Progress: decimal.NewFromInt(50)}},
	}

	h := Health(snap, insightsNow)
	assert.Equal(t, RatingGood, h.SpendingControl)
	assert.Equal(t, RatingGood, h.BudgetAdherence)
	assert.Equal(t, RatingGood, h.GoalMomentum)
	assert.Equal(t, 100, h.Score)
	assert.Equal(t, "Excellent Financial Health", h.Summary)
}

func TestHealth_OverBudgetDragsScore(t *testing.T) {
	snap := model.Snapshot{
		Transactions: []model.Transaction{
			tx(model.KindExpense, 600, "Food", march(2)),
		},
		Budgets: []model.Budget{{Category: "Food", Amount: decimal.NewFromInt(500), Period: model.PeriodMonthly}},
	}

	h := Health(snap, insightsNow)
	assert.Equal(t, RatingPoor, h.SpendingControl)
	assert.Equal(t, RatingPoor, h.BudgetAdherence)
	assert.Equal(t, RatingFair, h.GoalMomentum)
	assert.Equal(t, 50, h.Score)
	assert.Equal(t, "Fair Financial Health", h.Summary)
}

func TestHealth_EmptySnapshot(t *testing.T) {
	h := Health(model.Snapshot{}, insightsNow)

	// No data at all: spending is trivially controlled, everything else fair.
	assert.Equal(t, RatingGood, h.SpendingControl)
	assert.Equal(t, RatingFair, h.BudgetAdherence)
	assert.Equal(t, RatingFair, h.GoalMomentum)
	assert.Equal(t, 80, h.Score)
}
