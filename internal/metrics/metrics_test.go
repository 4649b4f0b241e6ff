package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmturner/pocketwatch/internal/model"
)

func tx(kind model.Kind, amount float64, category string, date model.Date) model.Transaction {
	return model.Transaction{
		Kind:     kind,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Date:     date,
	}
}

func march(day int) model.Date {
	return model.NewDate(2024, time.March, day)
}

func assertDecimal(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromFloat(want)), "got %s, want %v", got, want)
}

func TestMonthlyTotals(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 50, "Food", march(1)),
		tx(model.KindIncome, 1000, "Salary", march(1)),
	}

	totals := MonthlyTotals(txns, 2024, time.March)
	assertDecimal(t, 1000, totals.Income)
	assertDecimal(t, 50, totals.Expenses)
}

func TestMonthlyTotals_IgnoresOtherMonths(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 50, "Food", march(15)),
		tx(model.KindExpense, 75, "Food", model.NewDate(2024, time.February, 29)),
		tx(model.KindExpense, 99, "Food", model.NewDate(2023, time.March, 15)),
	}

	totals := MonthlyTotals(txns, 2024, time.March)
	assertDecimal(t, 50, totals.Expenses)
	assertDecimal(t, 0, totals.Income)
}

func TestMonthlyTotals_Additive(t *testing.T) {
	t1 := []model.Transaction{
		tx(model.KindIncome, 800, "Salary", march(1)),
		tx(model.KindExpense, 120.50, "Food", march(3)),
	}
	t2 := []model.Transaction{
		tx(model.KindIncome, 200, "Freelance", march(20)),
		tx(model.KindExpense, 30.25, "Transportation", march(21)),
	}

	combined := MonthlyTotals(append(append([]model.Transaction{}, t1...), t2...), 2024, time.March)
	a := MonthlyTotals(t1, 2024, time.March)
	b := MonthlyTotals(t2, 2024, time.March)

	assert.True(t, combined.Income.Equal(a.Income.Add(b.Income)))
	assert.True(t, combined.Expenses.Equal(a.Expenses.Add(b.Expenses)))
}

func TestCategoryBreakdown(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 50, "Food", march(1)),
		tx(model.KindExpense, 20, "Transportation", march(2)),
		tx(model.KindExpense, 25, "Food", march(10)),
		tx(model.KindIncome, 1000, "Salary", march(1)),
	}

	breakdown := CategoryBreakdown(txns, 2024, time.March)
	require.Len(t, breakdown, 2)

	// First-encountered order.
	assert.Equal(t, "Food", breakdown[0].Category)
	assertDecimal(t, 75, breakdown[0].Amount)
	assert.Equal(t, "Transportation", breakdown[1].Category)
	assertDecimal(t, 20, breakdown[1].Amount)
}

func TestTopCategory(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 30, "Food", march(1)),
		tx(model.KindExpense, 90, "Shopping", march(2)),
	}

	top, ok := TopCategory(CategoryBreakdown(txns, 2024, time.March))
	require.True(t, ok)
	assert.Equal(t, "Shopping", top.Category)
	assertDecimal(t, 90, top.Amount)
}

func TestTopCategory_TieGoesToFirstSeen(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 50, "Food", march(1)),
		tx(model.KindExpense, 50, "Shopping", march(2)),
	}

	top, ok := TopCategory(CategoryBreakdown(txns, 2024, time.March))
	require.True(t, ok)
	assert.Equal(t, "Food", top.Category)
}

func TestTopCategory_Empty(t *testing.T) {
	_, ok := TopCategory(nil)
	assert.False(t, ok)
}

func TestBudgetUtilization(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 50, "Food", march(1)),
		tx(model.KindIncome, 1000, "Salary", march(1)),
	}
	budget := model.Budget{Category: "Food", Amount: decimal.NewFromInt(100), Period: model.PeriodMonthly}

	u := BudgetUtilization(budget, txns, 2024, time.March)
	assertDecimal(t, 50, u.Percent)
	assertDecimal(t, 50, u.Spent)
	assert.Equal(t, StatusOnTrack, u.Status)
	assertDecimal(t, 0, u.Over)
}

func TestBudgetUtilization_Thresholds(t *testing.T) {
	budget := model.Budget{Category: "Food", Amount: decimal.NewFromInt(100), Period: model.PeriodMonthly}

	tests := []struct {
		name     string
		spent    float64
		status   UtilizationStatus
		overBy   float64
	}{
		{name: "well under", spent: 40, status: StatusOnTrack},
		{name: "exactly 80 percent", spent: 80, status: StatusOnTrack},
		{name: "just over 80", spent: 80.01, status: StatusNearLimit},
		{name: "exactly at limit", spent: 100, status: StatusNearLimit},
		{name: "over", spent: 130, status: StatusOver, overBy: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := []model.Transaction{tx(model.KindExpense, tt.spent, "Food", march(5))}
			u := BudgetUtilization(budget, txns, 2024, time.March)
			assert.Equal(t, tt.status, u.Status)
			assertDecimal(t, tt.overBy, u.Over)
		})
	}
}

func TestBudgetUtilization_ZeroLimit(t *testing.T) {
	budget := model.Budget{Category: "Food", Amount: decimal.Zero}
	txns := []model.Transaction{tx(model.KindExpense, 50, "Food", march(1))}

	u := BudgetUtilization(budget, txns, 2024, time.March)
	assertDecimal(t, 0, u.Percent)
	assert.Equal(t, StatusOnTrack, u.Status)
}

func TestBudgetUtilization_IgnoresOtherCategoriesAndIncome(t *testing.T) {
	budget := model.Budget{Category: "Food", Amount: decimal.NewFromInt(100)}
	txns := []model.Transaction{
		tx(model.KindExpense, 30, "Food", march(1)),
		tx(model.KindExpense, 500, "Shopping", march(1)),
		tx(model.KindIncome, 200, "Food", march(1)),
	}

	u := BudgetUtilization(budget, txns, 2024, time.March)
	assertDecimal(t, 30, u.Spent)
}

func TestGoalProgressPercent(t *testing.T) {
	g := model.Goal{Target: decimal.NewFromInt(500), Progress: decimal.NewFromInt(125)}
	assertDecimal(t, 25, GoalProgressPercent(g))

	g.Progress = g.Target
	assertDecimal(t, 100, GoalProgressPercent(g))
}

func TestGoalProgressPercent_ZeroTarget(t *testing.T) {
	g := model.Goal{Target: decimal.Zero, Progress: decimal.Zero}
	assertDecimal(t, 0, GoalProgressPercent(g))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline model.Date
		want     int
	}{
		{name: "ten days out", deadline: model.NewDate(2024, time.March, 11), want: 10},
		{name: "today", deadline: model.NewDate(2024, time.March, 1), want: 0},
		{name: "overdue", deadline: model.NewDate(2024, time.February, 25), want: -5},
		{name: "next year", deadline: model.NewDate(2025, time.March, 1), want: 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := model.Goal{Deadline: tt.deadline}
			assert.Equal(t, tt.want, DaysRemaining(g, now))
		})
	}
}

func TestNetBalance(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindIncome, 1000, "Salary", march(1)),
		tx(model.KindExpense, 300, "Food", march(2)),
		tx(model.KindExpense, 50, "Transportation", march(3)),
	}

	assertDecimal(t, 650, NetBalance(txns))
}

func TestNetBalance_Empty(t *testing.T) {
	assertDecimal(t, 0, NetBalance(nil))
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		tx(model.KindIncome, 1000, "Salary", march(1)),
		tx(model.KindExpense, 200, "Food", model.NewDate(2024, time.January, 10)),
		tx(model.KindExpense, 400, "Food", model.NewDate(2023, time.October, 10)),
	}

	series := MonthlySeries(txns, now, 6)
	require.Len(t, series, 6)

	assert.Equal(t, "Oct", series[0].Label)
	assert.Equal(t, 2023, series[0].Year)
	assertDecimal(t, 400, series[0].Expenses)

	assert.Equal(t, "Jan", series[3].Label)
	assertDecimal(t, 200, series[3].Expenses)

	assert.Equal(t, "Mar", series[5].Label)
	assertDecimal(t, 1000, series[5].Income)
}

func TestMonthlySeries_WindowCrossesYearBoundaryFromJanuary(t *testing.T) {
	now := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	series := MonthlySeries(nil, now, 3)
	require.Len(t, series, 3)
	assert.Equal(t, time.November, series[0].Month)
	assert.Equal(t, 2023, series[0].Year)
	assert.Equal(t, time.January, series[2].Month)
	assert.Equal(t, 2024, series[2].Year)
}

func TestMonthlySeries_ZeroWindow(t *testing.T) {
	assert.Empty(t, MonthlySeries(nil, time.Now(), 0))
}

func TestSeriesMax(t *testing.T) {
	series := []MonthPoint{
		{Income: decimal.NewFromInt(100), Expenses: decimal.NewFromInt(900)},
		{Income: decimal.NewFromInt(500), Expenses: decimal.NewFromInt(50)},
	}
	assertDecimal(t, 900, SeriesMax(series))
}

func TestSeriesMax_EmptyIsZero(t *testing.T) {
	assertDecimal(t, 0, SeriesMax(nil))
}

func TestRecentTransactions(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 1, "Food", march(5)),
		tx(model.KindExpense, 2, "Food", march(20)),
		tx(model.KindExpense, 3, "Food", march(10)),
		tx(model.KindExpense, 4, "Food", march(20)),
	}

	recent := RecentTransactions(txns, 3)
	require.Len(t, recent, 3)

	// Newest first; same-day entries keep insertion order.
	assertDecimal(t, 2, recent[0].Amount)
	assertDecimal(t, 4, recent[1].Amount)
	assertDecimal(t, 3, recent[2].Amount)
}

func TestRecentTransactions_DoesNotMutateInput(t *testing.T) {
	txns := []model.Transaction{
		tx(model.KindExpense, 1, "Food", march(20)),
		tx(model.KindExpense, 2, "Food", march(5)),
	}

	RecentTransactions(txns, 10)
	assertDecimal(t, 1, txns[0].Amount)
}

func TestActiveAndCompletedGoals(t *testing.T) {
	goals := []model.Goal{
		{Name: "a", Target: decimal.NewFromInt(100), Progress: decimal.NewFromInt(100)},
		{Name: "b", Target: decimal.NewFromInt(100), Progress: decimal.NewFromInt(20)},
		{Name: "c", Target: decimal.NewFromInt(100), Progress: decimal.Zero},
	}

	active := ActiveGoals(goals)
	done := CompletedGoals(goals)

	require.Len(t, active, 2)
	assert.Equal(t, "b", active[0].Name)
	require.Len(t, done, 1)
	assert.Equal(t, "a", done[0].Name)
}

func TestBudgetUsedPercent(t *testing.T) {
	assertDecimal(t, 50, BudgetUsedPercent(decimal.NewFromInt(150), decimal.NewFromInt(300)))
	assertDecimal(t, 0, BudgetUsedPercent(decimal.NewFromInt(150), decimal.Zero))
}

func TestTotalBudget(t *testing.T) {
	budgets := []model.Budget{
		{Amount: decimal.NewFromInt(300)},
		{Amount: decimal.NewFromFloat(99.50)},
	}
	assertDecimal(t, 399.50, TotalBudget(budgets))
}
