// Package metrics computes derived figures from a store snapshot: monthly
// aggregates, budget utilization, goal progress, and the monthly series
// behind the spending chart. Everything here is pure: no mutation, no I/O,
// deterministic given the snapshot and a reference time.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmturner/pocketwatch/internal/model"
)

// hundred is the percentage scale factor.
var hundred = decimal.NewFromInt(100)

// Totals is the income/expense split for one calendar month.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// MonthlyTotals sums transaction amounts for the given calendar year and
// month, split by kind. Only the date's year and month components matter.
func MonthlyTotals(txns []model.Transaction, year int, month time.Month) Totals {
	t := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range txns {
		if !tx.Date.In(year, month) {
			continue
		}
		switch tx.Kind {
		case model.KindIncome:
			t.Income = t.Income.Add(tx.Amount)
		case model.KindExpense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	return t
}

// CategoryAmount pairs a category with its summed expense amount.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryBreakdown sums expense amounts per category for the given month.
// Categories appear in first-encountered order, which makes the top-category
// tie-break deterministic: the earliest category to reach the maximum wins.
func CategoryBreakdown(txns []model.Transaction, year int, month time.Month) []CategoryAmount {
	index := make(map[string]int)
	var breakdown []CategoryAmount

	for _, tx := range txns {
		if tx.Kind != model.KindExpense || !tx.Date.In(year, month) {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(breakdown)
			index[tx.Category] = i
			breakdown = append(breakdown, CategoryAmount{Category: tx.Category, Amount: decimal.Zero})
		}
		breakdown[i].Amount = breakdown[i].Amount.Add(tx.Amount)
	}

	return breakdown
}

// TopCategory returns the highest-spending category from a breakdown. The
// second return is false when there is no expense data.
func TopCategory(breakdown []CategoryAmount) (CategoryAmount, bool) {
	if len(breakdown) == 0 {
		return CategoryAmount{}, false
	}
	top := breakdown[0]
	for _, c := range breakdown[1:] {
		if c.Amount.GreaterThan(top.Amount) {
			top = c
		}
	}
	return top, true
}

// UtilizationStatus classifies how far along a budget is.
type UtilizationStatus string

// Utilization statuses.
const (
	StatusOnTrack   UtilizationStatus = "on track"
	StatusNearLimit UtilizationStatus = "near limit"
	StatusOver      UtilizationStatus = "over budget"
)

// Utilization describes one budget measured against actual spend.
type Utilization struct {
	Status  UtilizationStatus
	Spent   decimal.Decimal
	Percent decimal.Decimal
	Over    decimal.Decimal
}

// BudgetUtilization measures a budget against the category's expense total
// for the given month. The declared period is not consulted; utilization is
// always a calendar-month figure. A zero limit yields exactly 0 percent.
func BudgetUtilization(b model.Budget, txns []model.Transaction, year int, month time.Month) Utilization {
	spent := decimal.Zero
	for _, tx := range txns {
		if tx.Kind == model.KindExpense && tx.Category == b.Category && tx.Date.In(year, month) {
			spent = spent.Add(tx.Amount)
		}
	}

	u := Utilization{
		Status:  StatusOnTrack,
		Spent:   spent,
		Percent: decimal.Zero,
		Over:    decimal.Zero,
	}
	if b.Amount.IsPositive() {
		u.Percent = spent.Div(b.Amount).Mul(hundred)
	}

	switch {
	case u.Percent.GreaterThan(hundred):
		u.Status = StatusOver
		u.Over = spent.Sub(b.Amount)
	case u.Percent.GreaterThan(decimal.NewFromInt(80)):
		u.Status = StatusNearLimit
	}

	return u
}

// GoalProgressPercent returns goal progress as a percentage. The store
// invariant keeps progress at or below target, so the result never exceeds
// 100. A zero target yields 0.
func GoalProgressPercent(g model.Goal) decimal.Decimal {
	if !g.Target.IsPositive() {
		return decimal.Zero
	}
	return g.Progress.Div(g.Target).Mul(hundred)
}

// DaysRemaining returns whole days until the goal deadline, rounding
// partial days up. Negative means overdue by that many days.
func DaysRemaining(g model.Goal, now time.Time) int {
	diff := g.Deadline.Time().Sub(model.DateOf(now).Time())
	return int(math.Ceil(diff.Hours() / 24))
}

// ActiveGoals returns goals still short of their target, preserving order.
func ActiveGoals(goals []model.Goal) []model.Goal {
	var active []model.Goal
	for _, g := range goals {
		if !g.Completed() {
			active = append(active, g)
		}
	}
	return active
}

// CompletedGoals returns goals that reached their target, preserving order.
func CompletedGoals(goals []model.Goal) []model.Goal {
	var done []model.Goal
	for _, g := range goals {
		if g.Completed() {
			done = append(done, g)
		}
	}
	return done
}

// NetBalance is the lifetime sum of all transactions, income positive and
// expenses negative. It is not time-windowed.
func NetBalance(txns []model.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txns {
		balance = balance.Add(tx.Signed())
	}
	return balance
}

// TotalBudget sums all budget limits.
func TotalBudget(budgets []model.Budget) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Amount)
	}
	return total
}

// BudgetUsedPercent is the aggregate dashboard figure: monthly expenses
// against the sum of all budget limits. Zero total budget yields 0.
func BudgetUsedPercent(monthlyExpenses, totalBudget decimal.Decimal) decimal.Decimal {
	if !totalBudget.IsPositive() {
		return decimal.Zero
	}
	return monthlyExpenses.Div(totalBudget).Mul(hundred)
}

// MonthPoint is one month of the spending chart series.
type MonthPoint struct {
	Label    string
	Month    time.Month
	Year     int
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// MonthlySeries returns totals for the n calendar months ending at now's
// month, oldest first. Labels are short month names ("Jan").
func MonthlySeries(txns []model.Transaction, now time.Time, n int) []MonthPoint {
	if n <= 0 {
		return nil
	}

	series := make([]MonthPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		// Normalizing to the first of the month keeps AddDate from
		// spilling over on short months.
		ref := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		totals := MonthlyTotals(txns, ref.Year(), ref.Month())
		series = append(series, MonthPoint{
			Label:    ref.Format("Jan"),
			Month:    ref.Month(),
			Year:     ref.Year(),
			Income:   totals.Income,
			Expenses: totals.Expenses,
		})
	}
	return series
}

// SeriesMax returns the largest single income or expense value across the
// series. Callers scale every bar against this one maximum so bars stay
// comparable; a zero maximum means zero-width bars, never a division error.
func SeriesMax(series []MonthPoint) decimal.Decimal {
	maxVal := decimal.Zero
	for _, p := range series {
		if p.Income.GreaterThan(maxVal) {
			maxVal = p.Income
		}
		if p.Expenses.GreaterThan(maxVal) {
			maxVal = p.Expenses
		}
	}
	return maxVal
}

// RecentTransactions returns up to n transactions sorted newest first.
// The sort is stable, so same-day entries keep their insertion order.
func RecentTransactions(txns []model.Transaction, n int) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].Date.Before(sorted[i].Date)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
