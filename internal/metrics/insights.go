package metrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmturner/pocketwatch/internal/model"
)

// Tone indicates how an insight should be presented.
type Tone string

// Insight tones.
const (
	ToneGood    Tone = "good"
	ToneWarning Tone = "warning"
	ToneBad     Tone = "bad"
	ToneNeutral Tone = "neutral"
)

// Insight is one templated observation about the current finances. These
// are fixed heuristic rules over computed aggregates, not a learning
// system: same snapshot and clock in, same insights out.
type Insight struct {
	Type    string
	Title   string
	Message string
	Tone    Tone
}

// Insights evaluates the rule set against the snapshot for now's month.
func Insights(snap model.Snapshot, now time.Time) []Insight {
	year, month := now.Year(), now.Month()
	totals := MonthlyTotals(snap.Transactions, year, month)

	insights := make([]Insight, 0, 4)

	// Rule 1: spending versus income this month.
	spending := Insight{
		Type:  "spending-pattern",
		Title: "Spending Pattern Analysis",
	}
	if totals.Expenses.GreaterThan(totals.Income) {
		over := totals.Expenses.Sub(totals.Income)
		spending.Message = fmt.Sprintf(
			"You're spending %s more than you earn this month. Consider reviewing your expenses.",
			money(over))
		spending.Tone = ToneBad
	} else {
		saved := totals.Income.Sub(totals.Expenses)
		spending.Message = fmt.Sprintf("Great job! You're saving %s this month.", money(saved))
		spending.Tone = ToneGood
	}
	insights = append(insights, spending)

	// Rule 2: highest spending category.
	category := Insight{
		Type:  "category-insight",
		Title: "Category Insights",
		Tone:  ToneNeutral,
	}
	if top, ok := TopCategory(CategoryBreakdown(snap.Transactions, year, month)); ok {
		category.Message = fmt.Sprintf(
			"Your highest spending category is %q with %s this month.",
			top.Category, money(top.Amount))
	} else {
		category.Message = "No expense data available for category analysis."
	}
	insights = append(insights, category)

	// Rule 3: budget coverage.
	budget := Insight{
		Type:  "budget-alert",
		Title: "Budget Alerts",
		Tone:  ToneWarning,
	}
	if n := len(snap.Budgets); n > 0 {
		budget.Message = fmt.Sprintf(
			"You have %d active budget%s set. Monitor your spending to stay on track.",
			n, plural(n))
	} else {
		budget.Message = "Consider setting up budgets to better control your spending."
	}
	insights = append(insights, budget)

	// Rule 4: goal momentum.
	goal := Insight{
		Type:  "goals-progress",
		Title: "Goal Progress",
		Tone:  ToneNeutral,
	}
	if len(snap.Goals) > 0 {
		n := len(ActiveGoals(snap.Goals))
		goal.Message = fmt.Sprintf(
			"You have %d active goal%s in progress. Keep up the momentum!",
			n, plural(n))
	} else {
		goal.Message = "Setting financial goals can help you stay motivated and organized."
	}
	insights = append(insights, goal)

	return insights
}

// Priority orders recommendations.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a fixed piece of advice shown on the insights panel.
type Recommendation struct {
	Title       string
	Description string
	Priority    Priority
}

// Recommendations returns the static advice list.
func Recommendations() []Recommendation {
	return []Recommendation{
		{
			Title:       "Emergency Fund Priority",
			Description: "Build an emergency fund covering 3-6 months of expenses before focusing on other goals.",
			Priority:    PriorityHigh,
		},
		{
			Title:       "Automate Savings",
			Description: "Set up automatic transfers to your savings account to make saving effortless.",
			Priority:    PriorityMedium,
		},
		{
			Title:       "Review Subscriptions",
			Description: "Regularly review and cancel unused subscriptions to reduce recurring expenses.",
			Priority:    PriorityMedium,
		},
		{
			Title:       "Track Daily Expenses",
			Description: "Log small daily expenses to get a complete picture of your spending habits.",
			Priority:    PriorityLow,
		},
	}
}

// Rating grades one aspect of financial health.
type Rating string

// Health ratings.
const (
	RatingGood Rating = "good"
	RatingFair Rating = "fair"
	RatingPoor Rating = "poor"
)

// HealthScore is the composite financial health figure with its
// sub-ratings.
type HealthScore struct {
	Summary         string
	SpendingControl Rating
	BudgetAdherence Rating
	GoalMomentum    Rating
	Score           int
}

// Health grades the snapshot on spending control, budget adherence, and
// goal momentum, then folds the three ratings into a 0-100 score.
func Health(snap model.Snapshot, now time.Time) HealthScore {
	year, month := now.Year(), now.Month()
	totals := MonthlyTotals(snap.Transactions, year, month)

	h := HealthScore{
		SpendingControl: rateSpending(totals),
		BudgetAdherence: rateBudgets(snap, year, month),
		GoalMomentum:    rateGoals(snap.Goals),
	}

	h.Score = 10 + ratingPoints(h.SpendingControl) +
		ratingPoints(h.BudgetAdherence) + ratingPoints(h.GoalMomentum)

	switch {
	case h.Score >= 80:
		h.Summary = "Excellent Financial Health"
	case h.Score >= 60:
		h.Summary = "Good Financial Health"
	case h.Score >= 40:
		h.Summary = "Fair Financial Health"
	default:
		h.Summary = "Needs Attention"
	}

	return h
}

func rateSpending(totals Totals) Rating {
	switch {
	case totals.Expenses.LessThanOrEqual(totals.Income):
		return RatingGood
	case totals.Income.IsPositive() &&
		totals.Expenses.LessThanOrEqual(totals.Income.Mul(decimal.NewFromFloat(1.1))):
		return RatingFair
	default:
		return RatingPoor
	}
}

func rateBudgets(snap model.Snapshot, year int, month time.Month) Rating {
	if len(snap.Budgets) == 0 {
		return RatingFair
	}

	rating := RatingGood
	for _, b := range snap.Budgets {
		switch BudgetUtilization(b, snap.Transactions, year, month).Status {
		case StatusOver:
			return RatingPoor
		case StatusNearLimit:
			rating = RatingFair
		case StatusOnTrack:
		}
	}
	return rating
}

func rateGoals(goals []model.Goal) Rating {
	if len(goals) == 0 {
		return RatingFair
	}
	for _, g := range goals {
		if g.Completed() || g.Progress.IsPositive() {
			return RatingGood
		}
	}
	return RatingFair
}

func ratingPoints(r Rating) int {
	switch r {
	case RatingGood:
		return 30
	case RatingFair:
		return 20
	default:
		return 10
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
