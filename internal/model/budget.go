package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period is the declared cadence of a budget. It is stored as entered but
// utilization is always computed against the current calendar month.
type Period string

// Budget periods.
const (
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
)

// ParsePeriod validates a period string from user input.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodMonthly, PeriodWeekly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid budget period %q (want monthly or weekly)", s)
	}
}

// Budget is a spending limit for a category. Budgets are immutable once
// added; multiple budgets may target the same category.
type Budget struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   Period          `json:"period"`
}

// Validate ensures the budget has well-formed data.
func (b *Budget) Validate() error {
	if b.Category == "" {
		return fmt.Errorf("category is required")
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("budget limit must be positive, got %s", b.Amount)
	}
	if _, err := ParsePeriod(string(b.Period)); err != nil {
		return err
	}
	return nil
}
