// Package model defines the entities tracked by pocketwatch: transactions,
// budgets, goals, and the snapshot that views consume.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind discriminates income from expense. The amount itself is always
// non-negative; the sign lives here.
type Kind string

// Transaction kinds.
const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind validates a kind string from user input.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q (want income or expense)", s)
	}
}

// Transaction is a single logged income or expense entry. Transactions are
// immutable once added to the store.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        Date            `json:"date"`
}

// Signed returns the amount with income positive and expense negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate ensures the transaction has well-formed data.
func (t *Transaction) Validate() error {
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", t.Amount)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// SuggestedCategories returns the suggested category list for a kind.
// These are suggestions only; the store accepts any category string.
func SuggestedCategories(kind Kind) []string {
	if kind == KindIncome {
		return []string{"Salary", "Freelance", "Investment", "Other Income"}
	}
	return []string{"Food", "Transportation", "Entertainment", "Utilities", "Healthcare", "Shopping", "Other"}
}
