package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal with a target amount and a deadline. Progress is
// the only mutable field and is maintained by the store; it never exceeds
// Target and never drops below zero.
type Goal struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Target      decimal.Decimal `json:"target"`
	Progress    decimal.Decimal `json:"progress"`
	Deadline    Date            `json:"deadline"`
	Description string          `json:"description,omitempty"`
}

// Completed reports whether the goal reached its target. Completion is
// terminal; there is no transition back to active.
func (g Goal) Completed() bool {
	return g.Progress.GreaterThanOrEqual(g.Target)
}

// Remaining returns the amount still needed to reach the target, never
// negative.
func (g Goal) Remaining() decimal.Decimal {
	r := g.Target.Sub(g.Progress)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Validate ensures the goal has well-formed data.
func (g *Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !g.Target.IsPositive() {
		return fmt.Errorf("target must be positive, got %s", g.Target)
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("deadline is required")
	}
	if g.Progress.IsNegative() || g.Progress.GreaterThan(g.Target) {
		return fmt.Errorf("progress %s outside [0, %s]", g.Progress, g.Target)
	}
	return nil
}
