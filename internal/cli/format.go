package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jmturner/pocketwatch/internal/model"
)

// Money renders a decimal amount as a dollar figure with two decimals.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// SignedMoney renders a transaction amount with its sign and color:
// income green with a plus, expense red with a minus.
func SignedMoney(tx model.Transaction) string {
	if tx.Kind == model.KindIncome {
		return SuccessStyle.Render("+" + Money(tx.Amount))
	}
	return ErrorStyle.Render("-" + Money(tx.Amount))
}

// Percent renders a percentage with one decimal place.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Bar renders a proportional bar of the given width. ratio is clamped to
// [0, 1]; a zero ratio produces an empty track rather than an error.
func Bar(ratio float64, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	return style.Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", width-filled))
}
