package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/metrics"
)

const (
	chartBarWidth    = 24
	progressBarWidth = 30
	recentLimit      = 5
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.view())
	} else {
		switch m.tab {
		case TabOverview:
			b.WriteString(m.viewOverview())
		case TabTransactions:
			b.WriteString(m.viewTransactions())
		case TabBudgets:
			b.WriteString(m.viewBudgets())
		case TabGoals:
			b.WriteString(m.viewGoals())
		case TabInsights:
			b.WriteString(m.viewInsights())
		case tabCount:
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			parts = append(parts, cli.BoldStyle.Foreground(cli.PrimaryColor).Render("["+name+"]"))
		} else {
			parts = append(parts, cli.SubtleStyle.Render(" "+name+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewFooter() string {
	if m.status != "" {
		if m.statusErr {
			return cli.FormatError(m.status)
		}
		return cli.FormatSuccess(m.status)
	}

	help := "tab: switch view · q: quit"
	switch m.tab {
	case TabTransactions, TabBudgets:
		help = "a: add · " + help
	case TabGoals:
		help = "a: add · f: add progress · j/k: select · " + help
	case TabOverview, TabInsights, tabCount:
	}
	return cli.SubtleStyle.Render(help)
}

func (m Model) viewOverview() string {
	now := m.now()
	totals := metrics.MonthlyTotals(m.snapshot.Transactions, now.Year(), now.Month())
	balance := metrics.NetBalance(m.snapshot.Transactions)
	used := metrics.BudgetUsedPercent(totals.Expenses, metrics.TotalBudget(m.snapshot.Budgets))

	balanceStyle := cli.SuccessStyle
	if balance.IsNegative() {
		balanceStyle = cli.ErrorStyle
	}
	usedStyle := cli.SuccessStyle
	if used.GreaterThan(decimal.NewFromInt(90)) {
		usedStyle = cli.ErrorStyle
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Balance", balanceStyle.Render(cli.Money(balance))),
		statCard("Monthly Income", cli.SuccessStyle.Render(cli.Money(totals.Income))),
		statCard("Monthly Expenses", cli.ErrorStyle.Render(cli.Money(totals.Expenses))),
		statCard("Budget Used", usedStyle.Render(cli.Percent(used))),
	)

	sections := []string{
		stats,
		m.viewChart(),
		m.viewRecent(),
		m.viewGoalSummary(),
	}
	return strings.Join(sections, "\n\n")
}

func statCard(title, value string) string {
	return cli.BoxStyle.Render(
		cli.SubtleStyle.Render(title) + "\n" + cli.BoldStyle.Render(value))
}

// viewChart renders the last months of income and expenses as paired
// bars. Every bar is scaled against the single series maximum so widths
// stay comparable across months.
func (m Model) viewChart() string {
	series := metrics.MonthlySeries(m.snapshot.Transactions, m.now(), chartWindowMonths)
	maxVal := metrics.SeriesMax(series)

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Monthly Overview"))
	b.WriteString("\n")

	for _, p := range series {
		b.WriteString(fmt.Sprintf("%s  %s %s  %s %s\n",
			cli.BoldStyle.Render(p.Label),
			cli.Bar(ratioOf(p.Income, maxVal), chartBarWidth, cli.SuccessStyle),
			cli.SubtleStyle.Render(cli.Money(p.Income)),
			cli.Bar(ratioOf(p.Expenses, maxVal), chartBarWidth, cli.ErrorStyle),
			cli.SubtleStyle.Render(cli.Money(p.Expenses)),
		))
	}

	b.WriteString(cli.SubtleStyle.Render("green: income · red: expenses"))
	return b.String()
}

func (m Model) viewRecent() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Recent Transactions"))
	b.WriteString("\n")

	recent := metrics.RecentTransactions(m.snapshot.Transactions, recentLimit)
	if len(recent) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No transactions yet. Press 'a' on the Transactions tab to add one."))
		return b.String()
	}

	for _, tx := range recent {
		b.WriteString(fmt.Sprintf("%s  %-24s %-16s %s\n",
			cli.SubtleStyle.Render(tx.Date.String()),
			truncate(tx.Description, 24),
			cli.SubtleStyle.Render(truncate(tx.Category, 16)),
			cli.SignedMoney(tx),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewGoalSummary() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Goals Progress"))
	b.WriteString("\n")

	active := metrics.ActiveGoals(m.snapshot.Goals)
	if len(active) == 0 && len(m.snapshot.Goals) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No goals yet. Press 'a' on the Goals tab to set one."))
		return b.String()
	}

	shown := active
	if len(shown) > 3 {
		shown = shown[:3]
	}
	for _, g := range shown {
		pct := metrics.GoalProgressPercent(g)
		b.WriteString(fmt.Sprintf("%-20s %s %s\n",
			truncate(g.Name, 20),
			cli.Bar(pct.InexactFloat64()/100, progressBarWidth, cli.SuccessStyle),
			cli.SubtleStyle.Render(cli.Money(g.Progress)+" / "+cli.Money(g.Target)),
		))
	}

	if done := metrics.CompletedGoals(m.snapshot.Goals); len(done) > 0 {
		b.WriteString(cli.SuccessStyle.Render(fmt.Sprintf("🎉 %d goal%s completed!", len(done), pluralS(len(done)))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewTransactions() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Transactions"))
	b.WriteString("\n")

	txns := metrics.RecentTransactions(m.snapshot.Transactions, -1)
	if len(txns) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No transactions yet. Press 'a' to add one."))
		return b.String()
	}

	for i, tx := range txns {
		cursor := "  "
		if i == m.cursor {
			cursor = cli.BoldStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s  %-28s %-16s %s\n",
			cursor,
			cli.SubtleStyle.Render(tx.Date.String()),
			truncate(tx.Description, 28),
			cli.SubtleStyle.Render(truncate(tx.Category, 16)),
			cli.SignedMoney(tx),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewBudgets() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Budget Manager"))
	b.WriteString("\n")

	if len(m.snapshot.Budgets) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No budgets set yet. Press 'a' to create your first budget."))
		return b.String()
	}

	now := m.now()
	for _, budget := range m.snapshot.Budgets {
		u := metrics.BudgetUtilization(budget, m.snapshot.Transactions, now.Year(), now.Month())

		style := cli.SuccessStyle
		switch u.Status {
		case metrics.StatusNearLimit:
			style = cli.WarningStyle
		case metrics.StatusOver:
			style = cli.ErrorStyle
		case metrics.StatusOnTrack:
		}

		b.WriteString(fmt.Sprintf("%-18s %s %s  %s\n",
			truncate(budget.Category, 18),
			cli.Bar(u.Percent.InexactFloat64()/100, progressBarWidth, style),
			style.Render(cli.Percent(u.Percent)),
			cli.SubtleStyle.Render(cli.Money(u.Spent)+" / "+cli.Money(budget.Amount)+" · "+string(budget.Period)),
		))

		switch u.Status {
		case metrics.StatusOver:
			b.WriteString("  " + cli.FormatWarning("Over budget by "+cli.Money(u.Over)) + "\n")
		case metrics.StatusNearLimit:
			b.WriteString("  " + cli.WarningStyle.Render("Approaching budget limit") + "\n")
		case metrics.StatusOnTrack:
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewGoals() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Financial Goals"))
	b.WriteString("\n")

	if len(m.snapshot.Goals) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No financial goals yet. Press 'a' to set your first goal."))
		return b.String()
	}

	now := m.now()
	active := metrics.ActiveGoals(m.snapshot.Goals)
	for i, g := range active {
		cursor := "  "
		if i == m.cursor {
			cursor = cli.BoldStyle.Render("> ")
		}

		pct := metrics.GoalProgressPercent(g)
		days := metrics.DaysRemaining(g, now)
		deadline := fmt.Sprintf("%d days left", days)
		deadlineStyle := cli.SubtleStyle
		if days < 0 {
			deadline = fmt.Sprintf("%d days overdue", -days)
			deadlineStyle = cli.ErrorStyle
		}

		b.WriteString(fmt.Sprintf("%s%-20s %s %s  %s  %s\n",
			cursor,
			truncate(g.Name, 20),
			cli.Bar(pct.InexactFloat64()/100, progressBarWidth, cli.SuccessStyle),
			cli.Percent(pct),
			cli.SubtleStyle.Render(cli.Money(g.Progress)+" / "+cli.Money(g.Target)),
			deadlineStyle.Render(deadline),
		))
		if g.Description != "" {
			b.WriteString("    " + cli.SubtleStyle.Render(truncate(g.Description, 60)) + "\n")
		}
	}

	if done := metrics.CompletedGoals(m.snapshot.Goals); len(done) > 0 {
		b.WriteString("\n")
		b.WriteString(cli.FormatTitle("Completed Goals"))
		b.WriteString("\n")
		for _, g := range done {
			b.WriteString(fmt.Sprintf("  %s %-20s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				truncate(g.Name, 20),
				cli.SuccessStyle.Render("Target achieved! "+cli.Money(g.Target)),
			))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewInsights() string {
	now := m.now()
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Financial Insights"))
	b.WriteString("\n")

	for _, in := range metrics.Insights(m.snapshot, now) {
		style := cli.SubtleStyle
		switch in.Tone {
		case metrics.ToneGood:
			style = cli.SuccessStyle
		case metrics.ToneWarning:
			style = cli.WarningStyle
		case metrics.ToneBad:
			style = cli.ErrorStyle
		case metrics.ToneNeutral:
		}
		b.WriteString(style.Render("● "+in.Title) + "\n")
		b.WriteString("  " + in.Message + "\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.FormatTitle("Smart Recommendations"))
	b.WriteString("\n")
	for _, rec := range metrics.Recommendations() {
		prioStyle := cli.SuccessStyle
		switch rec.Priority {
		case metrics.PriorityHigh:
			prioStyle = cli.ErrorStyle
		case metrics.PriorityMedium:
			prioStyle = cli.WarningStyle
		case metrics.PriorityLow:
		}
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n",
			prioStyle.Render("["+string(rec.Priority)+"]"),
			cli.BoldStyle.Render(rec.Title),
			cli.SubtleStyle.Render(rec.Description),
		))
	}

	h := metrics.Health(m.snapshot, now)
	score := fmt.Sprintf("%d · %s", h.Score, h.Summary)
	detail := fmt.Sprintf("Spending Control: %s · Budget Adherence: %s · Goal Momentum: %s",
		h.SpendingControl, h.BudgetAdherence, h.GoalMomentum)
	b.WriteString("\n")
	b.WriteString(cli.RenderBox("Financial Health Score", cli.BoldStyle.Render(score)+"\n"+cli.SubtleStyle.Render(detail)))

	return b.String()
}

func ratioOf(val, maxVal decimal.Decimal) float64 {
	if !maxVal.IsPositive() {
		return 0
	}
	return val.InexactFloat64() / maxVal.InexactFloat64()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
