// Package tui implements the interactive pocketwatch dashboard: tabbed
// views over the store snapshot with entry forms for transactions,
// budgets, and goals.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/metrics"
	"github.com/jmturner/pocketwatch/internal/model"
	"github.com/jmturner/pocketwatch/internal/store"
)

// Tab identifies one dashboard view.
type Tab int

// Dashboard tabs.
const (
	TabOverview Tab = iota
	TabTransactions
	TabBudgets
	TabGoals
	TabInsights
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Transactions", "Budgets", "Goals", "Insights"}

// chartWindowMonths is how many months the spending chart covers.
const chartWindowMonths = 6

// Model holds the dashboard state.
type Model struct {
	store     *store.Store
	now       func() time.Time
	form      *formModel
	status    string
	snapshot  model.Snapshot
	keymap    KeyMap
	width     int
	height    int
	cursor    int
	tab       Tab
	statusErr bool
	quitting  bool
}

// newModel creates the dashboard model. The clock is injectable so tests
// can pin "now".
func newModel(s *store.Store, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		store:  s,
		now:    now,
		keymap: DefaultKeyMap(),
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		func() tea.Msg { return snapshotMsg{snapshot: m.store.Snapshot()} },
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.clampCursor()
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit), key.Matches(msg, k.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0
		m.status = ""
		return m, nil

	case key.Matches(msg, k.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.cursor = 0
		m.status = ""
		return m, nil

	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, k.Down):
		m.cursor++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, k.Add):
		switch m.tab {
		case TabTransactions:
			m.form = newTransactionForm(m.now())
		case TabBudgets:
			m.form = newBudgetForm()
		case TabGoals:
			m.form = newGoalForm()
		case TabOverview, TabInsights, tabCount:
		}
		return m, nil

	case key.Matches(msg, k.Fund):
		if m.tab != TabGoals {
			return m, nil
		}
		active := metrics.ActiveGoals(m.snapshot.Goals)
		if m.cursor < len(active) {
			g := active[m.cursor]
			m.form = newFundForm(g.ID, g.Name)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Cancel):
		m.form = nil
		m.status = ""
		return m, nil

	case key.Matches(msg, k.Submit):
		if !m.form.onLastField() {
			return m, m.form.advance()
		}
		return m.submitForm()
	}

	cmd := m.form.update(msg)
	return m, cmd
}

// submitForm parses the form, applies the mutation, and refreshes the
// snapshot. Parse errors keep the form open with a message in the footer.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	f := m.form

	switch f.kind {
	case formTransaction:
		kind, err := model.ParseKind(f.value(0))
		if err != nil {
			return m.formError(err)
		}
		amount, err := cli.ParseAmount(f.value(1))
		if err != nil {
			return m.formError(err)
		}
		date, err := model.ParseDate(f.value(4))
		if err != nil {
			return m.formError(err)
		}
		category := f.value(3)
		if category == "" {
			category = "Other"
		}
		m.store.AddTransaction(ctx, model.Transaction{
			Kind:        kind,
			Amount:      amount,
			Description: f.value(2),
			Category:    category,
			Date:        date,
		})
		m.status = "Transaction added"

	case formBudget:
		amount, err := cli.ParseAmount(f.value(1))
		if err != nil {
			return m.formError(err)
		}
		period, err := model.ParsePeriod(f.value(2))
		if err != nil {
			return m.formError(err)
		}
		b := model.Budget{Category: f.value(0), Amount: amount, Period: period}
		if err := b.Validate(); err != nil {
			return m.formError(err)
		}
		m.store.AddBudget(ctx, b)
		m.status = "Budget added"

	case formGoal:
		target, err := cli.ParseAmount(f.value(1))
		if err != nil {
			return m.formError(err)
		}
		deadline, err := model.ParseDate(f.value(2))
		if err != nil {
			return m.formError(err)
		}
		g := model.Goal{
			Name:        f.value(0),
			Target:      target,
			Deadline:    deadline,
			Description: f.value(3),
		}
		if err := g.Validate(); err != nil {
			return m.formError(err)
		}
		m.store.AddGoal(ctx, g)
		m.status = "Goal added"

	case formFund:
		amount, err := cli.ParseAmount(f.value(0))
		if err != nil {
			return m.formError(err)
		}
		m.store.UpdateGoalProgress(ctx, f.goalID, amount)
		m.status = "Progress added"
	}

	m.form = nil
	m.statusErr = false
	m.snapshot = m.store.Snapshot()
	m.clampCursor()
	return m, nil
}

func (m Model) formError(err error) (tea.Model, tea.Cmd) {
	m.status = err.Error()
	m.statusErr = true
	return m, nil
}

// clampCursor keeps the selection inside the current tab's list.
func (m *Model) clampCursor() {
	max := 0
	switch m.tab {
	case TabTransactions:
		max = len(m.snapshot.Transactions) - 1
	case TabGoals:
		max = len(metrics.ActiveGoals(m.snapshot.Goals)) - 1
	case TabOverview, TabBudgets, TabInsights, tabCount:
	}
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}
