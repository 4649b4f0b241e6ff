package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/model"
)

// formKind identifies which entity a form creates or updates.
type formKind int

const (
	formTransaction formKind = iota
	formBudget
	formGoal
	formFund
)

// formModel is a vertical stack of text inputs. Enter advances to the
// next field and submits from the last one; esc cancels.
type formModel struct {
	title  string
	goalID string
	labels []string
	inputs []textinput.Model
	kind   formKind
	focus  int
}

func newInput(placeholder string, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 32
	if value != "" {
		in.SetValue(value)
	}
	return in
}

func newTransactionForm(now time.Time) *formModel {
	f := &formModel{
		kind:   formTransaction,
		title:  "Add Transaction",
		labels: []string{"Type", "Amount", "Description", "Category", "Date"},
		inputs: []textinput.Model{
			newInput("income or expense", "expense"),
			newInput("0.00", ""),
			newInput("What was this for?", ""),
			newInput(strings.Join(model.SuggestedCategories(model.KindExpense), ", "), ""),
			newInput("YYYY-MM-DD", model.DateOf(now).String()),
		},
	}
	f.inputs[f.focus].Focus()
	return f
}

func newBudgetForm() *formModel {
	f := &formModel{
		kind:   formBudget,
		title:  "Add Budget",
		labels: []string{"Category", "Amount", "Period"},
		inputs: []textinput.Model{
			newInput(strings.Join(model.SuggestedCategories(model.KindExpense), ", "), ""),
			newInput("0.00", ""),
			newInput("monthly or weekly", "monthly"),
		},
	}
	f.inputs[f.focus].Focus()
	return f
}

func newGoalForm() *formModel {
	f := &formModel{
		kind:   formGoal,
		title:  "Add Financial Goal",
		labels: []string{"Name", "Target", "Deadline", "Description"},
		inputs: []textinput.Model{
			newInput("Emergency Fund", ""),
			newInput("5000.00", ""),
			newInput("YYYY-MM-DD", ""),
			newInput("Why is this goal important to you?", ""),
		},
	}
	f.inputs[f.focus].Focus()
	return f
}

func newFundForm(goalID, goalName string) *formModel {
	f := &formModel{
		kind:   formFund,
		title:  "Add Progress: " + goalName,
		goalID: goalID,
		labels: []string{"Amount"},
		inputs: []textinput.Model{
			newInput("Amount to add", ""),
		},
	}
	f.inputs[f.focus].Focus()
	return f
}

// onLastField reports whether enter should submit rather than advance.
func (f *formModel) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

// advance moves focus to the next field.
func (f *formModel) advance() tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus++
	return f.inputs[f.focus].Focus()
}

// update routes keystrokes to the focused input.
func (f *formModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the trimmed content of field i.
func (f *formModel) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *formModel) view() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle(f.title))
	b.WriteString("\n")

	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			b.WriteString(cli.BoldStyle.Render("> " + label))
		} else {
			b.WriteString(cli.SubtleStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("enter: next field / submit · esc: cancel"))
	return b.String()
}
