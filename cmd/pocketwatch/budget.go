package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/metrics"
	"github.com/jmturner/pocketwatch/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budgets",
		Long:  `Set spending limits per category and review how much of each is used.`,
	}

	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())

	return cmd
}

func addBudgetCmd() *cobra.Command {
	var budgetPeriod string

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add a budget",
		Long: `Create a spending limit for a category.

Examples:
  pocketwatch budget add "Food & Dining" 500
  pocketwatch budget add Entertainment 50 --period weekly`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := cli.ParseAmount(args[1])
			if err != nil {
				return err
			}
			period, err := model.ParsePeriod(budgetPeriod)
			if err != nil {
				return err
			}

			b := model.Budget{Category: args[0], Amount: amount, Period: period}
			if err := b.Validate(); err != nil {
				return err
			}

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			b = s.AddBudget(ctx, b)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget set: %s at %s per %s", b.Category, cli.Money(b.Amount), b.Period)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&budgetPeriod, "period", "p", "monthly", "budget period (monthly, weekly)")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with current usage",
		Long:  `Display each budget with this month's spending against its limit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			snap := s.Snapshot()
			if len(snap.Budgets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No budgets set yet. Use 'pocketwatch budget add' to create one."))
				return nil
			}

			now := time.Now()
			fmt.Println(cli.FormatTitle("Budgets"))
			for _, b := range snap.Budgets {
				u := metrics.BudgetUtilization(b, snap.Transactions, now.Year(), now.Month())

				style := cli.SuccessStyle
				note := ""
				switch u.Status {
				case metrics.StatusNearLimit:
					style = cli.WarningStyle
					note = "  " + cli.WarningStyle.Render("approaching limit")
				case metrics.StatusOver:
					style = cli.ErrorStyle
					note = "  " + cli.ErrorStyle.Render("over by "+cli.Money(u.Over))
				case metrics.StatusOnTrack:
				}

				fmt.Printf("%-20s %s %s  %s%s\n",
					b.Category,
					cli.Bar(u.Percent.InexactFloat64()/100, 30, style),
					style.Render(cli.Percent(u.Percent)),
					cli.SubtleStyle.Render(cli.Money(u.Spent)+" / "+cli.Money(b.Amount)+" "+string(b.Period)),
					note)
			}
			return nil
		},
	}
}
