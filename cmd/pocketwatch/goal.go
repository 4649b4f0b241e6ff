package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/metrics"
	"github.com/jmturner/pocketwatch/internal/model"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage financial goals",
		Long:  `Track savings goals with targets, deadlines, and progress.`,
	}

	cmd.AddCommand(addGoalCmd())
	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(fundGoalCmd())

	return cmd
}

func addGoalCmd() *cobra.Command {
	var goalDescription string

	cmd := &cobra.Command{
		Use:   "add <name> <target> <deadline>",
		Short: "Add a financial goal",
		Long: `Create a savings goal. Progress starts at zero.

Examples:
  pocketwatch goal add "Emergency Fund" 5000 2025-06-01
  pocketwatch goal add "Vacation" 2000 2024-12-01 --description "Two weeks in Portugal"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target, err := cli.ParseAmount(args[1])
			if err != nil {
				return err
			}
			deadline, err := model.ParseDate(args[2])
			if err != nil {
				return err
			}

			g := model.Goal{
				Name:        args[0],
				Target:      target,
				Deadline:    deadline,
				Description: goalDescription,
			}
			if err := g.Validate(); err != nil {
				return err
			}

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			g = s.AddGoal(ctx, g)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Goal created: %s, target %s by %s", g.Name, cli.Money(g.Target), g.Deadline)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goalDescription, "description", "d", "", "why this goal matters")

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		Long:  `Display active and completed goals with progress bars and days remaining.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			snap := s.Snapshot()
			if len(snap.Goals) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No financial goals yet. Use 'pocketwatch goal add' to set one."))
				return nil
			}

			now := time.Now()
			fmt.Println(cli.FormatTitle("Financial Goals"))
			for _, g := range metrics.ActiveGoals(snap.Goals) {
				pct := metrics.GoalProgressPercent(g)
				days := metrics.DaysRemaining(g, now)
				deadline := fmt.Sprintf("%d days left", days)
				if days < 0 {
					deadline = cli.ErrorStyle.Render(fmt.Sprintf("%d days overdue", -days))
				}
				fmt.Printf("%-20s %s %s  %s  %s\n",
					g.Name,
					cli.Bar(pct.InexactFloat64()/100, 30, cli.SuccessStyle),
					cli.Percent(pct),
					cli.SubtleStyle.Render(cli.Money(g.Progress)+" / "+cli.Money(g.Target)),
					deadline)
			}

			for _, g := range metrics.CompletedGoals(snap.Goals) {
				fmt.Printf("%s %-20s %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					g.Name,
					cli.SuccessStyle.Render("completed, "+cli.Money(g.Target)))
			}
			return nil
		},
	}
}

func fundGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund <name> <amount>",
		Short: "Add progress toward a goal",
		Long: `Add an amount to a goal's progress. Progress caps at the goal's target.

Example:
  pocketwatch goal fund "Emergency Fund" 250`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := cli.ParseAmount(args[1])
			if err != nil {
				return err
			}

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			var goal *model.Goal
			for _, g := range s.Snapshot().Goals {
				if g.Name == args[0] {
					goal = &g
					break
				}
			}
			if goal == nil {
				return fmt.Errorf("no goal named %q", args[0])
			}

			s.UpdateGoalProgress(ctx, goal.ID, amount)

			for _, g := range s.Snapshot().Goals {
				if g.ID != goal.ID {
					continue
				}
				if g.Completed() {
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("🎉 %s completed! %s saved", g.Name, cli.Money(g.Target))))
				} else {
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %s of %s (%s to go)",
						g.Name, cli.Money(g.Progress), cli.Money(g.Target), cli.Money(g.Remaining()))))
				}
			}
			return nil
		},
	}
}
