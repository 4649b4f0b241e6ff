package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/metrics"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show spending insights and financial health",
		Long:  `Analyze this month's activity and print insights, recommendations, and a financial health score.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			snap := s.Snapshot()
			now := time.Now()

			fmt.Println(cli.FormatTitle("Financial Insights"))
			for _, in := range metrics.Insights(snap, now) {
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
				fmt.Println(style.Render("● " + in.Title))
				fmt.Println("  " + in.Message)
			}

			fmt.Println()
			fmt.Println(cli.FormatTitle("Smart Recommendations"))
			for _, rec := range metrics.Recommendations() {
				prioStyle := cli.SuccessStyle
				switch rec.Priority {
				case metrics.PriorityHigh:
					prioStyle = cli.ErrorStyle
				case metrics.PriorityMedium:
					prioStyle = cli.WarningStyle
				case metrics.PriorityLow:
				}
				fmt.Printf("%s %s\n  %s\n",
					prioStyle.Render("["+string(rec.Priority)+"]"),
					cli.BoldStyle.Render(rec.Title),
					cli.SubtleStyle.Render(rec.Description))
			}

			h := metrics.Health(snap, now)
			fmt.Println()
			fmt.Println(cli.RenderBox("Financial Health Score",
				cli.BoldStyle.Render(fmt.Sprintf("%d · %s", h.Score, h.Summary))+"\n"+
					cli.SubtleStyle.Render(fmt.Sprintf("Spending Control: %s · Budget Adherence: %s · Goal Momentum: %s",
						h.SpendingControl, h.BudgetAdherence, h.GoalMomentum))))
			return nil
		},
	}
}
