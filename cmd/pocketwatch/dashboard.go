package main

import (
	"github.com/spf13/cobra"

	"github.com/jmturner/pocketwatch/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long:    `Launch the full-screen dashboard with overview, transactions, budgets, goals, and insights tabs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			return tui.Run(ctx, s)
		},
	}
}
