package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmturner/pocketwatch/internal/cli"
	"github.com/jmturner/pocketwatch/internal/metrics"
	"github.com/jmturner/pocketwatch/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add and list income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txKind     string
		txCategory string
		txDate     string
	)

	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Add a transaction",
		Long: `Record a transaction. Defaults to an expense dated today.

Examples:
  pocketwatch tx add 42.50 "Groceries" --category "Food & Dining"
  pocketwatch tx add 2500 "Paycheck" --type income --date 2024-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := model.ParseKind(txKind)
			if err != nil {
				return err
			}
			amount, err := cli.ParseAmount(args[0])
			if err != nil {
				return err
			}
			date := model.DateOf(time.Now())
			if txDate != "" {
				if date, err = model.ParseDate(txDate); err != nil {
					return err
				}
			}

			tx := model.Transaction{
				Kind:        kind,
				Amount:      amount,
				Description: args[1],
				Category:    txCategory,
				Date:        date,
			}
			if err := tx.Validate(); err != nil {
				return err
			}

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			tx = s.AddTransaction(ctx, tx)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s %s (%s)", tx.Kind, cli.Money(tx.Amount), tx.Description)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&txKind, "type", "t", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVarP(&txCategory, "category", "c", "Other", "transaction category")
	cmd.Flags().StringVarP(&txDate, "date", "d", "", "transaction date (YYYY-MM-DD, default today)")

	return cmd
}

func listTxCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `Display transactions sorted newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, kv, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			txns := metrics.RecentTransactions(s.Snapshot().Transactions, limit)
			if len(txns) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions yet. Use 'pocketwatch tx add' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 28),
				strings.Repeat("-", 16),
				strings.Repeat("-", 10))

			for _, tx := range txns {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					tx.Date, tx.Description, tx.Category, cli.SignedMoney(tx))
			}

			fmt.Fprintf(w, "\nNet balance: %s\n", cli.Money(metrics.NetBalance(s.Snapshot().Transactions)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum transactions to show (-1 for all)")

	return cmd
}
