package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/model"
)

func recentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.GetRecentTransactions(cmd.Context(), currentUser(), limit)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no transactions yet; log your first with: finbot chat"))
				return nil
			}

			for _, txn := range transactions {
				sign := "-"
				if txn.Type == model.TypeIncome {
					sign = "+"
				}
				fmt.Printf("%s  %s%-12s %-16s %s\n",
					txn.Date.Local().Format("02 Jan 15:04"),
					sign, cli.FormatAmount(txn.Amount),
					txn.CategoryName,
					cli.SubtleStyle.Render(txn.Description))
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "number of transactions to show")

	return cmd
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's expense summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.GetTransactionsByPeriod(cmd.Context(), currentUser(), start.UTC(), start.AddDate(0, 0, 1).UTC())
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no expenses recorded today"))
				return nil
			}

			var total float64
			byCategory := make(map[string]float64)
			for _, txn := range transactions {
				if txn.Type != model.TypeExpense {
					continue
				}
				total += txn.Amount
				byCategory[txn.CategoryName] += txn.Amount
			}

			fmt.Println(cli.TitleStyle.Render("Today"))
			fmt.Printf("total -%s across %d transaction(s)\n\n", cli.FormatAmount(total), len(transactions))

			names := make([]string, 0, len(byCategory))
			for name := range byCategory {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool { return byCategory[names[i]] > byCategory[names[j]] })

			for _, name := range names {
				share := 0.0
				if total > 0 {
					share = byCategory[name] / total * 100
				}
				fmt.Printf("  %-16s %12s  %s\n", name, cli.FormatAmount(byCategory[name]),
					cli.SubtleStyle.Render(fmt.Sprintf("%.0f%%", share)))
			}
			return nil
		},
	}
}
