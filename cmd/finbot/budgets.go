package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage per-category spending budgets",
	}

	cmd.AddCommand(budgetsSetCmd())
	cmd.AddCommand(budgetsListCmd())

	return cmd
}

func budgetsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the budget for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.GetCategoryByName(cmd.Context(), currentUser(), args[0], model.CategoryTypeExpense)
			if err != nil {
				return err
			}
			if cat == nil {
				return fmt.Errorf("no expense category named %q", args[0])
			}

			if err := store.SetBudget(cmd.Context(), currentUser(), cat.ID, amount); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("budget for %s set to %s", cat.Name, cli.FormatAmount(amount))))
			return nil
		},
	}
}

func budgetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show budgets and current spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			userID := currentUser()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx, userID)
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no budgets configured"))
				return nil
			}

			for categoryID := range budgets {
				cat, err := store.GetCategoryByID(ctx, userID, categoryID)
				if err != nil {
					return err
				}
				status, err := store.Status(ctx, userID, categoryID)
				if err != nil {
					return err
				}
				if cat == nil || status == nil {
					continue
				}

				line := fmt.Sprintf("%-20s %s / %s (%.1f%%)",
					cat.Name, cli.FormatAmount(status.Spent), cli.FormatAmount(status.BudgetAmount), status.Percentage)
				switch {
				case status.IsExceeded:
					fmt.Println(cli.ErrorStyle.Render(line + "  exceeded"))
				case status.IsWarning:
					fmt.Println(cli.WarningStyle.Render(line + "  warning"))
				default:
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}
