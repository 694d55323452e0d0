package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesSeedCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			typeFlag, _ := cmd.Flags().GetString("type")
			categories, err := store.GetCategories(cmd.Context(), currentUser(), model.CategoryType(typeFlag))
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no categories yet; run: finbot categories seed"))
				return nil
			}

			for _, cat := range categories {
				fmt.Printf("%4d  %-20s %s\n", cat.ID, cat.Name, cli.SubtleStyle.Render(string(cat.Type)))
			}
			return nil
		},
	}

	cmd.Flags().String("type", "", "filter by type (income, expense)")

	return cmd
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			typeFlag, _ := cmd.Flags().GetString("type")
			cat, err := store.CreateCategory(cmd.Context(), currentUser(), args[0], model.CategoryType(typeFlag))
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("created category %q (%s)", cat.Name, cat.Type)))
			return nil
		},
	}

	cmd.Flags().String("type", "expense", "category type (income, expense)")

	return cmd
}

func categoriesSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default category set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SeedDefaultCategories(cmd.Context(), currentUser()); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("default categories created"))
			return nil
		},
	}
}
