package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dbPath := viper.GetString("database.path")
			if dbPath == "" {
				dbPath = "$HOME/.local/share/finbot/finbot.db"
			}

			store, err := storage.NewSQLiteStorage(expandPath(dbPath))
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			statusOnly, _ := cmd.Flags().GetBool("status")
			if statusOnly {
				current, err := store.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				if current == storage.ExpectedSchemaVersion {
					fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("schema up to date (version %d)", current)))
				} else {
					fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("schema at version %d, expected %d; run: finbot migrate",
						current, storage.ExpectedSchemaVersion)))
				}
				return nil
			}

			if err := store.Migrate(ctx); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("schema at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}

	cmd.Flags().Bool("status", false, "show the current schema version without migrating")

	return cmd
}
