package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Create or update the users, shelves, reviews, likes and tasks tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, closeDB, err := openDB(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeDB()

		if err := database.Migrate(db, log); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		success.Fprintln(cmd.OutOrStdout(), "✓ Database migrated successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
