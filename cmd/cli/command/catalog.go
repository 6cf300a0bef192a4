package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
	"bookshelf/internal/http-api/service"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, closeDB, err := openDB(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeDB()

		tasks, err := service.NewTaskService(repository.NewTaskRepository(db)).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d total):\n\n", len(tasks))
		for _, t := range tasks {
			mark := " "
			if t.Done {
				mark = "x"
			}
			fmt.Fprintf(out, "[%s] ID: %d | %s\n", mark, t.ID, t.Title)
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the shelf categories",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, c := range models.Categories {
			fmt.Fprintf(out, "%-10s %s\n", c.Value, c.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(categoriesCmd)
}
