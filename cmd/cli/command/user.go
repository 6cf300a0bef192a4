package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
	"bookshelf/internal/http-api/service"
)

var userPassword string

var createUserCmd = &cobra.Command{
	Use:   "createuser [username]",
	Short: "Create a user account",
	Long: `Create a user account with the same username and password rules as the signup page.
The password can also be given through the BOOKSHELF_PASSWORD environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := userPassword
		if password == "" {
			password = os.Getenv("BOOKSHELF_PASSWORD")
		}
		if password == "" {
			return errors.New("password is required (--password or BOOKSHELF_PASSWORD)")
		}

		db, _, closeDB, err := openDB(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeDB()

		// sessions are not needed to create an account
		authService := service.NewAuthService(repository.NewUserRepository(db), nil)

		user, err := authService.CreateUser(cmd.Context(), args[0], password)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				for field, msg := range verr.Fields {
					failure.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		printCreatedUser(cmd.OutOrStdout(), user)
		return nil
	},
}

func printCreatedUser(out io.Writer, user *models.User) {
	success.Fprintln(out, "✓ User created successfully!")
	fmt.Fprintf(out, "ID: %s\n", user.ID)
	fmt.Fprintf(out, "Username: %s\n", user.Username)
}

func init() {
	createUserCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password for the new user")
	rootCmd.AddCommand(createUserCmd)
}
