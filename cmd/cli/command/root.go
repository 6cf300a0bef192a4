package command

// root.go defines the root command for the bookshelf admin CLI.
// Commands talk to the database directly, using the same environment as the web server.

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bookshelf/database"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"
)

var verbose bool // log at debug level

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "bookshelf - bookshelf administration tool",
	Long: `bookshelf is the administration tool for the bookshelf web application.
It reads the same environment (or .env file) as the api-server and can:
- Apply database migrations
- Create user accounts
- List the tasks and shelf categories

Use "bookshelf command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// openDB loads config, builds a logger and connects to postgres.
// The returned func closes the connection.
func openDB(stderr io.Writer) (*gorm.DB, *slog.Logger, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(stderr, level, cfg.LogFormat)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, log, func() { _ = database.Close(db) }, nil
}
