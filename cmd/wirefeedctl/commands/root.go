package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wirefeed/wirefeed/internal/db"
	"github.com/wirefeed/wirefeed/pkg/config"
	"github.com/wirefeed/wirefeed/pkg/logging"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wirefeedctl",
	Short: "Wirefeed - operational tooling for the Wirefeed API",
	Long: `wirefeedctl manages the database behind the Wirefeed API.

Subcommands:
  migrate - Create or update the database schema
  seed    - Populate the database with demo data`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides WIREFEED_DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// openDatabase loads configuration, applies flag overrides and connects.
func openDatabase() (*db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "DEBUG"
		cfg.Logging.Level = logLevel
	}
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return db.New(&cfg.Database, logLevel)
}
