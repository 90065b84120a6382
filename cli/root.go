// Package cli implements the forecastdb maintenance command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/config"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database"
)

var rootCmd = &cobra.Command{
	Use:   "forecastdb",
	Short: "Persistence maintenance for the forecasting and risk analytics engine",
	Long: `forecastdb manages the persistence layer of the Financial Forecasting &
Risk Analytics Engine.

It provides tools for:
  - Initializing the database schema (setup)
  - Dropping and recreating all tables (reset)
  - Verifying database connectivity (check)
  - Seeding the bootstrap admin account (create-admin)

The target database comes from DATABASE_URL (sqlite:// path or a
PostgreSQL URL); configuration is read from the environment and an
optional .env file.`,
}

var envFile string

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading configuration")
}

// loadSettings reads configuration, honoring --env-file when set
func loadSettings() *config.Settings {
	if envFile != "" {
		return config.LoadFromEnv(envFile)
	}
	return config.LoadFromEnv()
}

// openDatabase connects to the configured database for one command run
func openDatabase() (*database.Database, error) {
	settings := loadSettings()

	fmt.Println("🗄️  Connecting to database...")
	db, err := database.Connect(settings)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
