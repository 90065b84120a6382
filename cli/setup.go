package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create all database tables",
	Long: `Create the full database schema: tables, indexes, and constraints for
users, uploads, time-series data, trained models, forecasts, risk
metrics, and KPI reports.

Running setup against an already-initialized database is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitializeSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	fmt.Println("✅ Database setup completed successfully!")
	return nil
}
