package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate all database tables",
	Long: `Drop every table managed by the engine and recreate the schema from
scratch. ALL DATA IS LOST.

The command prompts for confirmation and proceeds only when the answer
is exactly "yes".`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	done, err := db.ResetSchema(os.Stdin)
	if err != nil {
		return fmt.Errorf("schema reset failed: %w", err)
	}
	if done {
		fmt.Println("✅ Database reset completed successfully!")
	}
	return nil
}
