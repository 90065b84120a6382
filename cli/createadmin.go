package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/auth"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Seed the bootstrap admin user",
	Long: `Ensure the bootstrap admin account exists. When the account is already
present it is left unchanged; otherwise it is created with the
credentials from ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: runCreateAdmin,
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	admin, err := db.EnsureAdminUser(context.Background(), auth.NewBcryptHasher())
	if err != nil {
		return fmt.Errorf("create admin failed: %w", err)
	}

	fmt.Println("✅ Admin user ready")
	fmt.Printf("   username: %s\n", admin.Username)
	fmt.Printf("   email:    %s\n", admin.Email)
	fmt.Printf("   role:     %s\n", admin.Role)
	return nil
}
