package database

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// InitializeSchema creates all tables, indexes, and constraints for the
// persisted entities. Parents are migrated before children so foreign keys
// can be declared at creation time. Running it against an existing schema is
// a no-op for tables that already match.
func (d *Database) InitializeSchema() error {
	log.Println("🔧 Initializing database schema...")
	if err := d.db.AutoMigrate(models.All()...); err != nil {
		log.Printf("⚠️ Schema initialization failed: %v", err)
		return WrapDBError("InitializeSchema", err)
	}
	log.Println("✅ Database schema ready")
	return nil
}

// DestroySchema drops every managed table, children before parents so no
// drop is rejected for being referenced. Tables that do not exist are
// skipped, so repeated calls succeed.
func (d *Database) DestroySchema() error {
	log.Println("🗑️ Dropping database schema...")
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := d.db.Migrator().DropTable(all[i]); err != nil {
			log.Printf("⚠️ Schema drop failed: %v", err)
			return WrapDBError("DestroySchema", err)
		}
	}
	log.Println("✅ Database schema dropped")
	return nil
}

// ResetSchema destroys and recreates the schema after an interactive
// confirmation read from in. Only the literal token "yes" (case-insensitive,
// surrounding whitespace ignored) proceeds; any other input, including EOF,
// cancels the reset and reports (false, nil). The guard lives here rather
// than in the CLI so no caller can reset without passing it.
func (d *Database) ResetSchema(in io.Reader) (bool, error) {
	fmt.Println("⚠️ WARNING: This will delete all data in the database!")
	fmt.Print("Are you sure you want to continue? (yes/no): ")

	var confirm string
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		confirm = scanner.Text()
	}

	if strings.ToLower(strings.TrimSpace(confirm)) != ResetConfirmationToken {
		fmt.Println("Database reset cancelled")
		return false, nil
	}

	if err := d.DestroySchema(); err != nil {
		return false, err
	}
	if err := d.InitializeSchema(); err != nil {
		return false, err
	}

	log.Println("✅ Database reset complete")
	return true, nil
}
