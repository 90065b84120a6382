package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/auth"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/config"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// EnsureAdminUser guarantees the administrator account exists. When a user
// with the configured admin username is already present it is returned
// unchanged; otherwise the account is created with the configured email and
// password, hashed through the injected hasher. The operation is idempotent
// and safe to run on every startup.
func (d *Database) EnsureAdminUser(ctx context.Context, hasher auth.PasswordHasher) (*models.User, error) {
	username := d.settings.AdminUsername

	var existing models.User
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Println("ℹ️ Admin user already exists")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("⚠️ EnsureAdminUser lookup failed: %v", err)
		return nil, WrapDBError("EnsureAdminUser", err)
	}

	hash, err := hasher.Hash(d.settings.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("EnsureAdminUser: %w", err)
	}

	admin := &models.User{
		Username:       username,
		Email:          d.settings.AdminEmail,
		HashedPassword: hash,
		FullName:       AdminFullName,
		Role:           models.RoleAdmin,
		IsActive:       true,
	}

	err = d.WithTransaction(ctx, "EnsureAdminUser", func(tx *gorm.DB) error {
		return tx.Create(admin).Error
	})
	if err != nil {
		// Two concurrent bootstraps can both pass the existence check. The
		// unique username constraint keeps exactly one row; the loser reads
		// back the surviving account instead of failing.
		if IsDuplicateKey(err) {
			var winner models.User
			if readErr := d.db.WithContext(ctx).Where("username = ?", username).First(&winner).Error; readErr == nil {
				return &winner, nil
			}
		}
		return nil, err
	}

	log.Println("✅ Admin user created successfully")
	if d.settings.AdminPassword == config.DefaultAdminPassword {
		log.Printf("⚠️ Default password is '%s' - CHANGE THIS IN PRODUCTION!", config.DefaultAdminPassword)
	}
	return admin, nil
}
