package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// Repository handles database operations for user accounts
type Repository struct {
	store *database.Database
}

// NewRepository creates a new users repository
func NewRepository(store *database.Database) *Repository {
	return &Repository{store: store}
}

// Create inserts a new user. The caller provides the password digest; this
// layer never sees plaintext. Duplicate usernames or emails surface as
// constraint violations classifiable with database.IsDuplicateKey.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if user.Username == "" {
		return database.NewValidationError("username", "must not be empty")
	}
	if user.Email == "" {
		return database.NewValidationError("email", "must not be empty")
	}
	if user.HashedPassword == "" {
		return database.NewValidationError("hashed_password", "must not be empty")
	}
	if user.Role != "" && !user.Role.Valid() {
		return database.NewValidationErrorWithValue("role", "unknown role", user.Role)
	}

	if err := r.store.DB().WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// GetByID retrieves a user by primary key, or nil when absent
func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.store.DB().WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by unique username, or nil when absent
func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.store.DB().WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by unique email, or nil when absent
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.store.DB().WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return &user, nil
}

// List retrieves users with optional filters
func (r *Repository) List(ctx context.Context, role models.UserRole, activeOnly bool, limit, offset int) ([]models.User, error) {
	var list []models.User
	query := r.store.DB().WithContext(ctx).Order("created_at ASC")

	if role != "" {
		query = query.Where("role = ?", role)
	}

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return list, nil
}

// UpdateProfile updates the mutable profile fields of a user. Updating a
// missing user affects zero rows and is not an error.
func (r *Repository) UpdateProfile(ctx context.Context, id, email, fullName string) error {
	updates := map[string]interface{}{}
	if email != "" {
		updates["email"] = email
	}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if len(updates) == 0 {
		return nil
	}

	if err := r.store.DB().WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}
	return nil
}

// SetActive toggles the soft-disable flag of a user
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	if err := r.store.DB().WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error; err != nil {
		return fmt.Errorf("SetActive: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password digest of a user
func (r *Repository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	if hashedPassword == "" {
		return database.NewValidationError("hashed_password", "must not be empty")
	}
	if err := r.store.DB().WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("hashed_password", hashedPassword).Error; err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	return nil
}

// Delete removes a user. The store cascades the delete to the user's
// uploads, models, and everything derived from them. Deleting a missing
// user affects zero rows and succeeds.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.DB().WithContext(ctx).Where("id = ?", id).
		Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// Count returns the total number of users
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.store.DB().WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
