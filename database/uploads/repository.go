package uploads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// Repository handles database operations for uploads and their time series
type Repository struct {
	store *database.Database
}

// NewRepository creates a new uploads repository
func NewRepository(store *database.Database) *Repository {
	return &Repository{store: store}
}

// CreateUpload inserts a new upload record. A missing status defaults to
// validated; an unknown one is rejected before touching the store.
func (r *Repository) CreateUpload(ctx context.Context, upload *models.DataUpload) error {
	if upload.UserID == "" {
		return database.NewValidationError("user_id", "must not be empty")
	}
	if upload.Filename == "" {
		return database.NewValidationError("filename", "must not be empty")
	}
	if upload.Status != "" && !models.ValidUploadStatus(upload.Status) {
		return database.NewValidationErrorWithValue("status", "unknown status", upload.Status)
	}

	if err := r.store.DB().WithContext(ctx).Create(upload).Error; err != nil {
		return fmt.Errorf("CreateUpload: %w", err)
	}
	return nil
}

// AddTimeSeries bulk-inserts observation rows for an upload in a single
// transaction. Rows are stamped with the upload ID and written in batches;
// either every row becomes visible or none do.
func (r *Repository) AddTimeSeries(ctx context.Context, uploadID string, rows []*models.TimeSeriesData) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.DataUploadID = uploadID
	}

	return r.store.WithTransaction(ctx, "AddTimeSeries", func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, database.TimeSeriesBatchSize).Error
	})
}

// MarkStatus transitions an upload to a new processing status. The error
// message is stored alongside an error status and cleared otherwise.
func (r *Repository) MarkStatus(ctx context.Context, id, status, errorMessage string) error {
	if !models.ValidUploadStatus(status) {
		return database.NewValidationErrorWithValue("status", "unknown status", status)
	}

	updates := map[string]interface{}{
		"status":        status,
		"error_message": errorMessage,
	}
	if status != models.UploadStatusError {
		updates["error_message"] = ""
	}

	if err := r.store.DB().WithContext(ctx).Model(&models.DataUpload{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("MarkStatus: %w", err)
	}
	return nil
}

// GetUpload retrieves an upload by primary key, or nil when absent
func (r *Repository) GetUpload(ctx context.Context, id string) (*models.DataUpload, error) {
	var upload models.DataUpload
	err := r.store.DB().WithContext(ctx).Where("id = ?", id).First(&upload).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetUpload: %w", err)
	}
	return &upload, nil
}

// ListByUser retrieves a user's uploads, newest first, with optional filters
func (r *Repository) ListByUser(ctx context.Context, userID, status string, limit, offset int) ([]models.DataUpload, error) {
	var list []models.DataUpload
	query := r.store.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	return list, nil
}

// GetTimeSeries retrieves observations for an upload ordered by time.
// Filtering by category over a window is the dominant query shape and runs
// against the composite (category, timestamp) index.
func (r *Repository) GetTimeSeries(ctx context.Context, uploadID, category string, startTime, endTime time.Time, limit int) ([]models.TimeSeriesData, error) {
	var series []models.TimeSeriesData
	query := r.store.DB().WithContext(ctx).
		Where("data_upload_id = ?", uploadID).
		Order("timestamp ASC")

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if !startTime.IsZero() {
		query = query.Where("timestamp >= ?", startTime)
	}

	if !endTime.IsZero() {
		query = query.Where("timestamp <= ?", endTime)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&series).Error; err != nil {
		return nil, fmt.Errorf("GetTimeSeries: %w", err)
	}
	return series, nil
}

// ListCategories returns the distinct categories present in an upload
func (r *Repository) ListCategories(ctx context.Context, uploadID string) ([]string, error) {
	var categories []string
	err := r.store.DB().WithContext(ctx).Model(&models.TimeSeriesData{}).
		Where("data_upload_id = ?", uploadID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

// CountSeriesRows returns the number of observations stored for an upload
func (r *Repository) CountSeriesRows(ctx context.Context, uploadID string) (int64, error) {
	var count int64
	err := r.store.DB().WithContext(ctx).Model(&models.TimeSeriesData{}).
		Where("data_upload_id = ?", uploadID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("CountSeriesRows: %w", err)
	}
	return count, nil
}

// ReconcileRowCount resets an upload's row_count to the number of series
// rows actually stored, for uploads whose ingest was interrupted.
func (r *Repository) ReconcileRowCount(ctx context.Context, uploadID string) error {
	count, err := r.CountSeriesRows(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("ReconcileRowCount: %w", err)
	}
	if err := r.store.DB().WithContext(ctx).Model(&models.DataUpload{}).
		Where("id = ?", uploadID).
		Update("row_count", count).Error; err != nil {
		return fmt.Errorf("ReconcileRowCount: %w", err)
	}
	return nil
}

// DeleteUpload removes an upload. The store cascades the delete to every
// observation row. Deleting a missing upload affects zero rows and succeeds.
func (r *Repository) DeleteUpload(ctx context.Context, id string) error {
	if err := r.store.DB().WithContext(ctx).Where("id = ?", id).
		Delete(&models.DataUpload{}).Error; err != nil {
		return fmt.Errorf("DeleteUpload: %w", err)
	}
	return nil
}
