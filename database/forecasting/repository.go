package forecasting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/cache"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// Repository handles database operations for trained models and forecasts
type Repository struct {
	store      *database.Database
	modelCache *cache.ModelCache
}

// NewRepository creates a new forecasting repository
func NewRepository(store *database.Database) *Repository {
	return &Repository{store: store}
}

// SetModelCache enables read-through caching of latest-version lookups.
// A nil cache leaves caching disabled.
func (r *Repository) SetModelCache(mc *cache.ModelCache) {
	r.modelCache = mc
}

// CreateVersion registers a new trained model fit. The version is assigned
// inside the insert transaction as one greater than the current maximum for
// the (owner, model name) pair, so sequential retrains produce 1, 2, 3, ...
// with no gaps. The unique index on (user_id, model_name, version) is the
// authoritative guard: when two retrains race, one insert fails with a
// duplicate-key violation and the caller decides whether to retry.
func (r *Repository) CreateVersion(ctx context.Context, model *models.TrainedModel) error {
	if model.UserID == "" {
		return database.NewValidationError("user_id", "must not be empty")
	}
	if model.ModelName == "" {
		return database.NewValidationError("model_name", "must not be empty")
	}
	if !model.ModelType.Valid() {
		return database.NewValidationErrorWithValue("model_type", "unknown model type", model.ModelType)
	}
	if !model.ForecastType.Valid() {
		return database.NewValidationErrorWithValue("forecast_type", "unknown forecast type", model.ForecastType)
	}
	if model.ModelPath == "" {
		return database.NewValidationError("model_path", "must not be empty")
	}

	err := r.store.WithTransaction(ctx, "CreateVersion", func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.TrainedModel{}).
			Where("user_id = ? AND model_name = ?", model.UserID, model.ModelName).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		model.Version = maxVersion + 1
		return tx.Create(model).Error
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, model.UserID, model.ModelName)
	return nil
}

// GetModel retrieves a trained model by primary key, or nil when absent
func (r *Repository) GetModel(ctx context.Context, id string) (*models.TrainedModel, error) {
	var model models.TrainedModel
	err := r.store.DB().WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetModel: %w", err)
	}
	return &model, nil
}

// GetLatest retrieves the highest active version of a named model, or nil
// when the owner has no active version under that name. Served from cache
// when one is attached.
func (r *Repository) GetLatest(ctx context.Context, userID, modelName string) (*models.TrainedModel, error) {
	if r.modelCache != nil {
		if model, ok := r.modelCache.Get(ctx, userID, modelName); ok {
			return model, nil
		}
	}

	var model models.TrainedModel
	err := r.store.DB().WithContext(ctx).
		Where("user_id = ? AND model_name = ? AND is_active = ?", userID, modelName, true).
		Order("version DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetLatest: %w", err)
	}

	if r.modelCache != nil {
		r.modelCache.Set(ctx, &model)
	}
	return &model, nil
}

// ListVersions retrieves every version of a named model, newest first
func (r *Repository) ListVersions(ctx context.Context, userID, modelName string) ([]models.TrainedModel, error) {
	var list []models.TrainedModel
	err := r.store.DB().WithContext(ctx).
		Where("user_id = ? AND model_name = ?", userID, modelName).
		Order("version DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("ListVersions: %w", err)
	}
	return list, nil
}

// ListModels retrieves trained models with optional filters
func (r *Repository) ListModels(ctx context.Context, userID string, modelType models.ModelType, forecastType models.ForecastType, activeOnly bool, limit, offset int) ([]models.TrainedModel, error) {
	var list []models.TrainedModel
	query := r.store.DB().WithContext(ctx).Order("created_at DESC")

	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if modelType != "" {
		query = query.Where("model_type = ?", modelType)
	}
	if forecastType != "" {
		query = query.Where("forecast_type = ?", forecastType)
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
		return nil, fmt.Errorf("ListModels: %w", err)
	}
	return list, nil
}

// SetActive toggles serving eligibility of one model version
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	model, err := r.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if model == nil {
		return nil
	}

	if err := r.store.DB().WithContext(ctx).Model(&models.TrainedModel{}).
		Where("id = ?", id).
		Update("is_active", active).Error; err != nil {
		return fmt.Errorf("SetActive: %w", err)
	}

	r.invalidate(ctx, model.UserID, model.ModelName)
	return nil
}

// RecordAccuracy stores holdout evaluation metrics for a model version and
// drops any cached latest entry for the pair, so lookups never serve the row
// with stale metrics. Recording against a missing model is a no-op.
func (r *Repository) RecordAccuracy(ctx context.Context, id string, mae, rmse, r2Score, mape *float64) error {
	model, err := r.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if model == nil {
		return nil
	}

	updates := map[string]interface{}{
		"mae":      mae,
		"rmse":     rmse,
		"r2_score": r2Score,
		"mape":     mape,
	}
	if err := r.store.DB().WithContext(ctx).Model(&models.TrainedModel{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("RecordAccuracy: %w", err)
	}

	r.invalidate(ctx, model.UserID, model.ModelName)
	return nil
}

// DeleteModel removes a model version. The store cascades the delete to its
// forecasts, risk metrics, and KPI reports. Deleting a missing model affects
// zero rows and succeeds.
func (r *Repository) DeleteModel(ctx context.Context, id string) error {
	model, err := r.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if model == nil {
		return nil
	}

	if err := r.store.DB().WithContext(ctx).Where("id = ?", id).
		Delete(&models.TrainedModel{}).Error; err != nil {
		return fmt.Errorf("DeleteModel: %w", err)
	}

	r.invalidate(ctx, model.UserID, model.ModelName)
	return nil
}

// SaveForecasts bulk-inserts predicted points for a model in a single
// transaction, stamped with the model ID.
func (r *Repository) SaveForecasts(ctx context.Context, modelID string, forecasts []*models.Forecast) error {
	if len(forecasts) == 0 {
		return nil
	}
	for _, f := range forecasts {
		f.ModelID = modelID
	}

	return r.store.WithTransaction(ctx, "SaveForecasts", func(tx *gorm.DB) error {
		return tx.CreateInBatches(forecasts, database.ForecastBatchSize).Error
	})
}

// ListForecasts retrieves a model's predicted points over a window
func (r *Repository) ListForecasts(ctx context.Context, modelID string, startDate, endDate time.Time, limit int) ([]models.Forecast, error) {
	var list []models.Forecast
	query := r.store.DB().WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("forecast_date ASC")

	if !startDate.IsZero() {
		query = query.Where("forecast_date >= ?", startDate)
	}
	if !endDate.IsZero() {
		query = query.Where("forecast_date <= ?", endDate)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("ListForecasts: %w", err)
	}
	return list, nil
}

// BackfillActual records the observed value for one forecast point once the
// real figure exists. This is the only mutation forecasts receive.
func (r *Repository) BackfillActual(ctx context.Context, forecastID string, actual float64) error {
	if err := r.store.DB().WithContext(ctx).Model(&models.Forecast{}).
		Where("id = ?", forecastID).
		Update("actual_value", actual).Error; err != nil {
		return fmt.Errorf("BackfillActual: %w", err)
	}
	return nil
}

// invalidate drops any cached latest-version entry for the pair
func (r *Repository) invalidate(ctx context.Context, userID, modelName string) {
	if r.modelCache != nil {
		r.modelCache.Invalidate(ctx, userID, modelName)
	}
}
