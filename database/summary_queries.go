package database

import (
	"context"
	"fmt"
	"time"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// Summary data structures

// UserStorageStats aggregates one user's footprint in the store
type UserStorageStats struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	TotalUploads      int64  `json:"total_uploads"`
	ValidatedUploads  int64  `json:"validated_uploads"`
	ProcessingUploads int64  `json:"processing_uploads"`
	ErrorUploads      int64  `json:"error_uploads"`
	TotalRows         int64  `json:"total_rows"`
	TrainedModels     int64  `json:"trained_models"`
}

// ModelAccuracySummary reports realized forecast accuracy for one model
// version, computed from forecast points whose actual value has been
// backfilled.
type ModelAccuracySummary struct {
	ModelID         string  `json:"model_id"`
	ModelName       string  `json:"model_name"`
	Version         int     `json:"version"`
	ForecastType    string  `json:"forecast_type"`
	TotalPoints     int64   `json:"total_points"`
	EvaluatedPoints int64   `json:"evaluated_points"`
	AvgAbsError     float64 `json:"avg_abs_error"`
	AvgAbsPctError  float64 `json:"avg_abs_pct_error"`
	IntervalHitPct  float64 `json:"interval_hit_pct"`
}

// ModelRanking is one leaderboard row for a forecast type
type ModelRanking struct {
	ModelID   string   `json:"model_id"`
	UserID    string   `json:"user_id"`
	ModelName string   `json:"model_name"`
	Version   int      `json:"version"`
	ModelType string   `json:"model_type"`
	MAPE      *float64 `json:"mape"`
	RMSE      *float64 `json:"rmse"`
	Rank      int      `json:"rank"`
}

// EntityCounts reports row counts per managed table
type EntityCounts struct {
	Users         int64 `json:"users"`
	DataUploads   int64 `json:"data_uploads"`
	SeriesRows    int64 `json:"series_rows"`
	TrainedModels int64 `json:"trained_models"`
	Forecasts     int64 `json:"forecasts"`
	RiskMetrics   int64 `json:"risk_metrics"`
	KPIReports    int64 `json:"kpi_reports"`
}

// Summary Query Methods

// GetUserStorageStats aggregates upload and model footprints per user,
// heaviest users first
func (d *Database) GetUserStorageStats(ctx context.Context, limit int) ([]UserStorageStats, error) {
	var stats []UserStorageStats

	query := `
		SELECT
			u.id as user_id,
			u.username,
			COUNT(DISTINCT d.id) as total_uploads,
			COALESCE(SUM(CASE WHEN d.status = 'validated' THEN 1 ELSE 0 END), 0) as validated_uploads,
			COALESCE(SUM(CASE WHEN d.status = 'processing' THEN 1 ELSE 0 END), 0) as processing_uploads,
			COALESCE(SUM(CASE WHEN d.status = 'error' THEN 1 ELSE 0 END), 0) as error_uploads,
			COALESCE(SUM(d.row_count), 0) as total_rows,
			(SELECT COUNT(*) FROM trained_models m WHERE m.user_id = u.id) as trained_models
		FROM users u
		LEFT JOIN data_uploads d ON d.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY total_rows DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	if err := d.db.WithContext(ctx).Raw(query).Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("GetUserStorageStats: %w", err)
	}
	return stats, nil
}

// GetModelAccuracySummary computes realized accuracy per model version from
// backfilled forecasts: average absolute error, average absolute percentage
// error, and how often the actual landed inside the confidence interval.
// Models without any evaluated point are omitted.
func (d *Database) GetModelAccuracySummary(ctx context.Context, userID string, since time.Time) ([]ModelAccuracySummary, error) {
	var summaries []ModelAccuracySummary

	query := `
		SELECT
			m.id as model_id,
			m.model_name,
			m.version,
			m.forecast_type,
			COUNT(f.id) as total_points,
			COUNT(f.actual_value) as evaluated_points,
			COALESCE(AVG(ABS(f.predicted_value - f.actual_value)), 0) as avg_abs_error,
			COALESCE(AVG(CASE
				WHEN f.actual_value IS NOT NULL AND f.actual_value <> 0
				THEN ABS((f.predicted_value - f.actual_value) / f.actual_value) * 100
			END), 0) as avg_abs_pct_error,
			COALESCE(AVG(CASE
				WHEN f.actual_value IS NULL OR f.lower_confidence_interval IS NULL OR f.upper_confidence_interval IS NULL THEN NULL
				WHEN f.actual_value >= f.lower_confidence_interval AND f.actual_value <= f.upper_confidence_interval THEN 100.0
				ELSE 0.0
			END), 0) as interval_hit_pct
		FROM trained_models m
		JOIN forecasts f ON f.model_id = m.id
	`

	conditions := " WHERE 1=1"
	args := []interface{}{}
	if userID != "" {
		conditions += " AND m.user_id = ?"
		args = append(args, userID)
	}
	if !since.IsZero() {
		conditions += " AND f.forecast_date >= ?"
		args = append(args, since)
	}

	query += conditions + `
		GROUP BY m.id, m.model_name, m.version, m.forecast_type
		HAVING COUNT(f.actual_value) > 0
		ORDER BY avg_abs_pct_error ASC
	`

	if err := d.db.WithContext(ctx).Raw(query, args...).Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("GetModelAccuracySummary: %w", err)
	}
	return summaries, nil
}

// GetModelLeaderboard ranks active evaluated models for one forecast type by
// their holdout MAPE, best first
func (d *Database) GetModelLeaderboard(ctx context.Context, forecastType models.ForecastType, limit int) ([]ModelRanking, error) {
	if !forecastType.Valid() {
		return nil, NewValidationErrorWithValue("forecast_type", "unknown forecast type", forecastType)
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	var rankings []ModelRanking
	query := `
		SELECT
			id as model_id,
			user_id,
			model_name,
			version,
			model_type,
			mape,
			rmse,
			ROW_NUMBER() OVER (ORDER BY mape ASC) as rank
		FROM trained_models
		WHERE forecast_type = ?
		AND is_active = ?
		AND mape IS NOT NULL
		ORDER BY mape ASC
		LIMIT ?
	`

	if err := d.db.WithContext(ctx).Raw(query, forecastType, true, limit).Scan(&rankings).Error; err != nil {
		return nil, fmt.Errorf("GetModelLeaderboard: %w", err)
	}
	return rankings, nil
}

// GetEntityCounts reports row counts for every managed table
func (d *Database) GetEntityCounts(ctx context.Context) (*EntityCounts, error) {
	var counts EntityCounts

	targets := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &counts.Users},
		{&models.DataUpload{}, &counts.DataUploads},
		{&models.TimeSeriesData{}, &counts.SeriesRows},
		{&models.TrainedModel{}, &counts.TrainedModels},
		{&models.Forecast{}, &counts.Forecasts},
		{&models.RiskMetrics{}, &counts.RiskMetrics},
		{&models.KPIReport{}, &counts.KPIReports},
	}

	for _, t := range targets {
		if err := d.db.WithContext(ctx).Model(t.model).Count(t.dest).Error; err != nil {
			return nil, fmt.Errorf("GetEntityCounts: %w", err)
		}
	}
	return &counts, nil
}
