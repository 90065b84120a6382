package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

// Repository handles database operations for risk metrics and KPI reports
type Repository struct {
	store *database.Database
}

// NewRepository creates a new risk repository
func NewRepository(store *database.Database) *Repository {
	return &Repository{store: store}
}

// SaveRiskMetrics persists one risk calculation snapshot for a model
func (r *Repository) SaveRiskMetrics(ctx context.Context, metrics *models.RiskMetrics) error {
	if metrics.ModelID == "" {
		return database.NewValidationError("model_id", "must not be empty")
	}

	if err := r.store.DB().WithContext(ctx).Create(metrics).Error; err != nil {
		return fmt.Errorf("SaveRiskMetrics: %w", err)
	}
	return nil
}

// LatestForModel retrieves the most recent risk snapshot of a model, or nil
// when none has been calculated yet
func (r *Repository) LatestForModel(ctx context.Context, modelID string) (*models.RiskMetrics, error) {
	var metrics models.RiskMetrics
	err := r.store.DB().WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("calculation_date DESC").
		First(&metrics).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("LatestForModel: %w", err)
	}
	return &metrics, nil
}

// ListForModel retrieves a model's risk snapshots over a window, newest first
func (r *Repository) ListForModel(ctx context.Context, modelID string, startDate, endDate time.Time, limit int) ([]models.RiskMetrics, error) {
	var list []models.RiskMetrics
	query := r.store.DB().WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("calculation_date DESC")

	if !startDate.IsZero() {
		query = query.Where("calculation_date >= ?", startDate)
	}
	if !endDate.IsZero() {
		query = query.Where("calculation_date <= ?", endDate)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("ListForModel: %w", err)
	}
	return list, nil
}

// SaveKPIReport persists one generated KPI report. The reporting period must
// be well-formed before the row is written.
func (r *Repository) SaveKPIReport(ctx context.Context, report *models.KPIReport) error {
	if report.ModelID == "" {
		return database.NewValidationError("model_id", "must not be empty")
	}
	if report.ReportPeriodStart.IsZero() || report.ReportPeriodEnd.IsZero() {
		return database.NewValidationError("report_period", "start and end must be set")
	}
	if report.ReportPeriodEnd.Before(report.ReportPeriodStart) {
		return database.NewValidationErrorWithValue("report_period", "end precedes start", report.ReportPeriodEnd)
	}

	if err := r.store.DB().WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("SaveKPIReport: %w", err)
	}
	return nil
}

// GetKPIReport retrieves a report by primary key, or nil when absent
func (r *Repository) GetKPIReport(ctx context.Context, id string) (*models.KPIReport, error) {
	var report models.KPIReport
	err := r.store.DB().WithContext(ctx).Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetKPIReport: %w", err)
	}
	return &report, nil
}

// ListKPIReports retrieves a model's reports, newest first, with optional
// period overlap filters
func (r *Repository) ListKPIReports(ctx context.Context, modelID string, periodStart, periodEnd time.Time, limit int) ([]models.KPIReport, error) {
	var list []models.KPIReport
	query := r.store.DB().WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("report_date DESC")

	if !periodStart.IsZero() {
		query = query.Where("report_period_end >= ?", periodStart)
	}
	if !periodEnd.IsZero() {
		query = query.Where("report_period_start <= ?", periodEnd)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("ListKPIReports: %w", err)
	}
	return list, nil
}
