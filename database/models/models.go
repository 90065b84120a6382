// Package models defines the persisted entities of the forecasting platform.
//
// All entities use application-generated UUID strings as primary keys so that
// identifiers can be created before a row is written and remain portable
// across SQLite and PostgreSQL. Referential integrity is enforced at the
// store: every child table declares ON DELETE CASCADE against its parent, and
// closed value sets (roles, model types, forecast types, upload states) are
// backed by check constraints.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a platform account used for authentication and authorization.
//
// Key Fields:
//   - Username: Unique login name (max 50 chars)
//   - Email: Unique contact address (max 100 chars)
//   - HashedPassword: Password digest; plaintext is never stored
//   - Role: Authorization level (admin, analyst, viewer)
//   - IsActive: Soft-disable flag; inactive accounts keep their data
//
// Deleting a user cascades to their uploads and trained models, and from
// there to all derived rows.
type User struct {
	ID             string    `gorm:"size:36;primaryKey" json:"id"`
	Username       string    `gorm:"size:50;not null;uniqueIndex:idx_user_username" json:"username"`
	Email          string    `gorm:"size:100;not null;uniqueIndex:idx_user_email" json:"email"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	FullName       string    `gorm:"size:100" json:"full_name"`
	Role           UserRole  `gorm:"size:20;not null;default:'viewer';check:chk_users_role,role IN ('admin','analyst','viewer')" json:"role"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID and the default role for new records
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleViewer
	}
	return nil
}

// DataUpload records one ingested dataset file and its validation outcome.
//
// Key Fields:
//   - UserID: Owning account (cascade delete)
//   - Filename/DataType: What was uploaded (e.g. "financial_data", "time_series")
//   - RowCount: Number of series rows the upload produced
//   - Status: validated, processing, or error
//   - ErrorMessage: Populated when Status is error
//   - SchemaInfo: Column layout detected during validation, stored as JSON
type DataUpload struct {
	ID           string         `gorm:"size:36;primaryKey" json:"id"`
	UserID       string         `gorm:"size:36;not null;index:idx_upload_user_id" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Filename     string         `gorm:"size:255;not null" json:"filename"`
	DataType     string         `gorm:"size:50;not null" json:"data_type"`
	RowCount     int            `gorm:"not null" json:"row_count"`
	Status       string         `gorm:"size:50;not null;check:chk_uploads_status,status IN ('validated','processing','error')" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	SchemaInfo   datatypes.JSON `json:"schema_info,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;not null;index:idx_upload_created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for DataUpload
func (DataUpload) TableName() string {
	return "data_uploads"
}

// BeforeCreate assigns a UUID and the initial status for new records
func (d *DataUpload) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = UploadStatusValidated
	}
	return nil
}

// TimeSeriesData is a single observation belonging to an upload.
// This is immutable time-series data; rows are written once in bulk and
// never updated, so there is no UpdatedAt column.
//
// Key Fields:
//   - DataUploadID: Source upload (cascade delete)
//   - Timestamp: Observation time (indexed for range scans)
//   - Value: Observed numeric value
//   - Category: Series label such as "revenue" or "expense"; the composite
//     (category, timestamp) index serves the dominant query shape of
//     fetching one category over a time window
//   - Attributes: Free-form per-row dimensions, stored as JSON
type TimeSeriesData struct {
	ID           string         `gorm:"size:36;primaryKey" json:"id"`
	DataUploadID string         `gorm:"size:36;not null;index:idx_ts_upload_id" json:"data_upload_id"`
	DataUpload   DataUpload     `gorm:"foreignKey:DataUploadID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp    time.Time      `gorm:"not null;index:idx_ts_timestamp;index:idx_ts_category_timestamp,priority:2" json:"timestamp"`
	Value        float64        `gorm:"not null" json:"value"`
	Category     string         `gorm:"size:100;not null;index:idx_ts_category_timestamp,priority:1" json:"category"`
	Attributes   datatypes.JSON `json:"attributes,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;not null" json:"created_at"`
}

// TableName specifies the table name for TimeSeriesData
func (TimeSeriesData) TableName() string {
	return "timeseries_data"
}

// BeforeCreate assigns a UUID for new records
func (t *TimeSeriesData) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TrainedModel is the registry entry for one persisted forecasting model fit.
//
// Key Fields:
//   - UserID: Owning account (cascade delete)
//   - ModelName: Logical model identity chosen by the owner
//   - ModelType: Algorithm family (linear_regression, ridge_regression,
//     lasso_regression, arima, sarima)
//   - ForecastType: Target quantity (revenue, expense, cash_flow)
//   - Version: Monotonic retrain counter per (user, model name); the unique
//     idx_model_owner_version index rejects concurrent duplicates
//   - ModelPath: Filesystem location of the serialized model artifact
//   - MAE/RMSE/R2Score/MAPE: Holdout accuracy metrics, absent until evaluated
//   - ModelParams: Hyperparameters used for the fit, stored as JSON
//   - IsActive: Whether the version is eligible for serving
type TrainedModel struct {
	ID                string         `gorm:"size:36;primaryKey" json:"id"`
	UserID            string         `gorm:"size:36;not null;index:idx_model_user_id;index:idx_model_owner_version,unique,priority:1" json:"user_id"`
	User              User           `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ModelName         string         `gorm:"size:100;not null;index:idx_model_name;index:idx_model_owner_version,unique,priority:2" json:"model_name"`
	ModelType         ModelType      `gorm:"size:50;not null;check:chk_models_model_type,model_type IN ('linear_regression','ridge_regression','lasso_regression','arima','sarima')" json:"model_type"`
	ForecastType      ForecastType   `gorm:"size:50;not null;check:chk_models_forecast_type,forecast_type IN ('revenue','expense','cash_flow')" json:"forecast_type"`
	Version           int            `gorm:"not null;index:idx_model_owner_version,unique,priority:3" json:"version"`
	ModelPath         string         `gorm:"size:255;not null" json:"model_path"`
	MAE               *float64       `json:"mae,omitempty"`
	RMSE              *float64       `json:"rmse,omitempty"`
	R2Score           *float64       `gorm:"column:r2_score" json:"r2_score,omitempty"`
	MAPE              *float64       `json:"mape,omitempty"`
	TrainingDataCount *int           `json:"training_data_count,omitempty"`
	ModelParams       datatypes.JSON `json:"model_params,omitempty"`
	IsActive          bool           `gorm:"not null;default:true;index:idx_model_active" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for TrainedModel
func (TrainedModel) TableName() string {
	return "trained_models"
}

// BeforeCreate assigns a UUID and the initial version for new records
func (m *TrainedModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// Forecast is one predicted point produced by a trained model run.
// Rows are written in bulk when a forecast is generated; ActualValue is the
// only field mutated afterwards, backfilled once the real observation exists.
type Forecast struct {
	ID                      string         `gorm:"size:36;primaryKey" json:"id"`
	ModelID                 string         `gorm:"size:36;not null;index:idx_forecast_model_id" json:"model_id"`
	Model                   TrainedModel   `gorm:"foreignKey:ModelID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ForecastDate            time.Time      `gorm:"not null;index:idx_forecast_date" json:"forecast_date"`
	PredictedValue          float64        `gorm:"not null" json:"predicted_value"`
	LowerConfidenceInterval *float64       `json:"lower_confidence_interval,omitempty"` // 95% CI lower bound
	UpperConfidenceInterval *float64       `json:"upper_confidence_interval,omitempty"` // 95% CI upper bound
	ActualValue             *float64       `json:"actual_value,omitempty"` // Filled in later for backtesting
	ForecastMetadata        datatypes.JSON `json:"forecast_metadata,omitempty"`
	CreatedAt               time.Time      `gorm:"autoCreateTime;not null" json:"created_at"`
}

// TableName specifies the table name for Forecast
func (Forecast) TableName() string {
	return "forecasts"
}

// BeforeCreate assigns a UUID for new records
func (f *Forecast) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// RiskMetrics stores one risk calculation snapshot for a trained model.
//
// Key Fields:
//   - CalculationDate: When the metrics were computed (defaults to now)
//   - Volatility: Standard deviation of returns
//   - VaR95/VaR99: Value at Risk at 95%/99% confidence
//   - CVaR95/CVaR99: Conditional VaR (expected shortfall)
//   - SharpeRatio: Risk-adjusted return metric
//   - CorrelationData: Correlations with other variables, stored as JSON
//   - ScenarioData: Monte Carlo simulation results, stored as JSON
type RiskMetrics struct {
	ID              string         `gorm:"size:36;primaryKey" json:"id"`
	ModelID         string         `gorm:"size:36;not null;index:idx_risk_model_id" json:"model_id"`
	Model           TrainedModel   `gorm:"foreignKey:ModelID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CalculationDate time.Time      `gorm:"not null;index:idx_risk_calculation_date" json:"calculation_date"`
	Volatility      *float64       `json:"volatility,omitempty"`
	VaR95           *float64       `gorm:"column:var_95" json:"var_95,omitempty"`
	VaR99           *float64       `gorm:"column:var_99" json:"var_99,omitempty"`
	CVaR95          *float64       `gorm:"column:cvar_95" json:"cvar_95,omitempty"`
	CVaR99          *float64       `gorm:"column:cvar_99" json:"cvar_99,omitempty"`
	SharpeRatio     *float64       `json:"sharpe_ratio,omitempty"`
	CorrelationData datatypes.JSON `json:"correlation_data,omitempty"`
	ScenarioData    datatypes.JSON `json:"scenario_data,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for RiskMetrics
func (RiskMetrics) TableName() string {
	return "risk_metrics"
}

// BeforeCreate assigns a UUID and defaults the calculation date for new records
func (r *RiskMetrics) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CalculationDate.IsZero() {
		r.CalculationDate = time.Now().UTC()
	}
	return nil
}

// KPIReport stores one generated KPI report over a reporting period.
// Reports are immutable once written.
type KPIReport struct {
	ID                 string         `gorm:"size:36;primaryKey" json:"id"`
	ModelID            string         `gorm:"size:36;not null;index:idx_kpi_model_id" json:"model_id"`
	Model              TrainedModel   `gorm:"foreignKey:ModelID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ReportDate         time.Time      `gorm:"not null;index:idx_kpi_report_date" json:"report_date"`
	ReportPeriodStart  time.Time      `gorm:"not null" json:"report_period_start"`
	ReportPeriodEnd    time.Time      `gorm:"not null" json:"report_period_end"`
	RevenueGrowthRate  *float64       `json:"revenue_growth_rate,omitempty"`
	OperatingMargin    *float64       `json:"operating_margin,omitempty"`
	NetMargin          *float64       `json:"net_margin,omitempty"`
	ForecastAccuracy   *float64       `json:"forecast_accuracy,omitempty"`
	BudgetVariance     *float64       `json:"budget_variance,omitempty"`
	RiskAdjustedReturn *float64       `json:"risk_adjusted_return,omitempty"`
	ReportData         datatypes.JSON `json:"report_data,omitempty"` // Full report payload
	CreatedAt          time.Time      `gorm:"autoCreateTime;not null" json:"created_at"`
}

// TableName specifies the table name for KPIReport
func (KPIReport) TableName() string {
	return "kpi_reports"
}

// BeforeCreate assigns a UUID and defaults the report date for new records
func (k *KPIReport) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.ReportDate.IsZero() {
		k.ReportDate = time.Now().UTC()
	}
	return nil
}

// All returns every persisted model in dependency order, parents before
// children, suitable for migration and ordered drops.
func All() []interface{} {
	return []interface{}{
		&User{},
		&DataUpload{},
		&TimeSeriesData{},
		&TrainedModel{},
		&Forecast{},
		&RiskMetrics{},
		&KPIReport{},
	}
}
