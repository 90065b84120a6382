package models

// UserRole defines the authorization level of a platform account.
// Stored as its string value; the closed set is also enforced by a
// check constraint on the users table.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

// Valid reports whether the role is one of the known values
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

// UserRoles returns all known roles
func UserRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleAnalyst, RoleViewer}
}

// ModelType identifies the forecasting algorithm family of a trained model
type ModelType string

const (
	ModelTypeLinearRegression ModelType = "linear_regression"
	ModelTypeRidgeRegression  ModelType = "ridge_regression"
	ModelTypeLassoRegression  ModelType = "lasso_regression"
	ModelTypeARIMA            ModelType = "arima"
	ModelTypeSARIMA           ModelType = "sarima"
)

// Valid reports whether the model type is one of the known values
func (m ModelType) Valid() bool {
	switch m {
	case ModelTypeLinearRegression, ModelTypeRidgeRegression, ModelTypeLassoRegression,
		ModelTypeARIMA, ModelTypeSARIMA:
		return true
	}
	return false
}

// ModelTypes returns all known model types
func ModelTypes() []ModelType {
	return []ModelType{
		ModelTypeLinearRegression,
		ModelTypeRidgeRegression,
		ModelTypeLassoRegression,
		ModelTypeARIMA,
		ModelTypeSARIMA,
	}
}

// ForecastType identifies the financial quantity a model forecasts
type ForecastType string

const (
	ForecastTypeRevenue  ForecastType = "revenue"
	ForecastTypeExpense  ForecastType = "expense"
	ForecastTypeCashFlow ForecastType = "cash_flow"
)

// Valid reports whether the forecast type is one of the known values
func (f ForecastType) Valid() bool {
	switch f {
	case ForecastTypeRevenue, ForecastTypeExpense, ForecastTypeCashFlow:
		return true
	}
	return false
}

// ForecastTypes returns all known forecast types
func ForecastTypes() []ForecastType {
	return []ForecastType{ForecastTypeRevenue, ForecastTypeExpense, ForecastTypeCashFlow}
}

// Upload processing states for DataUpload.Status
const (
	UploadStatusValidated  = "validated"
	UploadStatusProcessing = "processing"
	UploadStatusError      = "error"
)

// ValidUploadStatus reports whether s is a known upload status
func ValidUploadStatus(s string) bool {
	switch s {
	case UploadStatusValidated, UploadStatusProcessing, UploadStatusError:
		return true
	}
	return false
}
