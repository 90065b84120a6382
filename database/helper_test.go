package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/config"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	return &config.Settings{
		DatabaseURL:   "sqlite://" + filepath.Join(t.TempDir(), "test.db"),
		PoolSize:      2,
		MaxOverflow:   2,
		AdminUsername: "admin",
		AdminEmail:    "admin@financialanalytics.local",
		AdminPassword: "admin123",
	}
}

// newBareTestDatabase opens a file-backed SQLite store without the schema
func newBareTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := Connect(testSettings(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestDatabase opens a file-backed SQLite store with the schema installed
func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db := newBareTestDatabase(t)
	require.NoError(t, db.InitializeSchema())
	return db
}

func seedUser(t *testing.T, d *Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "not-a-real-digest",
		Role:           models.RoleAnalyst,
		IsActive:       true,
	}
	require.NoError(t, d.db.Create(user).Error)
	return user
}

func seedTrainedModel(t *testing.T, d *Database, userID, name string, version int) *models.TrainedModel {
	t.Helper()

	model := &models.TrainedModel{
		UserID:       userID,
		ModelName:    name,
		ModelType:    models.ModelTypeARIMA,
		ForecastType: models.ForecastTypeRevenue,
		Version:      version,
		ModelPath:    "/var/models/" + name + ".pkl",
		IsActive:     true,
	}
	require.NoError(t, d.db.Create(model).Error)
	return model
}

func seedUpload(t *testing.T, d *Database, userID, status string, rowCount int) *models.DataUpload {
	t.Helper()

	upload := &models.DataUpload{
		UserID:   userID,
		Filename: "q3-actuals.csv",
		DataType: "financial_data",
		RowCount: rowCount,
		Status:   status,
	}
	require.NoError(t, d.db.Create(upload).Error)
	return upload
}

func seedForecast(t *testing.T, d *Database, modelID string, date time.Time, predicted float64, actual, lower, upper *float64) *models.Forecast {
	t.Helper()

	forecast := &models.Forecast{
		ModelID:                 modelID,
		ForecastDate:            date,
		PredictedValue:          predicted,
		ActualValue:             actual,
		LowerConfidenceInterval: lower,
		UpperConfidenceInterval: upper,
	}
	require.NoError(t, d.db.Create(forecast).Error)
	return forecast
}

func countRows(t *testing.T, d *Database, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, d.db.Model(model).Count(&count).Error)
	return count
}

func floatPtr(v float64) *float64 {
	return &v
}
