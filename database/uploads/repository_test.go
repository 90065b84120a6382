package uploads

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/config"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database"
	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

func newTestRepository(t *testing.T) (*Repository, *database.Database) {
	t.Helper()

	settings := &config.Settings{
		DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "test.db"),
		PoolSize:    2,
		MaxOverflow: 2,
	}
	store, err := database.Connect(settings)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.InitializeSchema())

	return NewRepository(store), store
}

func seedOwner(t *testing.T, store *database.Database) *models.User {
	t.Helper()

	owner := &models.User{
		Username:       "owner",
		Email:          "owner@example.com",
		HashedPassword: "not-a-real-digest",
	}
	require.NoError(t, store.DB().Create(owner).Error)
	return owner
}

func testUpload(userID string) *models.DataUpload {
	return &models.DataUpload{
		UserID:   userID,
		Filename: "q3-actuals.csv",
		DataType: "financial_data",
	}
}

func seriesRows(n int, category string, start time.Time) []*models.TimeSeriesData {
	rows := make([]*models.TimeSeriesData, n)
	for i := range rows {
		rows[i] = &models.TimeSeriesData{
			Timestamp: start.AddDate(0, 0, i),
			Value:     float64(i) * 1000,
			Category:  category,
		}
	}
	return rows
}

func TestCreateUploadDefaults(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	upload.SchemaInfo = datatypes.JSON(`{"columns":["date","revenue","expense"]}`)
	require.NoError(t, repo.CreateUpload(ctx, upload))

	assert.Len(t, upload.ID, 36)
	assert.Equal(t, models.UploadStatusValidated, upload.Status)

	stored, err := repo.GetUpload(ctx, upload.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "q3-actuals.csv", stored.Filename)
	assert.JSONEq(t, `{"columns":["date","revenue","expense"]}`, string(stored.SchemaInfo))
}

func TestCreateUploadValidation(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	tests := []struct {
		name   string
		upload *models.DataUpload
	}{
		{"missing user", &models.DataUpload{Filename: "a.csv", DataType: "financial_data"}},
		{"missing filename", &models.DataUpload{UserID: owner.ID, DataType: "financial_data"}},
		{"unknown status", &models.DataUpload{UserID: owner.ID, Filename: "a.csv", Status: "uploaded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateUpload(ctx, tt.upload)
			require.Error(t, err)

			var validationErr *database.ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestCreateUploadUnknownOwnerRejected(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	err := repo.CreateUpload(ctx, testUpload(uuid.NewString()))
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestAddTimeSeriesBatches(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	require.NoError(t, repo.CreateUpload(ctx, upload))

	// More rows than one batch holds
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := seriesRows(database.TimeSeriesBatchSize+50, "revenue", start)
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, rows))

	count, err := repo.CountSeriesRows(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(database.TimeSeriesBatchSize+50), count)

	// Empty input is a no-op
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, nil))
}

func TestReconcileRowCount(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	upload.RowCount = 999 // wrong on purpose
	require.NoError(t, repo.CreateUpload(ctx, upload))

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, seriesRows(25, "revenue", start)))

	require.NoError(t, repo.ReconcileRowCount(ctx, upload.ID))

	stored, err := repo.GetUpload(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.RowCount)
}

func TestMarkStatus(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	require.NoError(t, repo.CreateUpload(ctx, upload))

	require.NoError(t, repo.MarkStatus(ctx, upload.ID, models.UploadStatusError, "column 'revenue' missing"))
	stored, err := repo.GetUpload(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStatusError, stored.Status)
	assert.Equal(t, "column 'revenue' missing", stored.ErrorMessage)

	// Leaving the error state clears the message
	require.NoError(t, repo.MarkStatus(ctx, upload.ID, models.UploadStatusValidated, ""))
	stored, err = repo.GetUpload(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStatusValidated, stored.Status)
	assert.Empty(t, stored.ErrorMessage)

	err = repo.MarkStatus(ctx, upload.ID, "uploaded", "")
	require.Error(t, err)
	var validationErr *database.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestGetTimeSeriesWindow(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	require.NoError(t, repo.CreateUpload(ctx, upload))

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, seriesRows(10, "revenue", start)))
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, seriesRows(5, "expense", start)))

	// One category over a closed window
	window, err := repo.GetTimeSeries(ctx, upload.ID, "revenue",
		start.AddDate(0, 0, 2), start.AddDate(0, 0, 6), 0)
	require.NoError(t, err)
	require.Len(t, window, 5)
	for i, row := range window {
		assert.Equal(t, "revenue", row.Category)
		if i > 0 {
			assert.True(t, row.Timestamp.After(window[i-1].Timestamp))
		}
	}

	all, err := repo.GetTimeSeries(ctx, upload.ID, "", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, all, 15)

	limited, err := repo.GetTimeSeries(ctx, upload.ID, "revenue", time.Time{}, time.Time{}, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestListCategories(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	require.NoError(t, repo.CreateUpload(ctx, upload))

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, seriesRows(3, "revenue", start)))
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, seriesRows(3, "expense", start)))

	categories, err := repo.ListCategories(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"expense", "revenue"}, categories)
}

func TestListByUser(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	first := testUpload(owner.ID)
	require.NoError(t, repo.CreateUpload(ctx, first))

	second := testUpload(owner.ID)
	second.Filename = "q4-actuals.csv"
	require.NoError(t, repo.CreateUpload(ctx, second))
	require.NoError(t, repo.MarkStatus(ctx, second.ID, models.UploadStatusProcessing, ""))

	all, err := repo.ListByUser(ctx, owner.ID, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	processing, err := repo.ListByUser(ctx, owner.ID, models.UploadStatusProcessing, 0, 0)
	require.NoError(t, err)
	require.Len(t, processing, 1)
	assert.Equal(t, "q4-actuals.csv", processing[0].Filename)

	none, err := repo.ListByUser(ctx, uuid.NewString(), "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteUploadCascadesSeries(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	owner := seedOwner(t, store)

	upload := testUpload(owner.ID)
	require.NoError(t, repo.CreateUpload(ctx, upload))

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddTimeSeries(ctx, upload.ID, seriesRows(8, "revenue", start)))

	require.NoError(t, repo.DeleteUpload(ctx, upload.ID))

	gone, err := repo.GetUpload(ctx, upload.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var orphans int64
	require.NoError(t, store.DB().Model(&models.TimeSeriesData{}).Count(&orphans).Error)
	assert.Equal(t, int64(0), orphans)

	// Deleting again affects zero rows and succeeds
	require.NoError(t, repo.DeleteUpload(ctx, upload.ID))
}
