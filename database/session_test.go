package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/database/models"
)

func TestWithTransactionCommits(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	err := db.WithTransaction(ctx, "CreateUsers", func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "x"}).Error; err != nil {
			return err
		}
		return tx.Create(&models.User{Username: "bob", Email: "bob@example.com", HashedPassword: "x"}).Error
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), countRows(t, db, &models.User{}))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTransaction(ctx, "CreateUsers", func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "x"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	var dbErr *DBError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "CreateUsers", dbErr.Operation)

	// The insert before the failure is not visible afterwards
	assert.Equal(t, int64(0), countRows(t, db, &models.User{}))
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	func() {
		defer func() {
			require.NotNil(t, recover())
		}()
		_ = db.WithTransaction(ctx, "CreateUsers", func(tx *gorm.DB) error {
			if err := tx.Create(&models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "x"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	}()

	assert.Equal(t, int64(0), countRows(t, db, &models.User{}))
}

func TestWithSessionRunsOperation(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	seedUser(t, db, "alice")

	var count int64
	err := db.WithSession(ctx, "CountUsers", func(s *gorm.DB) error {
		return s.Model(&models.User{}).Count(&count).Error
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWithSessionWrapsError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithSession(ctx, "FailingOp", func(s *gorm.DB) error {
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	var dbErr *DBError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "FailingOp", dbErr.Operation)
}
