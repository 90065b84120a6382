// Package database provides the persistence core of the forecasting platform.
//
// This package includes:
//   - Connection management for SQLite and PostgreSQL using GORM
//   - Pooling with bounded overflow and liveness-checked checkouts
//   - Schema lifecycle operations (initialize, destroy, guarded reset)
//   - Scoped sessions with commit-or-rollback semantics
//   - Bootstrap seeding of the administrator account
//
// Key Concepts:
//   - SQLite connections enable foreign key enforcement per physical
//     connection through the DSN, so every pooled connection honors
//     ON DELETE CASCADE
//   - Timestamps are written in UTC regardless of engine
//   - Constraint violations are classified into duplicate-key and
//     foreign-key errors for callers
//
// Data Models:
//
//	All persisted entities (User, DataUpload, TimeSeriesData, TrainedModel,
//	Forecast, RiskMetrics, KPIReport) are defined in the models package.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/config"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance. It serves as the central connection point for all
// persistence operations in the application.
type Database struct {
	db       *gorm.DB
	settings *config.Settings
}

// DB returns the underlying GORM database instance for direct access when needed.
// This method provides access to the raw GORM DB for advanced operations.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Settings returns the configuration the connection was opened with
func (d *Database) Settings() *config.Settings {
	return d.settings
}

// Connect establishes a database connection for the configured DATABASE_URL.
// URLs beginning with postgres:// or postgresql:// (or written as key=value
// DSNs) use PostgreSQL; sqlite:// URLs and bare file paths use SQLite.
func Connect(settings *config.Settings) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger:         gormLogger(settings.Debug),
		TranslateError: true,
		// All timestamps belong to one clock domain
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	if isPostgresURL(settings.DatabaseURL) {
		db, err = connectPostgres(settings, gormCfg)
	} else {
		db, err = connectSQLite(settings, gormCfg)
	}
	if err != nil {
		return nil, err
	}

	log.Println("✅ Database connection established")

	return &Database{db: db, settings: settings}, nil
}

// connectPostgres opens PostgreSQL through lib/pq so pool tuning happens on
// the raw handle, then hands the live connection to GORM.
func connectPostgres(settings *config.Settings, gormCfg *gorm.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", settings.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	configurePool(sqlDB, settings)

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// connectSQLite opens the SQLite file with foreign key enforcement and a busy
// timeout in the DSN. DSN parameters apply to every physical connection the
// pool opens, which a one-off PRAGMA statement would not.
func connectSQLite(settings *config.Settings, gormCfg *gorm.Config) (*gorm.DB, error) {
	path := sqlitePath(settings.DatabaseURL)
	if path == "" {
		return nil, fmt.Errorf("invalid sqlite database url: %q", settings.DatabaseURL)
	}
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", path, SQLiteBusyTimeoutMS)

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	configurePool(sqlDB, settings)

	// Verify connection; also creates the file on first use
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// configurePool applies steady-state plus bounded-overflow sizing. Idle and
// lifetime limits recycle aged connections so a checkout never hands out a
// connection the server may have dropped; database/sql additionally retries
// transparently when a cached connection turns out to be bad.
func configurePool(sqlDB *sql.DB, settings *config.Settings) {
	poolSize := settings.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	overflow := settings.MaxOverflow
	if overflow < 0 {
		overflow = DefaultMaxOverflow
	}

	sqlDB.SetMaxOpenConns(poolSize + overflow)
	sqlDB.SetMaxIdleConns(poolSize)
	sqlDB.SetConnMaxLifetime(ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(ConnMaxIdleTime)
}

// isPostgresURL reports whether the url selects the PostgreSQL engine
func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://") ||
		strings.Contains(url, "host=")
}

// sqlitePath extracts the file path from a sqlite:// url or bare path
func sqlitePath(url string) string {
	return strings.TrimSpace(strings.TrimPrefix(url, "sqlite://"))
}

// gormLogger returns verbose SQL logging when debug is enabled, silent otherwise
func gormLogger(debug bool) logger.Interface {
	if debug {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Silent) // Silent logging for production
}

// CheckConnection verifies database connectivity with a minimal query.
// Failures are logged and reported as false, never raised.
func (d *Database) CheckConnection() bool {
	var one int
	if err := d.db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Printf("⚠️ Database connection check failed: %v", err)
		return false
	}
	return true
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	log.Println("📡 Closing database connection...")
	return sqlDB.Close()
}
