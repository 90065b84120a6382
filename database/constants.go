package database

import "time"

// Connection pool sizing. PoolSize connections are kept ready at steady
// state; up to MaxOverflow additional connections may be opened under load
// and are released again once idle.
const (
	DefaultPoolSize    = 10
	DefaultMaxOverflow = 20

	// Recycling bounds. An idle connection older than ConnMaxIdleTime is
	// discarded rather than handed out, so a checkout never reuses a
	// connection the server may have silently closed.
	ConnMaxIdleTime = 5 * time.Minute
	ConnMaxLifetime = 30 * time.Minute
)

// SQLite busy timeout in milliseconds; writers back off instead of failing
// immediately with SQLITE_BUSY when the file is locked.
const SQLiteBusyTimeoutMS = 5000

// Query limits
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Batch sizes for bulk inserts
const (
	TimeSeriesBatchSize = 500
	ForecastBatchSize   = 200
)

// ResetConfirmationToken is the only input that allows a schema reset to
// proceed. Any other input cancels the reset.
const ResetConfirmationToken = "yes"

// AdminFullName is the display name given to the bootstrap administrator
const AdminFullName = "System Administrator"
