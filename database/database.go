package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/kbukum/sqlstream/errors"
	"github.com/kbukum/sqlstream/logger"
)

// DB wraps a GORM database with sqlstream logging.
type DB struct {
	GormDB *gorm.DB
	log    *logger.Logger
	cfg    Config
	closed bool
	mu     sync.Mutex
}

// New opens a database connection with retry logic and connection pooling.
func New(cfg Config, log *logger.Logger, dialector gorm.Dialector) (*DB, error) {
	return NewWithContext(context.Background(), dialector, cfg, log)
}

// NewWithContext creates a database connection with context-aware retry logic.
// The context allows cancellation of connection attempts during retries.
func NewWithContext(ctx context.Context, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	gormCfg := &gorm.Config{
		Logger: newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
	}

	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
		}

		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			var sqlDB *sql.DB
			sqlDB, err = db.DB()
			if err == nil {
				if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
					err = pingErr
					log.Warn("Database ping failed", logger.Fields(
						"error", pingErr.Error(),
						"attempt", attempt,
					))
				} else {
					sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
					sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
					if lifetime, parseErr := time.ParseDuration(cfg.ConnMaxLifetime); parseErr == nil {
						sqlDB.SetConnMaxLifetime(lifetime)
					}
					if idleTime, parseErr := time.ParseDuration(cfg.ConnMaxIdleTime); parseErr == nil {
						sqlDB.SetConnMaxIdleTime(idleTime)
					}

					log.Info("Database connection established", logger.Fields(
						"name", cfg.Name,
						"attempt", attempt,
					))
					return &DB{GormDB: db, log: log, cfg: cfg}, nil
				}
			}
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("Database connection attempt failed, retrying", logger.Fields(
				"attempt", attempt,
				"error", err.Error(),
				"backoff", backoff.String(),
			))
			if waitErr := contextSleep(ctx, backoff); waitErr != nil {
				return nil, fmt.Errorf("database connection canceled during retry: %w", waitErr)
			}
		}
	}

	return nil, apperrors.ConnectionFailed(err).
		WithDetail("attempts", cfg.MaxRetries)
}

// contextSleep waits for the given duration or until context is canceled.
func contextSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Close closes the underlying sql.DB connection pool. Safe to call multiple times.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return err
	}
	d.log.Info("Closing database connection", logger.Fields("name", d.cfg.Name))
	d.closed = true
	return sqlDB.Close()
}

// Ping verifies the database connection is alive.
func (d *DB) Ping() error {
	return d.PingContext(context.Background())
}

// PingContext verifies the database connection is alive, respecting the context.
func (d *DB) PingContext(ctx context.Context) error {
	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns connection-pool statistics from the underlying sql.DB.
func (d *DB) Stats() (sql.DBStats, error) {
	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// WithContext returns a GORM session scoped to the given context.
func (d *DB) WithContext(ctx context.Context) *gorm.DB {
	return d.GormDB.WithContext(ctx)
}
