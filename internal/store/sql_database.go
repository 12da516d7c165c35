package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/migrations"
)

// DB is a connection pool plus the helpers that depend on its driver.
type DB struct {
	*sql.DB
	driver             string
	builder            queryBuilder
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the database named by cfg.Driver and pings it.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, driver string, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            newQueryBuilder(driver),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Driver returns the database/sql driver name the pool was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies every pending migration for the pool's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Ping checks the connection and classifies the failure.
func (db *DB) Ping(ctx context.Context) error {
	return db.translate(db.PingContext(ctx))
}
