package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the coarse class of a failed database operation.
type ErrorClassification int

const (
	// ClassUnknown is the default for unrecognised errors.
	ClassUnknown ErrorClassification = iota
	// ClassNotFound means the statement found nothing to act on.
	ClassNotFound
	// ClassConflict means a uniqueness or integrity constraint fired.
	ClassConflict
	// ClassInvalidInput means a parameter was rejected by the database.
	ClassInvalidInput
	// ClassUnavailable means the connection is gone or refused.
	ClassUnavailable
)

// PostgresErrorClassifier implements [ErrorClassificator] for pgx.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err as *pgconn.PgError and delegates to [ClassifyPgError].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return ClassUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return ClassUnknown
}

// ClassifyPgError maps a PostgreSQL error code to an [ErrorClassification].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	// Class 08 and 57: the server is not reachable
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection,
		pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return ClassUnavailable

	// Class 23: integrity constraint violations
	case pgerrcode.UniqueViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation:
		return ClassConflict

	// Class 22: data exceptions, e.g. a post id that is not a uuid
	case pgerrcode.InvalidTextRepresentation,
		pgerrcode.DataException,
		pgerrcode.StringDataRightTruncationDataException:
		return ClassInvalidInput

	case pgerrcode.NoDataFound:
		return ClassNotFound
	}

	return ClassUnknown
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ClassUnknown
	}

	switch sqliteErr.Code {
	case sqlite3.ErrConstraint:
		return ClassConflict
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen:
		return ClassUnavailable
	case sqlite3.ErrMismatch, sqlite3.ErrTooBig:
		return ClassInvalidInput
	case sqlite3.ErrNotFound:
		return ClassNotFound
	}

	return ClassUnknown
}

// translate wraps err with the store sentinel that matches its class.
// sql.ErrNoRows always becomes [ErrNotFound].
func (db *DB) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var class ErrorClassification
	if db.errorClassificator != nil {
		class = db.errorClassificator.Classify(err)
	}

	switch class {
	case ClassNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case ClassConflict:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case ClassInvalidInput:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case ClassUnavailable:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}
