package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE codes the repos care about
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgBadTextRepr         = "22P02"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgLockNotAvailable    = "55P03"
	pgReadOnlyTx          = "25006"
	pgCannotConnectNow    = "57P03"
)

// PgError returns the Postgres error at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pg *pgconn.PgError
	ok := stderrs.As(err, &pg)
	return pg, ok
}

// SQLiteCode returns the extended result code of a sqlite error in the chain
func SQLiteCode(err error) (int, bool) {
	var le *sqlite.Error
	if stderrs.As(err, &le) {
		return le.Code(), true
	}
	return 0, false
}

// IsDuplicateKey reports a unique constraint hit on either SQL backend
func IsDuplicateKey(err error) bool {
	if pg, ok := PgError(err); ok {
		return pg.Code == pgUniqueViolation
	}
	if c, ok := SQLiteCode(err); ok {
		return c == sqlite3.SQLITE_CONSTRAINT_UNIQUE || c == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// DBErrorCode classifies a driver error. ok is false when err came from
// neither SQL driver.
func DBErrorCode(err error) (ErrorCode, bool) {
	if pg, ok := PgError(err); ok {
		switch pg.Code {
		case pgUniqueViolation:
			return ErrorCodeDuplicateKey, true
		case pgForeignKeyViolation, pgStringTooLong, pgBadTextRepr:
			return ErrorCodeInvalidArgument, true
		case pgNotNullViolation, pgCheckViolation:
			return ErrorCodeValidation, true
		case pgReadOnlyTx, pgCannotConnectNow:
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}
	if c, ok := SQLiteCode(err); ok {
		switch {
		case c == sqlite3.SQLITE_CONSTRAINT_UNIQUE, c == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrorCodeDuplicateKey, true
		case c&0xff == sqlite3.SQLITE_CONSTRAINT:
			return ErrorCodeValidation, true
		case c&0xff == sqlite3.SQLITE_BUSY, c&0xff == sqlite3.SQLITE_LOCKED:
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}
	return ErrorCodeUnknown, false
}

// FromDB wraps a storage error with its mapped code. Context expiry maps to
// Timeout; nil stays nil.
func FromDB(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case stderrs.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrorCodeTimeout, msg)
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports transient contention worth another attempt.
// Caller cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pg, ok := PgError(err); ok {
		return pg.Code == pgSerialization || pg.Code == pgDeadlock || pg.Code == pgLockNotAvailable
	}
	if c, ok := SQLiteCode(err); ok {
		return c&0xff == sqlite3.SQLITE_BUSY || c&0xff == sqlite3.SQLITE_LOCKED
	}
	s := strings.ToLower(Root(err).Error())
	for _, frag := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"database is locked",
	} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
