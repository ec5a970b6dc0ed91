package dbpkg

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes that mean the statement lost a race for a lock
// and may succeed when the transaction is retried.
const (
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

const codeNumericValueOutOfRange = "22003"

// IsRetryable reports whether err is a Postgres lock timeout, serialization failure or deadlock.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch pqErr.Code {
	case codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected:
		return true
	}

	return false
}

// IsOutOfRange reports whether err is a Postgres numeric overflow.
func IsOutOfRange(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeNumericValueOutOfRange
}

// ConstraintName returns the violated constraint name of a Postgres error or "".
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}
