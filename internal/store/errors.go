package store

import "errors"

// Low-level database operation errors. Repository methods wrap them with the
// driver error so callers can match with [errors.Is].
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning the session row fails.
	ErrScanningRow = errors.New("failed to scan session row")
)
