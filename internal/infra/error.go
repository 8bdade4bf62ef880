package infra

import (
	"errors"
	"log/slog"

	"bookhub/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound  RepositoryErrorKind = "NOT_FOUND"
	KindConflict  RepositoryErrorKind = "CONFLICT"
	KindInvariant RepositoryErrorKind = "INVARIANT"
	KindDBFailure RepositoryErrorKind = "DB_FAILURE"
)

const (
	pgErrCodeUniqueViolation = "23505"
	pgErrCodeCheckViolation  = "23514"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	slog.Error("repository error: "+msg, slog.String("kind", string(kind)))

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// ClassifyPgErr translates driver-level failures into repository kinds so the
// usecase layer never inspects PostgreSQL error codes.
func ClassifyPgErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return WrapRepoErr(KindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return WrapRepoErr(KindConflict, msg, err)
		case pgErrCodeCheckViolation:
			return WrapRepoErr(KindInvariant, msg, err)
		}
	}
	return WrapRepoErr(KindDBFailure, msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
