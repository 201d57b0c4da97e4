package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codezetta/internal/domain"
	"codezetta/internal/util"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	Rebind(query string) string
}

// writeError wraps a failed write, surfacing unique violations as
// domain.ErrDuplicateKey.
func writeError(op string, err error) error {
	if util.IsUniqueViolation(err) {
		return fmt.Errorf("failed to %s: %w", op, domain.ErrDuplicateKey)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
