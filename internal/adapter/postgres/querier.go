package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the common interface implemented by *pgxpool.Pool, pgx.Tx and pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// DB is a Querier that can open transactions. *pgxpool.Pool satisfies it.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Builder returns a squirrel statement builder with PostgreSQL placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// unexported context key type for storing the active scope
type txCtxKey struct{}

// txScope is one level of a (possibly nested) transaction.
type txScope struct {
	tx   pgx.Tx
	root *rootState
}

// rootState is shared by every nested scope of one outermost transaction.
type rootState struct {
	rollbackOnly bool
}

// withScope puts a transaction scope into the context.
func withScope(ctx context.Context, s *txScope) context.Context {
	return context.WithValue(ctx, txCtxKey{}, s)
}

func scopeFromCtx(ctx context.Context) (*txScope, bool) {
	s, ok := ctx.Value(txCtxKey{}).(*txScope)
	return s, ok
}

// QuerierFromCtx returns the innermost transaction from context if present,
// otherwise returns db.
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	if s, ok := scopeFromCtx(ctx); ok {
		return s.tx
	}
	return db
}

// Exec builds b and runs it on q. Failures are mapped with MapError(entity, key).
func Exec(ctx context.Context, q Querier, b sq.Sqlizer, entity string, key any) error {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build %s statement: %w", entity, err)
	}
	if _, err := q.Exec(ctx, sqlStr, args...); err != nil {
		return MapError(err, entity, key)
	}
	return nil
}
