package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrRollbackOnly is returned by the outermost RunInTx when a nested scope
// failed but the failure was swallowed by an intermediate caller.
var ErrRollbackOnly = errors.New("transaction marked rollback-only")

// TxManager manages database transactions using the context pattern.
//
// The outermost RunInTx begins a real transaction. Nested RunInTx calls open
// a savepoint inside it. A failure at any level marks the whole transaction
// rollback-only: the outermost scope never commits after that.
type TxManager struct {
	db DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default).
// On success: commits (or releases the savepoint when nested).
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	parent, nested := scopeFromCtx(ctx)

	var tx pgx.Tx
	if nested {
		tx, err = parent.tx.Begin(ctx)
		if err != nil {
			parent.root.rollbackOnly = true
			return fmt.Errorf("begin savepoint: %w", err)
		}
	} else {
		tx, err = m.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
	}

	scope := &txScope{tx: tx, root: &rootState{}}
	if nested {
		scope.root = parent.root
	}

	defer func() {
		if r := recover(); r != nil {
			scope.root.rollbackOnly = true
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withScope(ctx, scope)); err != nil {
		scope.root.rollbackOnly = true
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if !nested && scope.root.rollbackOnly {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, ErrRollbackOnly)
		}
		return ErrRollbackOnly
	}

	if err := tx.Commit(ctx); err != nil {
		scope.root.rollbackOnly = true
		if nested {
			return fmt.Errorf("release savepoint: %w", err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
