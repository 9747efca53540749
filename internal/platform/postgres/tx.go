// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRollbackFailed marks a transaction whose work failed and whose rollback
// failed as well. Partial writes may be visible.
var ErrRollbackFailed = errors.New("postgres: rollback failed")

// DBTX is the query surface shared by [*pgxpool.Pool] and [pgx.Tx].
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// Executor returns the transaction bound to ctx, or pool when there is none.
//
// Repositories call it on every query so that they transparently join a
// transaction opened by [Transactor.WithinTx].
func Executor(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if transaction, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return transaction
	}
	return pool
}

// # Transaction Scope

// Transactor opens transactions on a pool and binds them to a context.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor constructs a [Transactor] over pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// snapshotOptions gives every statement of a read the same snapshot and
// forbids writes.
var snapshotOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// WithinTx runs fn inside a single transaction.
//
// If ctx already carries a transaction, fn joins it and the outermost caller
// decides commit or rollback. An error from fn rolls the transaction back; if
// the rollback itself fails the returned error also matches [ErrRollbackFailed].
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, pgx.TxOptions{}, fn)
}

// WithinReadTx runs fn in a read-only REPEATABLE READ transaction, so reads
// spanning several statements never mix rows from before and after a
// concurrent commit. It joins a transaction already carried by ctx.
func (t *Transactor) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, snapshotOptions, fn)
}

func (t *Transactor) run(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	transaction, err := t.pool.BeginTx(ctx, options)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, transaction)); err != nil {
		if rollbackErr := transaction.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("%w: %v", ErrRollbackFailed, rollbackErr))
		}
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}

	return nil
}
