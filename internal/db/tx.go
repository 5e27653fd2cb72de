package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/pkg"
)

// SerializableTxAttempts bounds how many times a serializable transaction
// is run while the server keeps aborting it with serialization failures.
const SerializableTxAttempts = 8

// ErrTxContention is returned once every attempt of a serializable
// transaction failed on a serialization conflict. Callers may retry later.
var ErrTxContention = errors.New("transaction contention")

var SerializableTxOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

func newRetryBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.RandomizationFactor = 0.5
	b.Multiplier = 2
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, SerializableTxAttempts-1), ctx)
}

// RetrySerializable runs fn and re-runs it with jittered exponential backoff
// while it fails with a serialization failure, up to SerializableTxAttempts
// runs. fn must open and finish its own transaction.
func RetrySerializable(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn(ctx)
		if err == nil || pkg.IsSerializationFailureError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, newRetryBackOff(ctx))
	if err == nil || !pkg.IsSerializationFailureError(err) {
		return err
	}
	log.Warnf("[%s] serialization failure on all %d attempts: %s", name, attempt, err)
	return fmt.Errorf("%s: %w after %d attempts: %w", name, ErrTxContention, attempt, err)
}

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// WithTx runs fn inside a transaction opened with opts. The transaction is
// committed when fn returns nil and rolled back otherwise.
func WithTx(ctx context.Context, db TxBeginner, opts pgx.TxOptions, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

// WithSerializableTx is WithTx at SERIALIZABLE isolation, re-run from scratch
// on serialization failures.
func WithSerializableTx(ctx context.Context, db TxBeginner, name string, fn func(tx pgx.Tx) error) error {
	return RetrySerializable(ctx, name, func(ctx context.Context) error {
		return WithTx(ctx, db, SerializableTxOptions, fn)
	})
}
