// Package store is the Database Gateway Interface of the attachment
// subsystem: a transactional view over two logical tables, sweeps and
// sweep_tails, that the core treats as an opaque store. The core reads
// sweeps read-only and reads/writes sweep_tails.
package store

import (
	"context"
	"time"

	"github.com/bitmark-inc/hub/tangle"
)

// Tx is a scoped transaction handle. Callers must eventually call
// exactly one of Commit or Rollback. A handle released without either
// call is not rolled back by the implementations in this package:
// FakeGateway never applies its buffered writes, and PostgresGateway
// leaves the underlying pgx transaction open. Rollback after Commit,
// and Commit or Rollback called twice, are no-ops.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Gateway is the Database Gateway Interface. GetUnconfirmedSweeps is
// called once per tick, outside any per-sweep transaction; every other
// method takes the Tx opened for the sweep currently being processed.
type Gateway interface {
	// BeginTransaction opens a new transaction scoped to one sweep.
	BeginTransaction(ctx context.Context) (Tx, error)

	// GetUnconfirmedSweeps returns, in a stable order for the
	// duration of one tick, every sweep created before asOf that has
	// no confirmed tail.
	GetUnconfirmedSweeps(ctx context.Context, asOf time.Time) ([]Sweep, error)

	// GetTailsForSweep returns every tail hash recorded for sweepID,
	// ordered oldest first (newest last), used for Step C's
	// most-recent-consistent-tail selection.
	GetTailsForSweep(ctx context.Context, tx Tx, sweepID string) ([]tangle.Hash, error)

	// CreateTail upserts (sweepID, tailHash); a duplicate insert is a
	// no-op.
	CreateTail(ctx context.Context, tx Tx, sweepID string, tailHash tangle.Hash) error

	// MarkTailAsConfirmed flips the confirmed flag for tailHash.
	// Returns fault.ErrUnknownTail if no such row exists.
	MarkTailAsConfirmed(ctx context.Context, tx Tx, tailHash tangle.Hash) error
}
