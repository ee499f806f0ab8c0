package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/store"
	"github.com/bitmark-inc/hub/tangle"
)

func TestFakeGatewayCommitAppliesBufferedWrites(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	tx, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)

	assert.NoError(t, gateway.CreateTail(ctx, tx, "s1", "tail-1"))
	assert.NoError(t, tx.Commit(ctx))

	tails := gateway.Tails("s1")
	assert.Len(t, tails, 1)
	assert.Equal(t, "tail-1", string(tails[0].TailHash))
}

func TestFakeGatewayRollbackDiscardsBufferedWrites(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	tx, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)

	assert.NoError(t, gateway.CreateTail(ctx, tx, "s1", "tail-1"))
	assert.NoError(t, tx.Rollback(ctx))

	assert.Empty(t, gateway.Tails("s1"))
}

func TestFakeGatewayFailNextCommitDiscardsPendingWrites(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	gateway.FailNextCommit()

	tx, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)
	assert.NoError(t, gateway.CreateTail(ctx, tx, "s1", "tail-1"))

	err = tx.Commit(ctx)
	assert.Equal(t, fault.ErrDBTransient, err)
	assert.Empty(t, gateway.Tails("s1"), "a failed commit must leave no trace")

	// the next transaction is unaffected: FailNextCommit only arms once.
	tx2, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)
	assert.NoError(t, gateway.CreateTail(ctx, tx2, "s1", "tail-1"))
	assert.NoError(t, tx2.Commit(ctx))
	assert.Len(t, gateway.Tails("s1"), 1)
}

func TestFakeGatewayReadsYourOwnWritesWithinTransaction(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	tx, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)
	assert.NoError(t, gateway.CreateTail(ctx, tx, "s1", "tail-1"))

	visible, err := gateway.GetTailsForSweep(ctx, tx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, []tangle.Hash{"tail-1"}, visible)

	assert.Empty(t, gateway.Tails("s1"), "uncommitted writes must not be visible outside the transaction")
}

func TestFakeGatewayCreateTailIsIdempotent(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	tx, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)
	assert.NoError(t, gateway.CreateTail(ctx, tx, "s1", "tail-1"))
	assert.NoError(t, gateway.CreateTail(ctx, tx, "s1", "tail-1"))
	assert.NoError(t, tx.Commit(ctx))

	assert.Len(t, gateway.Tails("s1"), 1)
}

func TestFakeGatewayMarkTailAsConfirmedUnknownTail(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	tx, err := gateway.BeginTransaction(ctx)
	assert.NoError(t, err)

	err = gateway.MarkTailAsConfirmed(ctx, tx, "does-not-exist")
	assert.Equal(t, fault.ErrUnknownTail, err)
}

func TestFakeGatewayGetUnconfirmedSweepsExcludesConfirmed(t *testing.T) {
	gateway := store.NewFakeGateway()
	ctx := context.Background()

	asOf := time.Now()
	gateway.PutSweep(store.Sweep{ID: "s1", CreatedAt: asOf.Add(-time.Hour)})
	gateway.PutSweep(store.Sweep{ID: "s2", CreatedAt: asOf.Add(-time.Hour)})
	gateway.PutTail(store.SweepTail{SweepID: "s2", TailHash: "tail-2", Confirmed: true})

	sweeps, err := gateway.GetUnconfirmedSweeps(ctx, asOf)
	assert.NoError(t, err)
	assert.Len(t, sweeps, 1)
	assert.Equal(t, "s1", sweeps[0].ID)
}
