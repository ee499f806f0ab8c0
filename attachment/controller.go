// Package attachment implements the attachment controller: the decision
// engine that, per tick, confirms, discovers, promotes, or reattaches
// every unconfirmed sweep.
package attachment

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/journal"
	"github.com/bitmark-inc/hub/ledger"
	"github.com/bitmark-inc/hub/pow"
	"github.com/bitmark-inc/hub/store"
	"github.com/bitmark-inc/hub/tangle"
	"github.com/bitmark-inc/logger"
)

// Config holds the per-deployment tunables the controller consumes.
type Config struct {
	PromotionDepth   int
	PromotionAddress string
}

// Controller runs the per-tick confirmation / promotion / reattachment
// protocol over every unconfirmed sweep.
type Controller struct {
	ledger  ledger.Client
	pow     pow.Provider
	gateway store.Gateway
	digest  tangle.Digest
	journal *journal.Journal // may be nil: the local publish journal is a resiliency aid, not a correctness requirement
	config  Config
	log     *logger.L
}

// New builds a Controller. j may be nil to disable the local
// publication journal.
func New(client ledger.Client, provider pow.Provider, gateway store.Gateway, digest tangle.Digest, j *journal.Journal, config Config) *Controller {
	return &Controller{
		ledger:  client,
		pow:     provider,
		gateway: gateway,
		digest:  digest,
		journal: j,
		config:  config,
		log:     logger.New("attachment"),
	}
}

// Tick runs one iteration of the confirmation/promotion/reattachment
// algorithm: it captures tick-start and node-info for observability,
// loads every unconfirmed sweep, and runs the per-sweep protocol for
// each inside its own database transaction. A failure loading
// unconfirmed sweeps aborts the whole tick (there is nothing to
// iterate); a failure processing one sweep never stops the others.
func (c *Controller) Tick(ctx context.Context) {
	tickStart := now()

	info, err := c.ledger.NodeInfo(ctx)
	if nil != err {
		c.log.Warnf("node-info: %v", err)
	} else {
		c.log.Debugf("tick-start: %s  latest-milestone: %s", tickStart, info.LatestMilestone)
	}

	sweeps, err := c.gateway.GetUnconfirmedSweeps(ctx, tickStart)
	if nil != err {
		c.log.Errorf("get-unconfirmed-sweeps: %v", err)
		return
	}

	for _, sweep := range sweeps {
		c.processSweep(ctx, sweep)
	}
}

// processSweep runs the per-sweep protocol inside one database
// transaction, recovering any panic and rolling back so one bad sweep
// can never poison the tick. A fault.FatalAbort panic is rolled back and
// then re-raised.
func (c *Controller) processSweep(ctx context.Context, sweep store.Sweep) {
	correlation := uuid.NewString()
	log := c.log

	tx, err := c.gateway.BeginTransaction(ctx)
	if nil != err {
		log.Errorf("[%s] sweep %s: begin-transaction: %v", correlation, sweep.ID, err)
		return
	}

	committed := false
	defer func() {
		r := recover()
		if !committed {
			if err := tx.Rollback(ctx); nil != err {
				log.Errorf("[%s] sweep %s: rollback: %v", correlation, sweep.ID, err)
			}
		}
		if nil != r {
			if abort, ok := r.(fault.FatalAbort); ok {
				// a fatal ledger-invariant violation: re-raise past this
				// sweep's own recovery so the tick harness lets it
				// terminate the process.
				panic(abort)
			}
			log.Errorf("[%s] sweep %s: panic recovered: %v", correlation, sweep.ID, r)
		}
	}()

	if err := c.runProtocol(ctx, tx, sweep, correlation); nil != err {
		if fault.IsErrFatal(err) {
			fault.Panicf("sweep %s: %v", sweep.ID, err)
		}
		log.Warnf("[%s] sweep %s: %v", correlation, sweep.ID, err)
		return
	}

	if err := tx.Commit(ctx); nil != err {
		log.Warnf("[%s] sweep %s: commit: %v", correlation, sweep.ID, err)
		return
	}
	committed = true
}

// runProtocol is the per-sweep protocol: Step A (direct confirmation),
// Step B (user reattachment discovery), Step C (promotion or
// reattachment).
func (c *Controller) runProtocol(ctx context.Context, tx store.Tx, sweep store.Sweep, correlation string) error {
	known, err := c.gateway.GetTailsForSweep(ctx, tx, sweep.ID)
	if nil != err {
		return err
	}

	// Step A - direct confirmation.
	confirmed, err := c.ledger.FilterConfirmedTails(ctx, known, "")
	if nil != err {
		return err
	}
	switch len(confirmed) {
	case 0:
		// fall through to Step B
	case 1:
		return c.gateway.MarkTailAsConfirmed(ctx, tx, confirmed[0])
	default:
		return fault.ErrMultipleConfirmedTails
	}

	// Step B - user reattachment discovery.
	done, err := c.discoverUserReattachments(ctx, tx, sweep, known, correlation)
	if nil != err {
		return err
	}
	if done {
		return nil
	}

	// Step C - promotion or reattachment.
	return c.promoteOrReattach(ctx, tx, sweep, correlation)
}

// discoverUserReattachments implements Step B. It returns done=true
// once it has confirmed the sweep via a user-submitted tail, in which
// case the caller must not proceed to Step C.
func (c *Controller) discoverUserReattachments(ctx context.Context, tx store.Tx, sweep store.Sweep, known []tangle.Hash, correlation string) (bool, error) {
	allHashes, err := c.ledger.FindTransactions(ctx, nil, []tangle.Hash{sweep.BundleHash})
	if nil != err {
		return false, err
	}

	transactions, err := c.ledger.GetTrytes(ctx, allHashes)
	if nil != err {
		return false, err
	}

	knownSet := make(map[tangle.Hash]bool, len(known))
	for _, h := range known {
		knownSet[h] = true
	}

	var userTails []tangle.Hash
	for _, t := range transactions {
		if t.IsTail() && !knownSet[t.Hash] {
			userTails = append(userTails, t.Hash)
		}
	}
	if 0 == len(userTails) {
		return false, nil
	}

	uConfirmed, err := c.ledger.FilterConfirmedTails(ctx, userTails, "")
	if nil != err {
		return false, err
	}
	if len(uConfirmed) > 0 {
		// pick deterministically: lexicographically smallest, so the
		// choice is reproducible across identical test runs.
		t := smallest(uConfirmed)
		if err := c.gateway.CreateTail(ctx, tx, sweep.ID, t); nil != err {
			return false, err
		}
		if err := c.gateway.MarkTailAsConfirmed(ctx, tx, t); nil != err {
			return false, err
		}
		c.log.Infof("[%s] sweep %s: confirmed via user reattachment %s", correlation, sweep.ID, t)
		return true, nil
	}

	uConsistent, err := c.ledger.FilterConsistentTails(ctx, userTails)
	if nil != err {
		return false, err
	}
	for _, t := range uConsistent {
		if err := c.gateway.CreateTail(ctx, tx, sweep.ID, t); nil != err {
			return false, err
		}
	}
	return false, nil
}

// promoteOrReattach implements Step C.
func (c *Controller) promoteOrReattach(ctx context.Context, tx store.Tx, sweep store.Sweep, correlation string) error {
	knownAfterB, err := c.gateway.GetTailsForSweep(ctx, tx, sweep.ID)
	if nil != err {
		return err
	}

	consistent, err := c.ledger.FilterConsistentTails(ctx, knownAfterB)
	if nil != err {
		return err
	}
	if 0 == len(consistent) {
		return c.reattach(ctx, tx, sweep, correlation)
	}

	target := mostRecentInOrder(knownAfterB, consistent)
	return c.promote(ctx, sweep, target, correlation)
}

// promote publishes a zero-value transaction referencing tail to raise
// its cumulative weight. It records nothing in the database: the
// promotion transaction is not itself a tail of the sweep.
func (c *Controller) promote(ctx context.Context, sweep store.Sweep, tail tangle.Hash, correlation string) error {
	tips, err := c.ledger.GetTransactionsToApprove(ctx, c.config.PromotionDepth, tail)
	if nil != err {
		return err
	}

	spam := buildPromotionTransaction(c.config.PromotionAddress, now())
	attached, err := c.pow.DoPow(ctx, []tangle.Trytes{spam}, tips)
	if nil != err {
		return err
	}

	if err := c.publish(ctx, attached); nil != err {
		return err
	}
	c.log.Infof("[%s] sweep %s: promoted via %s", correlation, sweep.ID, tail)
	return nil
}

// reattach publishes a fresh attachment of the sweep's own bundle.
// Publication is ordered before the DB insert: if publication fails, no
// row is written and the sweep stays eligible for reattachment next
// tick; if the DB commit then fails, the tail is live on the ledger but
// unknown to the hub, and Step B rediscovers it on a future tick.
func (c *Controller) reattach(ctx context.Context, tx store.Tx, sweep store.Sweep, correlation string) error {
	if nil != c.journal {
		c.journal.Record(sweep.ID, sweep.BundleHash)
	}

	attached, err := c.pow.PerformPow(ctx, sweep.Trytes)
	if nil != err {
		return err
	}
	if 0 == len(attached) {
		return fault.ErrPublicationFailed
	}
	tailHash := c.digest(attached[0])

	if err := c.publish(ctx, attached); nil != err {
		return err
	}

	if err := c.gateway.CreateTail(ctx, tx, sweep.ID, tailHash); nil != err {
		return err
	}
	if nil != c.journal {
		c.journal.Clear(sweep.ID)
	}
	c.log.Infof("[%s] sweep %s: reattached as %s", correlation, sweep.ID, tailHash)
	return nil
}

// publish stores then broadcasts attached trytes, in that order, for
// both promotion and reattachment.
func (c *Controller) publish(ctx context.Context, attached []tangle.Trytes) error {
	if err := c.ledger.StoreTransactions(ctx, attached); nil != err {
		return err
	}
	return c.ledger.BroadcastTransactions(ctx, attached)
}

// smallest returns the lexicographically smallest hash.
func smallest(hashes []tangle.Hash) tangle.Hash {
	out := make([]tangle.Hash, len(hashes))
	copy(out, hashes)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out[0]
}

// mostRecentInOrder returns the element of order that also appears in
// candidates, scanning from the end so DB order ties break newest
// last.
func mostRecentInOrder(order []tangle.Hash, candidates []tangle.Hash) tangle.Hash {
	candidateSet := make(map[tangle.Hash]bool, len(candidates))
	for _, h := range candidates {
		candidateSet[h] = true
	}
	for i := len(order) - 1; i >= 0; i-- {
		if candidateSet[order[i]] {
			return order[i]
		}
	}
	// order and candidates are never empty together by construction:
	// candidates is derived from order via FilterConsistentTails.
	return candidates[0]
}

// now is a seam over time.Now for determinism in the one place the
// controller reads wall-clock time directly.
var now = func() time.Time { return time.Now().UTC() }
