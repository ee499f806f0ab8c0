package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/tangle"
)

// FakeGateway is an in-memory Gateway the attachment controller can be
// tested against without a real database. Writes made through a Tx are
// buffered and only applied to the committed state on Commit, so a
// rolled-back or failed-commit sweep leaves no trace - mirroring a real
// relational database closely enough to exercise the publish-then-
// commit-fails scenario.
type FakeGateway struct {
	mutex          sync.Mutex
	sweeps         map[string]Sweep
	tails          map[string][]SweepTail // committed state, by sweep id
	seq            int
	failNextCommit bool
}

// NewFakeGateway returns an empty FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		sweeps: map[string]Sweep{},
		tails:  map[string][]SweepTail{},
	}
}

// PutSweep seeds a sweep for a test scenario.
func (g *FakeGateway) PutSweep(s Sweep) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.sweeps[s.ID] = s
}

// PutTail seeds a committed tail for a test scenario, bypassing
// CreateTail's idempotence check (useful to set up "known tails"
// fixtures).
func (g *FakeGateway) PutTail(t SweepTail) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.tails[t.SweepID] = append(g.tails[t.SweepID], t)
}

// Tails returns a snapshot of every committed tail recorded for
// sweepID, for test assertions.
func (g *FakeGateway) Tails(sweepID string) []SweepTail {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	out := make([]SweepTail, len(g.tails[sweepID]))
	copy(out, g.tails[sweepID])
	return out
}

// FailNextCommit makes the next Commit called on any Tx of this gateway
// fail with fault.ErrDBTransient without applying any of that Tx's
// buffered writes, for exercising the "publish succeeds, DB commit
// fails" scenario.
func (g *FakeGateway) FailNextCommit() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.failNextCommit = true
}

// pendingWrite is one buffered mutation, applied in order on Commit.
type pendingWrite func(g *FakeGateway) error

// fakeTx buffers writes until Commit, so a sweep whose per-sweep
// protocol errors out or whose Commit itself fails never touches
// committed state.
type fakeTx struct {
	gateway *FakeGateway
	closed  bool
	pending []pendingWrite

	// overlay lets reads within the same transaction see its own
	// not-yet-committed writes, the way a real DB transaction would.
	overlayTails map[string][]SweepTail
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true

	g := t.gateway
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.failNextCommit {
		g.failNextCommit = false
		return fault.ErrDBTransient
	}
	for _, w := range t.pending {
		if err := w(g); nil != err {
			return err
		}
	}
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.closed = true
	t.pending = nil
	return nil
}

func (g *FakeGateway) BeginTransaction(ctx context.Context) (Tx, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	overlay := map[string][]SweepTail{}
	for id, tails := range g.tails {
		cp := make([]SweepTail, len(tails))
		copy(cp, tails)
		overlay[id] = cp
	}
	return &fakeTx{gateway: g, overlayTails: overlay}, nil
}

func (g *FakeGateway) GetUnconfirmedSweeps(ctx context.Context, asOf time.Time) ([]Sweep, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	var out []Sweep
	for _, s := range g.sweeps {
		if !s.CreatedAt.Before(asOf) {
			continue
		}
		if g.hasConfirmedLocked(g.tails, s.ID) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (g *FakeGateway) hasConfirmedLocked(tails map[string][]SweepTail, sweepID string) bool {
	for _, t := range tails[sweepID] {
		if t.Confirmed {
			return true
		}
	}
	return false
}

func (g *FakeGateway) GetTailsForSweep(ctx context.Context, tx Tx, sweepID string) ([]tangle.Hash, error) {
	ft := tx.(*fakeTx)
	tails := ft.overlayTails[sweepID]
	out := make([]tangle.Hash, len(tails))
	for i, t := range tails {
		out[i] = t.TailHash
	}
	return out, nil
}

func (g *FakeGateway) CreateTail(ctx context.Context, tx Tx, sweepID string, tailHash tangle.Hash) error {
	ft := tx.(*fakeTx)
	for _, t := range ft.overlayTails[sweepID] {
		if t.TailHash == tailHash {
			return nil
		}
	}
	g.mutex.Lock()
	g.seq++
	seq := g.seq
	g.mutex.Unlock()

	row := SweepTail{SweepID: sweepID, TailHash: tailHash, CreatedAt: time.Unix(int64(seq), 0)}
	ft.overlayTails[sweepID] = append(ft.overlayTails[sweepID], row)
	ft.pending = append(ft.pending, func(g *FakeGateway) error {
		for _, t := range g.tails[sweepID] {
			if t.TailHash == tailHash {
				return nil
			}
		}
		g.tails[sweepID] = append(g.tails[sweepID], row)
		return nil
	})
	return nil
}

func (g *FakeGateway) MarkTailAsConfirmed(ctx context.Context, tx Tx, tailHash tangle.Hash) error {
	ft := tx.(*fakeTx)

	found := false
	for sweepID, tails := range ft.overlayTails {
		for i, t := range tails {
			if t.TailHash == tailHash {
				ft.overlayTails[sweepID][i].Confirmed = true
				found = true
			}
		}
	}
	if !found {
		return fault.ErrUnknownTail
	}

	ft.pending = append(ft.pending, func(g *FakeGateway) error {
		for sweepID, tails := range g.tails {
			for i, t := range tails {
				if t.TailHash == tailHash {
					g.tails[sweepID][i].Confirmed = true
					return nil
				}
			}
		}
		return fault.ErrUnknownTail
	})
	return nil
}
