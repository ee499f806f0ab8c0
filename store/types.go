package store

import (
	"time"

	"github.com/bitmark-inc/hub/tangle"
)

// Sweep is the read-only view of a sweep the core consumes. It is
// created by the (out-of-scope) sweep builder; the core never writes
// sweeps, only sweep_tails.
type Sweep struct {
	ID         string
	BundleHash tangle.Hash
	Trytes     []tangle.Trytes
	CreatedAt  time.Time
}

// SweepTail is one attachment attempt (a local reattachment or a
// user-submitted one) of a sweep's bundle. Rows are append-only except
// for the single confirmed flip a tail is allowed to make.
type SweepTail struct {
	SweepID   string
	TailHash  tangle.Hash
	CreatedAt time.Time
	Confirmed bool
}
