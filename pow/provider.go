// Package pow is the POW Provider Interface of the attachment
// subsystem: it encapsulates minimum-weight-magnitude policy and may
// itself call the ledger client for tip selection.
package pow

import (
	"context"

	"github.com/bitmark-inc/hub/tangle"
)

// Provider performs proof-of-work over trytes, either locally or by
// delegating to the ledger, returning attachable trytes ordered
// tail-first (index 0 is the tail).
type Provider interface {
	// PerformPow obtains its own tip pair (via the ledger client) and
	// attaches trytes. Used for plain reattachment of an existing
	// signed bundle.
	PerformPow(ctx context.Context, trytes []tangle.Trytes) ([]tangle.Trytes, error)

	// DoPow attaches trytes against tips the caller has already
	// selected. Used on the promotion path.
	DoPow(ctx context.Context, trytes []tangle.Trytes, tips tangle.TipPair) ([]tangle.Trytes, error)
}
