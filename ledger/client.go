// Package ledger is the capability boundary over a remote tangle node: the
// only view the attachment controller has of ledger state. It is
// deliberately narrow and read-mostly so the controller can be tested
// against a mock; the wire framing of the node's own API is an external
// collaborator and is not specified beyond this interface.
package ledger

import (
	"context"

	"github.com/bitmark-inc/hub/tangle"
)

// Client is the Ledger Client Interface of the attachment subsystem.
// Every method may block on network I/O. RPCClient and NodeClient
// return the fault sentinel itself (not a wrapped error) on failure:
// fault.ErrLedgerUnavailable, except GetTransactionsToApprove, which
// returns fault.ErrTipSelectionFailed, and StoreTransactions and
// BroadcastTransactions, which return fault.ErrPublicationFailed.
type Client interface {
	// NodeInfo reports the node's latest milestone state.
	NodeInfo(ctx context.Context) (tangle.NodeInfo, error)

	// GetBalances maps each address to its current unsigned balance.
	// Addresses the node has never seen map to 0.
	GetBalances(ctx context.Context, addresses []string) (map[string]uint64, error)

	// FindTransactions returns the union of transactions matching the
	// supplied address and bundle filters. Either filter may be empty.
	FindTransactions(ctx context.Context, addresses []string, bundles []tangle.Hash) ([]tangle.Hash, error)

	// GetTrytes returns one Transaction per hash, in the same order as
	// hashes.
	GetTrytes(ctx context.Context, hashes []tangle.Hash) ([]tangle.Transaction, error)

	// FilterConfirmedTails returns the subset of tails the node
	// currently considers confirmed by the latest milestone. reference,
	// if non-empty, scopes the check to a milestone/tip.
	FilterConfirmedTails(ctx context.Context, tails []tangle.Hash, reference tangle.Hash) ([]tangle.Hash, error)

	// FilterConsistentTails returns the subset of tails the node still
	// considers promotable: internally consistent and not orphaned.
	FilterConsistentTails(ctx context.Context, tails []tangle.Hash) ([]tangle.Hash, error)

	// GetTransactionsToApprove runs tip selection at the given depth,
	// optionally anchored to reference, and returns the chosen tips.
	GetTransactionsToApprove(ctx context.Context, depth int, reference tangle.Hash) (tangle.TipPair, error)

	// AttachToTangle performs (or delegates) proof-of-work over trytes
	// using the given tip pair and minimum weight magnitude, returning
	// attached trytes ordered tail-first.
	AttachToTangle(ctx context.Context, tips tangle.TipPair, mwm int, trytes []tangle.Trytes) ([]tangle.Trytes, error)

	// StoreTransactions persists attached trytes on the node.
	StoreTransactions(ctx context.Context, trytes []tangle.Trytes) error

	// BroadcastTransactions gossips attached trytes to the ledger
	// network.
	BroadcastTransactions(ctx context.Context, trytes []tangle.Trytes) error
}
