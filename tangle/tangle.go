// Package tangle holds the read-only domain types the attachment
// subsystem observes on the ledger: transactions, tip pairs, and the
// trytes payloads that move between the POW provider and the ledger
// client. Bundle construction, signing, and address derivation are
// external collaborators and are not modelled here.
package tangle

import "time"

// Trytes is an attached or unattached transaction payload in the
// ledger's native trinary encoding. The core never inspects its
// contents beyond passing it between collaborators.
type Trytes string

// Hash identifies a transaction or a bundle on the ledger. The same
// type is used for both: a bundle hash identifies a bundle's contents,
// a transaction hash (equivalently a "tail hash" when the transaction
// is a tail) identifies one transaction.
type Hash string

// Transaction is the read-only view of a ledger transaction returned by
// GetTrytes. CurrentIndex == 0 identifies a tail.
type Transaction struct {
	Hash         Hash
	Address      string
	Value        int64
	Timestamp    time.Time
	CurrentIndex uint64
	LastIndex    uint64
	BundleHash   Hash
	TrunkHash    Hash
}

// IsTail reports whether this transaction is the tail of its bundle.
func (t Transaction) IsTail() bool {
	return 0 == t.CurrentIndex
}

// TipPair is the pair of tip hashes a new transaction approves,
// produced by tip selection and consumed by attachment.
type TipPair struct {
	Trunk  Hash
	Branch Hash
}

// NodeInfo is the subset of a ledger node's status the controller
// captures once per tick for observability.
type NodeInfo struct {
	LatestMilestone           Hash
	LatestMilestoneIndex      uint64
	LatestSolidMilestoneIndex uint64
}

// Digest is a pure function from an attached transaction's trytes to
// its ledger hash. It must be deterministic and, in the ledger's
// regime, collision-free. Production wiring (cmd/hubd) supplies
// Sha3Digest; tests substitute a trivial stand-in.
type Digest func(Trytes) Hash
