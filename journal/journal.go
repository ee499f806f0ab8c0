// Package journal is a durable local record of in-flight reattachment
// attempts, kept so a crash between proof-of-work and the next tick
// does not lose track of a publish that may already be on the ledger.
// It is a resiliency aid: the attachment controller's correctness does
// not depend on it, since Step B rediscovers any live reattachment
// from the ledger itself regardless of what the journal holds.
package journal

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/tangle"
)

// Entry is one in-flight reattachment record, as returned by All.
type Entry struct {
	SweepID    string
	BundleHash tangle.Hash
}

// Journal is a goleveldb-backed key/value log, one row per sweep
// currently being reattached.
type Journal struct {
	database *leveldb.DB
}

// Open opens (creating if necessary) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := leveldb.OpenFile(path, nil)
	if nil != err {
		return nil, err
	}
	return &Journal{database: db}, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.database.Close()
}

// Record notes that sweepID's bundle (identified by bundleHash) is
// about to be reattached. Panics on a write failure: the underlying
// disk is assumed reliable.
func (j *Journal) Record(sweepID string, bundleHash tangle.Hash) {
	err := j.database.Put([]byte(sweepID), []byte(bundleHash), nil)
	fault.PanicIfError("journal.Record", err)
}

// Clear removes sweepID's in-flight record. The attachment controller
// calls it once the new tail row has been written inside the sweep's
// still-open database transaction, before that transaction commits; a
// commit that then fails does not restore the record.
func (j *Journal) Clear(sweepID string) {
	err := j.database.Delete([]byte(sweepID), nil)
	fault.PanicIfError("journal.Clear", err)
}

// Pending returns the bundle hash recorded for sweepID, and whether a
// record exists at all.
func (j *Journal) Pending(sweepID string) (tangle.Hash, bool) {
	value, err := j.database.Get([]byte(sweepID), nil)
	if leveldb.ErrNotFound == err {
		return "", false
	}
	fault.PanicIfError("journal.Pending", err)
	return tangle.Hash(value), true
}

// All returns every in-flight record currently held, for logging at
// startup what was still being reattached when the process last
// stopped.
func (j *Journal) All() []Entry {
	iter := j.database.NewIterator(nil, nil)
	defer iter.Release()

	var entries []Entry
	for iter.Next() {
		entries = append(entries, Entry{
			SweepID:    string(iter.Key()),
			BundleHash: tangle.Hash(iter.Value()),
		})
	}
	fault.PanicIfError("journal.All", iter.Error())
	return entries
}
