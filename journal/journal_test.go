package journal_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hub/journal"
	"github.com/bitmark-inc/hub/tangle"
)

func openJournal(t *testing.T) *journal.Journal {
	dir := t.TempDir()
	j, err := journal.Open(filepath.Join(dir, "journal"))
	assert.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalPendingUnknownSweep(t *testing.T) {
	j := openJournal(t)

	_, found := j.Pending("s1")
	assert.False(t, found)
}

func TestJournalRecordThenPending(t *testing.T) {
	j := openJournal(t)

	j.Record("s1", tangle.Hash("bundle-1"))

	hash, found := j.Pending("s1")
	assert.True(t, found)
	assert.Equal(t, tangle.Hash("bundle-1"), hash)
}

func TestJournalClearRemovesRecord(t *testing.T) {
	j := openJournal(t)

	j.Record("s1", tangle.Hash("bundle-1"))
	j.Clear("s1")

	_, found := j.Pending("s1")
	assert.False(t, found)
}

func TestJournalClearUnknownSweepIsNoop(t *testing.T) {
	j := openJournal(t)

	j.Clear("does-not-exist")

	_, found := j.Pending("does-not-exist")
	assert.False(t, found)
}

func TestJournalRecordOverwritesExistingEntry(t *testing.T) {
	j := openJournal(t)

	j.Record("s1", tangle.Hash("bundle-1"))
	j.Record("s1", tangle.Hash("bundle-2"))

	hash, found := j.Pending("s1")
	assert.True(t, found)
	assert.Equal(t, tangle.Hash("bundle-2"), hash)
}

func TestJournalAllReturnsEveryInFlightEntry(t *testing.T) {
	j := openJournal(t)

	j.Record("s1", tangle.Hash("bundle-1"))
	j.Record("s2", tangle.Hash("bundle-2"))
	j.Record("s3", tangle.Hash("bundle-3"))
	j.Clear("s2")

	entries := j.All()
	assert.Len(t, entries, 2)

	bySweep := make(map[string]tangle.Hash, len(entries))
	for _, e := range entries {
		bySweep[e.SweepID] = e.BundleHash
	}
	assert.Equal(t, tangle.Hash("bundle-1"), bySweep["s1"])
	assert.Equal(t, tangle.Hash("bundle-3"), bySweep["s3"])
	assert.NotContains(t, bySweep, "s2")
}

func TestJournalAllEmptyReturnsNoEntries(t *testing.T) {
	j := openJournal(t)

	assert.Empty(t, j.All())
}

func TestJournalPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal")

	j, err := journal.Open(path)
	assert.NoError(t, err)
	j.Record("s1", tangle.Hash("bundle-1"))
	assert.NoError(t, j.Close())

	reopened, err := journal.Open(path)
	assert.NoError(t, err)
	defer reopened.Close()

	hash, found := reopened.Pending("s1")
	assert.True(t, found)
	assert.Equal(t, tangle.Hash("bundle-1"), hash)
}
