package pow

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/ledger"
	"github.com/bitmark-inc/hub/tangle"
)

// nonceTrytes is the width, in trytes, of the nonce field this
// implementation appends to the tail transaction it attaches. A real
// bundle's nonce field lives inside the signed trytes and must not be
// touched by anything but the node's own attachment algorithm; this
// local provider is a stand-in for that external collaborator and only
// needs to produce a value the injected digest treats deterministically.
const nonceTrytes = 27

// LocalProvider performs CPU-bound proof-of-work directly, without
// delegating to the ledger node. It needs a ledger.Client only to
// obtain its own tip pair for PerformPow; DoPow never touches the
// ledger since the caller already selected tips.
type LocalProvider struct {
	client   ledger.Client
	digest   tangle.Digest
	mwm      int
	workers  int
	tryteSet string
}

// NewLocalProvider builds a provider targeting the given minimum weight
// magnitude (the number of trailing '9' trytes the digest must have).
// workers <= 0 defaults to runtime.NumCPU().
func NewLocalProvider(client ledger.Client, digest tangle.Digest, mwm int, workers int) *LocalProvider {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &LocalProvider{
		client:   client,
		digest:   digest,
		mwm:      mwm,
		workers:  workers,
		tryteSet: "9ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	}
}

func (p *LocalProvider) PerformPow(ctx context.Context, trytes []tangle.Trytes) ([]tangle.Trytes, error) {
	if 0 == len(trytes) {
		return trytes, nil
	}
	tips, err := p.client.GetTransactionsToApprove(ctx, 0, "")
	if nil != err {
		return nil, err
	}
	return p.DoPow(ctx, trytes, tips)
}

func (p *LocalProvider) DoPow(ctx context.Context, trytes []tangle.Trytes, tips tangle.TipPair) ([]tangle.Trytes, error) {
	if 0 == len(trytes) {
		return trytes, nil
	}

	attached := make([]tangle.Trytes, len(trytes))
	copy(attached, trytes)

	// only the tail (index 0) is mined: a nonce is appended to it and
	// the remaining transactions are returned unchanged. tips is not
	// written into any of the trytes and does not enter the nonce
	// search.
	nonce, err := p.mine(ctx, attached[0], tips)
	if nil != err {
		return nil, err
	}
	attached[0] = attached[0] + nonce
	return attached, nil
}

// mine searches for a nonce such that digest(trytes+nonce) has at
// least mwm trailing '9' trytes, splitting the search space across
// workers goroutines.
func (p *LocalProvider) mine(ctx context.Context, base tangle.Trytes, tips tangle.TipPair) (tangle.Trytes, error) {
	found := make(chan tangle.Trytes, 1)
	done := make(chan struct{})
	var once sync.Once
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			counter := start
			for {
				select {
				case <-done:
					return
				case <-ctx.Done():
					return
				default:
				}
				nonce := p.encodeNonce(counter)
				candidate := base + nonce
				h := p.digest(candidate)
				if p.meetsDifficulty(h) {
					once.Do(func() {
						found <- nonce
						close(done)
					})
					return
				}
				counter += p.workers
			}
		}(w)
	}

	select {
	case nonce := <-found:
		wg.Wait()
		return nonce, nil
	case <-ctx.Done():
		once.Do(func() { close(done) })
		wg.Wait()
		return "", fault.ErrLedgerUnavailable
	}
}

func (p *LocalProvider) meetsDifficulty(h tangle.Hash) bool {
	s := string(h)
	if len(s) < p.mwm {
		return false
	}
	return strings.Count(s[len(s)-p.mwm:], "9") == p.mwm
}

// encodeNonce renders counter as a fixed-width tryte string so mine's
// search is exhaustive over a bounded space rather than producing
// variable-length candidates.
func (p *LocalProvider) encodeNonce(counter int) tangle.Trytes {
	base := len(p.tryteSet)
	buf := make([]byte, nonceTrytes)
	for i := range buf {
		buf[i] = '9'
	}
	n := counter
	for i := nonceTrytes - 1; i >= 0 && n > 0; i-- {
		buf[i] = p.tryteSet[n%base]
		n /= base
	}
	return tangle.Trytes(buf)
}
