// Copyright (c) 2014-2016 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"time"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/logger"
)

// RunPeriodic drives tick at approximately interval between tick starts,
// not between the end of one tick and the start of the next: a slow tick
// may cause a subsequent interval to be skipped, but two ticks never run
// concurrently. A panic escaping tick is recovered, logged through log,
// and does not stop the loop, except a fault.FatalAbort, which is
// re-raised (see runTickSafely). RunPeriodic returns once shutdown is closed
// and any in-flight tick has returned, so callers typically invoke it
// directly from their Process.Run implementation.
func RunPeriodic(interval time.Duration, shutdown <-chan struct{}, log *logger.L, tick func()) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			runTickSafely(log, tick)
		}
	}
}

// runTickSafely recovers any panic raised by tick so that one bad tick
// cannot take the service down, with one exception: a fault.FatalAbort
// (raised by fault.Panic/Panicf) is deliberately re-raised, since that
// panic means a caller has already decided the process must terminate.
func runTickSafely(log *logger.L, tick func()) {
	defer func() {
		if r := recover(); nil != r {
			if abort, ok := r.(fault.FatalAbort); ok {
				panic(abort)
			}
			if nil != log {
				log.Errorf("tick panic recovered: %v", r)
			}
		}
	}()
	tick()
}
