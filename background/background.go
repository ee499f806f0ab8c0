// Copyright (c) 2014-2016 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background starts and stops a set of independent goroutines,
// each given its own shutdown channel, and waits for all of them to
// acknowledge shutdown before Stop returns.
package background

// Process is anything that can run until told to shut down.
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes is a list of Process to start together.
type Processes []Process

// the shutdown and completed channel pair for one running process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T is the handle returned by Start, used to Stop everything it started.
type T struct {
	s []shutdown
}

// Start launches one goroutine per process, passing args through to each
// Run call, and returns a handle that can later Stop them all.
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	// start each background
	for i, p := range processes {
		sd := make(chan struct{})
		finished := make(chan struct{})
		register.s[i].shutdown = sd
		register.s[i].finished = finished
		go func(p Process, sd chan struct{}, finished chan struct{}) {
			defer close(finished)
			p.Run(args, sd)
		}(p, sd, finished)
	}
	return register
}

// Stop signals every process to shut down and waits for each to finish.
func (t *T) Stop() {
	for _, sd := range t.s {
		close(sd.shutdown)
	}
	for _, sd := range t.s {
		<-sd.finished
	}
}
