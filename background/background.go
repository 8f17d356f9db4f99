// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run goroutines that can be stopped and joined
package background

import (
	"sync"
)

// the shutdown and completed channels for a background
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle type
type T struct {
	once sync.Once
	s    []shutdown
}

// Process - type signature for background process
//
// Run must return promptly once shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		s: make([]shutdown, len(processes)),
	}

	// start each background
	for i, p := range processes {
		sd := make(chan struct{})
		finished := make(chan struct{})
		register.s[i].shutdown = sd
		register.s[i].finished = finished
		go func(p Process) {
			defer close(finished)
			p.Run(args, sd)
		}(p)
	}
	return register
}

// Stop - stop a set of background processes and wait for all to finish
//
// safe to call more than once
func (t *T) Stop() {
	if nil == t {
		return
	}

	t.once.Do(func() {
		// shutdown all background tasks
		for _, s := range t.s {
			close(s.shutdown)
		}
	})

	// wait for finished
	for _, s := range t.s {
		<-s.finished
	}
}
