// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/dealermonitor/counter"
)

// test incrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if 0 != c1.Uint64() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	c1.Increment()
	c1.Increment()
	c1.Increment()

	if 3 != c1.Uint64() {
		t.Errorf("counter is not 3 after incrementing: %d", c1.Uint64())
	}
}

func TestConcurrentIncrement(t *testing.T) {

	var c counter.Counter
	var wg sync.WaitGroup

	for i := 0; i < 8; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	if 8000 != c.Uint64() {
		t.Errorf("lost increments: %d", c.Uint64())
	}
}

func TestInproc(t *testing.T) {

	var c counter.Counter

	n1 := c.Inproc("monitor")
	n2 := c.Inproc("monitor")

	if "inproc://monitor-1" != n1 {
		t.Errorf("unexpected first name: %q", n1)
	}
	if n1 == n2 {
		t.Errorf("duplicate names: %q", n1)
	}
}
