// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"fmt"
	"sync/atomic"
)

// Counter - type to denote a counter that can be synchronously incremented
// just a 64 bit unsigned integer
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// Inproc - return a fresh inproc:// endpoint name
//
// libzmq requires each monitor and signal channel to be unique
// within a context
func (ic *Counter) Inproc(prefix string) string {
	return fmt.Sprintf("inproc://%s-%d", prefix, ic.Increment())
}
