// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package monitor - turn socket events into a deduplicated lifecycle stream
//
// a monitor reads two inproc channels: the libzmq socket monitor of the
// target (PAIR) and a notice channel (PULL) the target writes to when it
// tears down a connection itself.  Events for addresses that are not
// watched are dropped.
//
//   Idle --Start--> Running --Stop--> Stopping --(goroutine exit)--> Stopped
//
// a stopped monitor cannot be restarted; create a new one
package monitor
