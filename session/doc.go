// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - the interactive console loop
//
// menu:
//
//   1  connect to the configured address
//   2  disconnect
//   3  send one line as a single frame
//   4  wait for a message
//   5, q, quit or end of input to finish
//
// monitor events are printed as they arrive, interleaved with the menu
package session
