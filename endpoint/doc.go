// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package endpoint - a single outbound DEALER connection
//
// connect and disconnect are explicit operator actions; the phase is
// advanced to Connected only when the monitor reports the transport
// level connection through Observe
package endpoint
