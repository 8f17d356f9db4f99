// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lifecycle - connection state change notifications
//
// the values here are produced by the monitor and consumed by the
// endpoint (to track its phase) and by the session (for display)
package lifecycle

import (
	"fmt"
	"time"

	zmq "github.com/pebbe/zmq4"
)

// Kind - what happened to a connection
type Kind int

// the recognised kinds
const (
	Connected Kind = iota + 1
	Disconnected
	ConnectRetried
	Closed
)

// Kinds - all recognised kinds in declaration order
var Kinds = []Kind{Connected, Disconnected, ConnectRetried, Closed}

var kindNames = map[Kind]string{
	Connected:      "Connected",
	Disconnected:   "Disconnected",
	ConnectRetried: "ConnectRetried",
	Closed:         "Closed",
}

// String - name of the kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind - inverse of String
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// FromZMQ - map a libzmq monitor event to a kind
//
// events that are not part of the connection lifecycle return false
func FromZMQ(ev zmq.Event) (Kind, bool) {
	switch ev {
	case zmq.EVENT_CONNECTED:
		return Connected, true
	case zmq.EVENT_DISCONNECTED:
		return Disconnected, true
	case zmq.EVENT_CONNECT_RETRIED:
		return ConnectRetried, true
	case zmq.EVENT_CLOSED:
		return Closed, true
	default:
		return 0, false
	}
}

// ZMQMask - the libzmq events needed to produce every kind
const ZMQMask = zmq.EVENT_CONNECTED | zmq.EVENT_DISCONNECTED | zmq.EVENT_CONNECT_RETRIED | zmq.EVENT_CLOSED

// Event - a single immutable lifecycle notification
type Event struct {
	Kind      Kind
	Address   string
	Timestamp time.Time
	Sequence  uint64 // emission order within one monitor
	Value     int    // libzmq event value: fd or retry interval
}

// String - for logging
func (e Event) String() string {
	return fmt.Sprintf("#%d %s %s at %s", e.Sequence, e.Kind, e.Address, e.Timestamp.Format(time.RFC3339Nano))
}
