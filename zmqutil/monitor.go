// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	zmq "github.com/pebbe/zmq4"
)

// Monitorable - anything that can publish its socket events on an inproc channel
//
// *zmq.Socket satisfies this; an empty channel stops monitoring
type Monitorable interface {
	Monitor(channel string, events zmq.Event) error
}

// NewMonitor - return a socket connection to the monitoring channel of another socket
// for connection state signalling
// a unique inproc://name must be provided for each use
func NewMonitor(socket Monitorable, channel string, events zmq.Event) (*zmq.Socket, error) {

	err := socket.Monitor(channel, events)
	if nil != err {
		return nil, err
	}

	mon, err := NewInproc(zmq.PAIR, channel, false)
	if nil != err {
		// stop publishing to a channel nobody reads
		socket.Monitor("", 0)
		return nil, err
	}
	return mon, nil
}
