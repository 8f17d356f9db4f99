// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"time"

	zmq "github.com/pebbe/zmq4"
)

const (
	// heartbeat timeout and TTL are multiples of the heartbeat interval
	heartbeatTimeoutFactor = 4
	heartbeatTTLFactor     = 8

	minimumKeepaliveInterval = time.Second
)

// NewSignalPair - return a pair of connected push/pull sockets
// for shutdown signalling
func NewSignalPair(signal string) (*zmq.Socket, *zmq.Socket, error) {

	// receive half of signalling channel
	pull, err := NewInproc(zmq.PULL, signal, true)
	if nil != err {
		return nil, nil, err
	}

	// send half of signalling channel
	push, err := NewInproc(zmq.PUSH, signal, false)
	if nil != err {
		pull.Close()
		return nil, nil, err
	}

	return push, pull, nil
}

// NewInproc - create a socket on an inproc channel, either binding or connecting
func NewInproc(socketType zmq.Type, channel string, bind bool) (*zmq.Socket, error) {

	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}
	err = socket.SetLinger(0)
	if nil != err {
		socket.Close()
		return nil, err
	}

	if bind {
		err = socket.Bind(channel)
	} else {
		err = socket.Connect(channel)
	}
	if nil != err {
		socket.Close()
		return nil, err
	}
	return socket, nil
}

// SetKeepalive - configure TCP keepalive on a socket before connect
//
// libzmq takes the probe interval in whole seconds, so the interval is
// rounded up with a one second minimum
func SetKeepalive(socket *zmq.Socket, enabled bool, interval time.Duration) error {

	if !enabled {
		return socket.SetTcpKeepalive(0)
	}

	err := socket.SetTcpKeepalive(1)
	if nil != err {
		return err
	}
	if interval <= 0 {
		return nil // system default
	}
	return socket.SetTcpKeepaliveIntvl(KeepaliveSeconds(interval))
}

// KeepaliveSeconds - interval in the units libzmq expects
func KeepaliveSeconds(interval time.Duration) int {
	if interval < minimumKeepaliveInterval {
		return 1
	}
	seconds := int(interval / time.Second)
	if interval%time.Second != 0 {
		seconds += 1
	}
	return seconds
}

// SetReconnect - exponential reconnect backoff from interval up to maximum
func SetReconnect(socket *zmq.Socket, interval time.Duration, maximum time.Duration) error {
	err := socket.SetReconnectIvl(interval)
	if nil != err {
		return err
	}
	return socket.SetReconnectIvlMax(maximum)
}

// SetHeartbeat - ZMTP level liveness probes
//
// this needs zmq 4.2; older libraries are silently accepted
func SetHeartbeat(socket *zmq.Socket, interval time.Duration) error {

	err := socket.SetHeartbeatIvl(interval)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		return err
	}
	err = socket.SetHeartbeatTimeout(heartbeatTimeoutFactor * interval)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		return err
	}
	err = socket.SetHeartbeatTtl(heartbeatTTLFactor * interval)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		return err
	}
	return nil
}

