// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package endpoint

import (
	"sync"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/lifecycle"
	"github.com/bitmark-inc/dealermonitor/ratelimit"
	"github.com/bitmark-inc/dealermonitor/util"
	"github.com/bitmark-inc/dealermonitor/zmqutil"
	"github.com/bitmark-inc/logger"
)

// Phase - connection progress as seen by the operator
type Phase int

// the phases
const (
	Disconnected Phase = iota
	Connecting
	Connected
)

// String - name of the phase
func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "Unknown"
	}
}

// Endpoint - structure to hold a DEALER connection
//
// the socket methods must be called from a single goroutine;
// Observe and Phase may be called from any goroutine
type Endpoint struct {
	sync.RWMutex // protects phase and address

	log     *logger.L
	name    string
	config  Config
	socket  *zmq.Socket
	poller  *zmqutil.Poller
	notify  *zmq.Socket
	limiter *rate.Limiter

	address string // canonical tcp:// form, empty when Disconnected
	phase   Phase
}

// Connect - begin an asynchronous connection attempt
//
// no error if already connecting or connected to the same address;
// a different address replaces the current one
func (e *Endpoint) Connect(address string) error {

	conn, err := util.ParseEndpoint(address)
	if nil != err {
		e.log.Errorf("connect: invalid address: %q  error: %s", address, err)
		return err
	}
	canonical, v6 := conn.CanonicalIPandPort(util.TCPPrefix)

	e.RLock()
	phase := e.phase
	current := e.address
	e.RUnlock()

	if Disconnected != phase {
		if current == canonical {
			e.log.Infof("connect: already %s to: %q", phase, canonical)
			return nil
		}
		e.log.Infof("connect: replacing: %q  with: %q", current, canonical)
		err := e.Disconnect(current)
		if nil != err {
			return err
		}
	}

	err = ratelimit.Limit(e.limiter)
	if nil != err {
		return err
	}

	err = e.socket.SetIpv6(v6)
	if nil != err {
		e.log.Errorf("connect: %q  set IPv6: %t  error: %s", canonical, v6, err)
		return fault.ErrConnectFailed
	}

	// phase must be Connecting before the transport can report Connected
	e.Lock()
	e.phase = Connecting
	e.address = canonical
	e.Unlock()

	err = e.socket.Connect(canonical)
	if nil != err {
		e.log.Errorf("connect: %q  error: %s", canonical, err)
		e.Lock()
		e.phase = Disconnected
		e.address = ""
		e.Unlock()
		return fault.ErrConnectFailed
	}

	e.log.Infof("connect: %q  IPv6: %t", canonical, v6)
	return nil
}

// Disconnect - tear down any in-progress or established connection
//
// an empty address means the current one; an address that is not the
// current one is ignored
func (e *Endpoint) Disconnect(address string) error {

	e.RLock()
	phase := e.phase
	current := e.address
	e.RUnlock()

	if Disconnected == phase {
		e.log.Debug("disconnect: not connected")
		return nil
	}

	if "" != address {
		conn, err := util.ParseEndpoint(address)
		if nil != err {
			return err
		}
		if conn.Endpoint() != current {
			e.log.Warnf("disconnect: %q is not the current address: %q", address, current)
			return nil
		}
	}

	err := ratelimit.Limit(e.limiter)
	if nil != err {
		return err
	}

	err = e.socket.Disconnect(current)
	if nil != err {
		// connection may already be gone, e.g. connect never completed
		e.log.Warnf("disconnect: %q  error: %s", current, err)
	}

	e.Lock()
	e.phase = Disconnected
	e.address = ""
	e.Unlock()

	e.log.Infof("disconnect: %q  was: %s", current, phase)

	// libzmq does not report a locally requested teardown
	if nil != e.notify {
		_, err := e.notify.SendMessageDontwait(lifecycle.Disconnected.String(), current)
		if nil != err {
			e.log.Warnf("disconnect: notice for: %q  error: %s", current, err)
		}
	}
	return nil
}

// Send - transmit a message of one or more frames
func (e *Endpoint) Send(frames ...[]byte) error {

	if 0 == len(frames) {
		return fault.ErrEmptyMessage
	}
	if Connected != e.Phase() {
		return fault.ErrNotConnected
	}

	last := len(frames) - 1
	for i, frame := range frames {
		flag := zmq.SNDMORE
		if i == last {
			flag = 0
		}
		_, err := e.socket.SendBytes(frame, flag)
		if nil != err {
			e.log.Errorf("send: frame: %d of: %d  error: %s", i+1, len(frames), err)
			if zmq.AsErrno(err) == zmq.Errno(syscall.EAGAIN) {
				return fault.ErrTimedOut
			}
			return fault.ErrSendFailed
		}
	}
	e.log.Debugf("send: %d frames", len(frames))
	return nil
}

// Receive - wait for a complete message
//
// only valid once the transport reports the connection established;
// a zero or negative timeout waits forever
func (e *Endpoint) Receive(timeout time.Duration) ([][]byte, error) {

	if Connected != e.Phase() {
		return nil, fault.ErrNotConnected
	}

	if timeout <= 0 {
		timeout = -1
	}

	polled, err := e.poller.Poll(timeout)
	if nil != err {
		e.log.Errorf("receive: poll error: %s", err)
		return nil, err
	}
	if 0 == len(polled) {
		return nil, fault.ErrTimedOut
	}

	data, err := e.socket.RecvMessageBytes(0)
	if nil != err {
		e.log.Errorf("receive: error: %s", err)
		return nil, err
	}
	e.log.Debugf("receive: %d frames", len(data))
	return data, nil
}

// Observe - advance the phase from a transport lifecycle event
func (e *Endpoint) Observe(event lifecycle.Event) {

	e.Lock()
	defer e.Unlock()

	if event.Address != e.address {
		return
	}

	previous := e.phase
	switch event.Kind {
	case lifecycle.Connected:
		if Connecting == e.phase {
			e.phase = Connected
		}
	case lifecycle.Disconnected:
		// libzmq keeps retrying until told to disconnect
		if Connected == e.phase {
			e.phase = Connecting
		}
	default:
	}

	if previous != e.phase {
		e.log.Infof("observe: %s  phase: %s -> %s", event, previous, e.phase)
	}
}

// Phase - current phase
func (e *Endpoint) Phase() Phase {
	e.RLock()
	defer e.RUnlock()
	return e.phase
}

// Address - current address, empty when Disconnected
func (e *Endpoint) Address() string {
	e.RLock()
	defer e.RUnlock()
	return e.address
}

// Monitor - publish socket events on an inproc channel
func (e *Endpoint) Monitor(channel string, events zmq.Event) error {
	return e.socket.Monitor(channel, events)
}

// Notify - connect the local teardown notice channel
//
// an empty channel only drops the current one
func (e *Endpoint) Notify(channel string) error {
	if nil != e.notify {
		e.notify.Close()
		e.notify = nil
	}
	if "" == channel {
		return nil
	}
	push, err := zmqutil.NewInproc(zmq.PUSH, channel, false)
	if nil != err {
		return err
	}
	e.notify = push
	return nil
}

// Close - disconnect and release the sockets
func (e *Endpoint) Close() error {
	err := e.Disconnect("")
	if nil != err {
		e.log.Warnf("close: %s", err)
	}
	if nil != e.notify {
		e.notify.Close()
		e.notify = nil
	}
	e.poller.Remove(e.socket)
	err = e.socket.Close()
	e.log.Info("closed")
	return err
}

// String - to string
func (e *Endpoint) String() string {
	return e.name
}
