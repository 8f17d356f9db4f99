// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package endpoint

import (
	"crypto/rand"
	"fmt"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/dealermonitor/counter"
	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/ratelimit"
	"github.com/bitmark-inc/dealermonitor/zmqutil"
	"github.com/bitmark-inc/logger"
)

const (
	identifierSize = 16

	// connect/disconnect churn allowed from the operator
	churnPerSecond = 10
	churnBurst     = 5

	defaultSendTimeout = 5 * time.Second

	// retries against an absent peer back off up to the maximum
	reconnectInterval = 100 * time.Millisecond
	reconnectMaximum  = 5 * time.Second
)

// Config - options applied when the socket is created
type Config struct {
	KeepaliveEnabled  bool
	KeepaliveInterval time.Duration // only meaningful if KeepaliveEnabled
	Heartbeat         bool          // ZMTP heartbeat at KeepaliveInterval
	SendTimeout       time.Duration // zero => default
}

// atomically incremented counter for log names
var endpointCounter counter.Counter

// New - create the DEALER socket and apply the configuration
//
// a failure here means the transport could not be initialised
func New(config Config) (*Endpoint, error) {

	if config.KeepaliveEnabled && config.KeepaliveInterval < 0 {
		return nil, fault.ErrInvalidInterval
	}
	if 0 == config.SendTimeout {
		config.SendTimeout = defaultSendTimeout
	}

	socket, err := zmq.NewSocket(zmq.DEALER)
	if nil != err {
		return nil, err
	}

	err = configureSocket(socket, config)
	if nil != err {
		socket.Close()
		return nil, err
	}

	name := fmt.Sprintf("endpoint@%d", endpointCounter.Increment())

	poller := zmqutil.NewPoller()
	poller.Add(socket, zmq.POLLIN)

	e := &Endpoint{
		log:     logger.New(name),
		name:    name,
		config:  config,
		socket:  socket,
		poller:  poller,
		limiter: ratelimit.New(churnPerSecond, churnBurst),
		phase:   Disconnected,
	}
	e.log.Infof("keepalive: %t  interval: %s  heartbeat: %t", config.KeepaliveEnabled, config.KeepaliveInterval, config.Heartbeat)
	return e, nil
}

func configureSocket(socket *zmq.Socket, config Config) error {

	// local identity is a random value
	id := make([]byte, identifierSize)
	_, err := rand.Read(id)
	if nil != err {
		return err
	}
	err = socket.SetIdentity(string(id))
	if nil != err {
		return err
	}

	err = socket.SetLinger(0)
	if nil != err {
		return err
	}
	err = socket.SetSndtimeo(config.SendTimeout)
	if nil != err {
		return err
	}

	err = zmqutil.SetReconnect(socket, reconnectInterval, reconnectMaximum)
	if nil != err {
		return err
	}

	err = zmqutil.SetKeepalive(socket, config.KeepaliveEnabled, config.KeepaliveInterval)
	if nil != err {
		return err
	}

	if config.Heartbeat && config.KeepaliveInterval > 0 {
		return zmqutil.SetHeartbeat(socket, config.KeepaliveInterval)
	}
	return nil
}
