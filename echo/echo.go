// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package echo - a ROUTER that returns every message to its sender
package echo

import (
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/dealermonitor/background"
	"github.com/bitmark-inc/dealermonitor/counter"
	"github.com/bitmark-inc/dealermonitor/zmqutil"
	"github.com/bitmark-inc/logger"
)

const (
	peerEvents = zmq.EVENT_LISTENING | zmq.EVENT_ACCEPTED | zmq.EVENT_DISCONNECTED
)

// unique inproc names
var channelCounter counter.Counter

// Peer - bound ROUTER plus its background loop
type Peer struct {
	log      *logger.L
	router   *zmq.Socket
	monitor  *zmq.Socket
	push     *zmq.Socket
	pull     *zmq.Socket
	address  string
	echoed   counter.Counter
	shutdown *background.T
}

// New - bind a ROUTER on address
//
// an address with port * binds an ephemeral port, see Address
func New(address string) (*Peer, error) {

	log := logger.New("echo")

	router, err := zmq.NewSocket(zmq.ROUTER)
	if nil != err {
		return nil, err
	}
	router.SetLinger(0)

	monitor, err := zmqutil.NewMonitor(router, channelCounter.Inproc("echo-monitor"), peerEvents)
	if nil != err {
		router.Close()
		return nil, err
	}

	err = router.Bind(address)
	if nil != err {
		log.Errorf("cannot bind: %q  error: %s", address, err)
		monitor.Close()
		router.Close()
		return nil, err
	}

	bound, err := router.GetLastEndpoint()
	if nil != err {
		monitor.Close()
		router.Close()
		return nil, err
	}
	log.Infof("bind: %q", bound)

	push, pull, err := zmqutil.NewSignalPair(channelCounter.Inproc("echo-stop"))
	if nil != err {
		monitor.Close()
		router.Close()
		return nil, err
	}

	return &Peer{
		log:     log,
		router:  router,
		monitor: monitor,
		push:    push,
		pull:    pull,
		address: bound,
	}, nil
}

// Start - run the echo loop in the background
func (p *Peer) Start() {
	p.shutdown = background.Start(background.Processes{p}, nil)
}

// Stop - stop the loop and close the sockets
//
// must only follow Start; a second call does nothing
func (p *Peer) Stop() {
	if nil == p.push {
		return
	}
	_, err := p.push.SendMessage("stop")
	if nil != err {
		p.log.Errorf("stop signal error: %s", err)
	}
	p.shutdown.Stop()
	p.push.Close()
	p.push = nil
}

// Address - the bound tcp:// endpoint
func (p *Peer) Address() string {
	return p.address
}

// Echoed - number of messages returned so far
func (p *Peer) Echoed() uint64 {
	return p.echoed.Uint64()
}

// Run - background loop
func (p *Peer) Run(args interface{}, shutdown <-chan struct{}) {

	log := p.log
	log.Info("starting…")

	poller := zmqutil.NewPoller()
	poller.Add(p.router, zmq.POLLIN)
	poller.Add(p.monitor, zmq.POLLIN)
	poller.Add(p.pull, zmq.POLLIN)
	log.Debugf("polling: %d sockets", poller.Len())

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}

		polled, err := poller.Poll(time.Second)
		if nil != err {
			log.Errorf("poll error: %s", err)
			continue loop
		}

		for _, s := range polled {
			switch s.Socket {
			case p.pull:
				break loop

			case p.monitor:
				ev, addr, v, err := p.monitor.RecvEvent(0)
				if nil != err {
					log.Errorf("receive event error: %s", err)
					continue loop
				}
				log.Infof("event: %q  address: %q  value: %d", ev, addr, v)

			case p.router:
				p.reflect()
			}
		}
	}

	p.pull.Close()
	p.monitor.Close()
	if err := p.router.Close(); nil != err {
		log.Errorf("router close error: %s", err)
	}
	log.Info("stopped")
}

// return one message to the identity it came from
func (p *Peer) reflect() {
	data, err := p.router.RecvMessageBytes(0)
	if nil != err {
		p.log.Errorf("receive error: %s", err)
		return
	}
	if len(data) < 2 {
		p.log.Warnf("truncated message: %d frames", len(data))
		return
	}

	parts := make([]interface{}, len(data))
	for i, d := range data {
		parts[i] = d
	}
	_, err = p.router.SendMessage(parts...)
	if nil != err {
		p.log.Errorf("send error: %s", err)
		return
	}
	n := p.echoed.Increment()
	p.log.Debugf("echoed: %d  frames: %d", n, len(data)-1)
}
