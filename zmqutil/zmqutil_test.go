// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/dealermonitor/zmqutil"
)

func TestKeepaliveSeconds(t *testing.T) {
	testData := []struct {
		interval time.Duration
		seconds  int
	}{
		{0, 1},
		{100 * time.Millisecond, 1},
		{time.Second, 1},
		{1001 * time.Millisecond, 2},
		{30 * time.Second, 30},
		{90500 * time.Millisecond, 91},
	}
	for i, d := range testData {
		assert.Equal(t, d.seconds, zmqutil.KeepaliveSeconds(d.interval), "%d: %s", i, d.interval)
	}
}

func TestSignalPair(t *testing.T) {
	push, pull, err := zmqutil.NewSignalPair("inproc://zmqutil-test-signal")
	if !assert.Nil(t, err, "signal pair") {
		return
	}
	defer push.Close()
	defer pull.Close()

	poller := zmqutil.NewPoller()
	poller.Add(pull, zmq.POLLIN)
	poller.Add(pull, zmq.POLLIN) // duplicate ignored
	assert.Equal(t, 1, poller.Len(), "duplicate add")

	polled, err := poller.Poll(10 * time.Millisecond)
	assert.Nil(t, err, "idle poll")
	assert.Equal(t, 0, len(polled), "nothing signalled yet")

	_, err = push.SendMessage("stop")
	assert.Nil(t, err, "send stop")

	polled, err = poller.Poll(time.Second)
	assert.Nil(t, err, "signalled poll")
	if assert.Equal(t, 1, len(polled), "signalled") {
		data, err := polled[0].Socket.RecvMessage(0)
		assert.Nil(t, err, "receive")
		assert.Equal(t, []string{"stop"}, data, "payload")
	}

	poller.Remove(pull)
	poller.Remove(pull) // duplicate ignored
	assert.Equal(t, 0, poller.Len(), "removed")
}

func TestMonitorReportsListening(t *testing.T) {
	router, err := zmq.NewSocket(zmq.ROUTER)
	if !assert.Nil(t, err, "router") {
		return
	}
	defer router.Close()
	router.SetLinger(0)

	mon, err := zmqutil.NewMonitor(router, "inproc://zmqutil-test-monitor", zmq.EVENT_LISTENING)
	if !assert.Nil(t, err, "monitor") {
		return
	}
	defer mon.Close()

	err = router.Bind("tcp://127.0.0.1:*")
	assert.Nil(t, err, "bind")

	err = mon.SetRcvtimeo(time.Second)
	assert.Nil(t, err, "receive timeout")

	ev, addr, _, err := mon.RecvEvent(0)
	assert.Nil(t, err, "receive event")
	assert.Equal(t, zmq.EVENT_LISTENING, ev, "event type")
	assert.Contains(t, addr, "tcp://127.0.0.1:", "event address")
}

// records monitor requests without a real socket
type recordingMonitorable struct {
	channels []string
}

func (r *recordingMonitorable) Monitor(channel string, events zmq.Event) error {
	r.channels = append(r.channels, channel)
	return nil
}

func TestMonitorDisabledOnChannelError(t *testing.T) {
	target := &recordingMonitorable{}

	mon, err := zmqutil.NewMonitor(target, "no-transport-channel", zmq.EVENT_ALL)
	assert.NotNil(t, err, "invalid channel")
	assert.Nil(t, mon, "no socket")
	assert.Equal(t, []string{"no-transport-channel", ""}, target.channels, "monitor enabled then disabled")
}

func TestSetReconnect(t *testing.T) {
	dealer, err := zmq.NewSocket(zmq.DEALER)
	if !assert.Nil(t, err, "dealer") {
		return
	}
	defer dealer.Close()

	assert.Nil(t, zmqutil.SetReconnect(dealer, 100*time.Millisecond, 5*time.Second), "set reconnect")

	ivl, err := dealer.GetReconnectIvl()
	assert.Nil(t, err, "get interval")
	assert.Equal(t, 100*time.Millisecond, ivl, "interval")

	max, err := dealer.GetReconnectIvlMax()
	assert.Nil(t, err, "get maximum")
	assert.Equal(t, 5*time.Second, max, "maximum")
}
