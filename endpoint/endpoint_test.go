// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package endpoint_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/dealermonitor/echo"
	"github.com/bitmark-inc/dealermonitor/endpoint"
	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/lifecycle"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
	unusedAddress  = "tcp://127.0.0.1:49152"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func newTestEndpoint(t *testing.T) *endpoint.Endpoint {
	e, err := endpoint.New(endpoint.Config{
		KeepaliveEnabled:  true,
		KeepaliveInterval: 1500 * time.Millisecond,
	})
	if nil != err {
		t.Fatalf("new endpoint error: %s", err)
	}
	return e
}

func connected(address string) lifecycle.Event {
	return lifecycle.Event{Kind: lifecycle.Connected, Address: address, Timestamp: time.Now()}
}

func TestNewIsDisconnected(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Equal(t, endpoint.Disconnected, e.Phase(), "initial phase")
	assert.Equal(t, "", e.Address(), "initial address")
}

func TestNewInvalidInterval(t *testing.T) {
	_, err := endpoint.New(endpoint.Config{
		KeepaliveEnabled:  true,
		KeepaliveInterval: -time.Second,
	})
	assert.Equal(t, fault.ErrInvalidInterval, err, "negative interval")
}

func TestNewWithHeartbeat(t *testing.T) {
	e, err := endpoint.New(endpoint.Config{
		KeepaliveEnabled:  true,
		KeepaliveInterval: 100 * time.Millisecond,
		Heartbeat:         true,
	})
	if assert.Nil(t, err, "heartbeat configuration") {
		e.Close()
	}
}

func TestSendReceiveNotConnected(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Equal(t, fault.ErrNotConnected, e.Send([]byte("hello")), "send while disconnected")

	_, err := e.Receive(10 * time.Millisecond)
	assert.Equal(t, fault.ErrNotConnected, err, "receive while disconnected")

	assert.Equal(t, fault.ErrEmptyMessage, e.Send(), "no frames")
}

func TestSendReceiveWhileConnecting(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Nil(t, e.Connect(unusedAddress), "connect")
	assert.Equal(t, endpoint.Connecting, e.Phase(), "connecting")
	assert.Equal(t, fault.ErrNotConnected, e.Send([]byte("hello")), "send while connecting")

	_, err := e.Receive(10 * time.Millisecond)
	assert.Equal(t, fault.ErrNotConnected, err, "receive while connecting")
}

func TestConnectInvalidAddress(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Equal(t, fault.ErrInvalidIPAddress, e.Connect("tcp://not-an-ip:1234"), "host name")
	assert.Equal(t, fault.ErrInvalidPortNumber, e.Connect("tcp://127.0.0.1:0"), "port zero")
	assert.Equal(t, endpoint.Disconnected, e.Phase(), "phase unchanged")
}

func TestConnectIsIdempotent(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Nil(t, e.Connect(unusedAddress), "first connect")
	assert.Equal(t, endpoint.Connecting, e.Phase(), "after first connect")

	assert.Nil(t, e.Connect(unusedAddress), "second connect")
	assert.Equal(t, endpoint.Connecting, e.Phase(), "after second connect")

	e.Observe(connected(unusedAddress))
	assert.Equal(t, endpoint.Connected, e.Phase(), "after transport connected")

	assert.Nil(t, e.Connect(unusedAddress), "connect while connected")
	assert.Equal(t, endpoint.Connected, e.Phase(), "still connected")
	assert.Equal(t, unusedAddress, e.Address(), "address")
}

func TestConnectReplacesAddress(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Nil(t, e.Connect(unusedAddress), "first connect")
	e.Observe(connected(unusedAddress))

	other := "tcp://127.0.0.1:49153"
	assert.Nil(t, e.Connect(other), "second address")
	assert.Equal(t, endpoint.Connecting, e.Phase(), "new address starts connecting")
	assert.Equal(t, other, e.Address(), "new address")
}

func TestDisconnect(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Nil(t, e.Disconnect(unusedAddress), "disconnect while disconnected")
	assert.Equal(t, endpoint.Disconnected, e.Phase(), "no-op")

	assert.Nil(t, e.Connect(unusedAddress), "connect")
	assert.Nil(t, e.Disconnect("tcp://127.0.0.1:49153"), "disconnect from other address")
	assert.Equal(t, endpoint.Connecting, e.Phase(), "other address ignored")

	assert.Nil(t, e.Disconnect(unusedAddress), "disconnect")
	assert.Equal(t, endpoint.Disconnected, e.Phase(), "disconnected")
	assert.Equal(t, "", e.Address(), "address cleared")
}

// phase after a sequence equals the phase implied by the last operation
func TestPhaseSequences(t *testing.T) {
	const (
		c = 'c' // connect
		d = 'd' // disconnect
		o = 'o' // transport reports connected
	)

	testData := []struct {
		ops      string
		expected endpoint.Phase
	}{
		{"c", endpoint.Connecting},
		{"co", endpoint.Connected},
		{"cc", endpoint.Connecting},
		{"coc", endpoint.Connected},
		{"cd", endpoint.Disconnected},
		{"cod", endpoint.Disconnected},
		{"dd", endpoint.Disconnected},
		{"cdc", endpoint.Connecting},
		{"codco", endpoint.Connected},
		{"d", endpoint.Disconnected},
		{"o", endpoint.Disconnected},
	}

	for i, item := range testData {
		e := newTestEndpoint(t)
		for _, op := range item.ops {
			switch op {
			case c:
				assert.Nil(t, e.Connect(unusedAddress), "%d: connect", i)
			case d:
				assert.Nil(t, e.Disconnect(unusedAddress), "%d: disconnect", i)
			case o:
				e.Observe(connected(unusedAddress))
			}
		}
		assert.Equal(t, item.expected, e.Phase(), "%d: %q", i, item.ops)
		e.Close()
	}
}

func TestObserve(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	assert.Nil(t, e.Connect(unusedAddress), "connect")

	e.Observe(connected("tcp://127.0.0.1:49153"))
	assert.Equal(t, endpoint.Connecting, e.Phase(), "other address ignored")

	e.Observe(lifecycle.Event{Kind: lifecycle.ConnectRetried, Address: unusedAddress})
	assert.Equal(t, endpoint.Connecting, e.Phase(), "retry keeps connecting")

	e.Observe(connected(unusedAddress))
	assert.Equal(t, endpoint.Connected, e.Phase(), "connected")

	e.Observe(lifecycle.Event{Kind: lifecycle.Closed, Address: unusedAddress})
	assert.Equal(t, endpoint.Connected, e.Phase(), "closed does not change phase")

	e.Observe(lifecycle.Event{Kind: lifecycle.Disconnected, Address: unusedAddress})
	assert.Equal(t, endpoint.Connecting, e.Phase(), "peer loss returns to connecting")
}

func TestDisconnectNotice(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	const channel = "inproc://endpoint-test-notice"
	pull, err := zmq.NewSocket(zmq.PULL)
	if !assert.Nil(t, err, "pull") {
		return
	}
	defer pull.Close()
	pull.SetLinger(0)
	pull.SetRcvtimeo(time.Second)
	assert.Nil(t, pull.Bind(channel), "bind")

	assert.Nil(t, e.Notify(channel), "notify")
	assert.Nil(t, e.Connect(unusedAddress), "connect")
	assert.Nil(t, e.Disconnect(""), "disconnect current")

	data, err := pull.RecvMessage(0)
	assert.Nil(t, err, "receive notice")
	assert.Equal(t, []string{"Disconnected", unusedAddress}, data, "notice")
}

func connectToEcho(t *testing.T) (*endpoint.Endpoint, *echo.Peer) {
	peer, err := echo.New("tcp://127.0.0.1:*")
	if nil != err {
		t.Fatalf("echo peer error: %s", err)
	}
	peer.Start()

	e := newTestEndpoint(t)
	err = e.Connect(peer.Address())
	if nil != err {
		t.Fatalf("connect error: %s", err)
	}
	// normally reported by the monitor
	e.Observe(connected(peer.Address()))
	return e, peer
}

func TestRoundTrip(t *testing.T) {
	e, peer := connectToEcho(t)
	defer peer.Stop()
	defer e.Close()

	testData := [][]byte{
		[]byte(""),
		[]byte("hello"),
		bytes.Repeat([]byte{0x5a, 0x00, 0xa5}, 64*1024/3+1)[:64*1024],
	}

	for i, payload := range testData {
		err := e.Send(payload)
		if !assert.Nil(t, err, "%d: send", i) {
			continue
		}
		data, err := e.Receive(2 * time.Second)
		if !assert.Nil(t, err, "%d: receive", i) {
			continue
		}
		if assert.Equal(t, 1, len(data), "%d: frame count", i) {
			assert.True(t, bytes.Equal(payload, data[0]), "%d: payload of %d bytes differs", i, len(payload))
		}
	}
}

func TestMultiFrame(t *testing.T) {
	e, peer := connectToEcho(t)
	defer peer.Stop()
	defer e.Close()

	assert.Nil(t, e.Send([]byte("a"), []byte(""), []byte("c")), "send")
	data, err := e.Receive(2 * time.Second)
	assert.Nil(t, err, "receive")
	assert.Equal(t, [][]byte{[]byte("a"), []byte(""), []byte("c")}, data, "frames")
}

func TestReceiveTimeout(t *testing.T) {
	e, peer := connectToEcho(t)
	defer peer.Stop()
	defer e.Close()

	start := time.Now()
	_, err := e.Receive(50 * time.Millisecond)
	elapsed := time.Since(start)

	assert.Equal(t, fault.ErrTimedOut, err, "idle receive")
	assert.True(t, elapsed >= 45*time.Millisecond, "returned early: %s", elapsed)
	assert.True(t, elapsed < 150*time.Millisecond, "returned late: %s", elapsed)
}

func TestNotifyDropped(t *testing.T) {
	e := newTestEndpoint(t)
	defer e.Close()

	const channel = "inproc://endpoint-test-dropped-notice"
	pull, err := zmq.NewSocket(zmq.PULL)
	if !assert.Nil(t, err, "pull") {
		return
	}
	defer pull.Close()
	pull.SetLinger(0)
	pull.SetRcvtimeo(100 * time.Millisecond)
	assert.Nil(t, pull.Bind(channel), "bind")

	assert.Nil(t, e.Notify(channel), "notify")
	assert.Nil(t, e.Notify(""), "drop notice channel")

	assert.Nil(t, e.Connect(unusedAddress), "connect")
	assert.Nil(t, e.Disconnect(""), "disconnect")

	_, err = pull.RecvMessage(0)
	assert.NotNil(t, err, "no notice after the channel was dropped")
}
