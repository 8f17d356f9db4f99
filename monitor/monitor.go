// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/dealermonitor/background"
	"github.com/bitmark-inc/dealermonitor/counter"
	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/lifecycle"
	"github.com/bitmark-inc/dealermonitor/util"
	"github.com/bitmark-inc/dealermonitor/zmqutil"
	"github.com/bitmark-inc/logger"
)

const (
	// DefaultPollInterval - used when Start is given zero
	DefaultPollInterval = 100 * time.Millisecond

	// maximum events read from one socket per poll
	drainLimit = 64
)

// State - monitor lifecycle
type State int

// the states
const (
	Idle State = iota
	Running
	Stopping
	Stopped
)

// String - name of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handler - called once per distinct event, inline on the monitor goroutine
//
// must not block; a returned error or panic is logged and ignored
type Handler func(event lifecycle.Event) error

// Target - the socket owner being observed
//
// Monitor publishes libzmq socket events, Notify connects the channel used
// for teardowns libzmq does not report; an empty channel undoes either
type Target interface {
	zmqutil.Monitorable
	Notify(channel string) error
}

// atomically incremented counters for log and channel names
var (
	monitorCounter counter.Counter
	channelCounter counter.Counter
)

// Monitor - structure to hold a lifecycle monitor
type Monitor struct {
	sync.Mutex // protects state, watch and handlers

	log      *logger.L
	name     string
	state    State
	watch    map[string]struct{}
	handlers map[lifecycle.Kind][]Handler

	// only used by the polling goroutine once started
	pollInterval time.Duration
	sequence     counter.Counter
	recent       *cache.Cache
	connected    map[string]bool
	events       *zmq.Socket
	notices      *zmq.Socket
	stopPull     *zmq.Socket

	stopPush *zmq.Socket
	runner   *background.T
}

// New - create an idle monitor for a set of tcp:// addresses
func New(addresses ...string) (*Monitor, error) {

	if 0 == len(addresses) {
		return nil, fault.ErrMissingAddress
	}

	name := fmt.Sprintf("monitor@%d", monitorCounter.Increment())
	m := &Monitor{
		log:       logger.New(name),
		name:      name,
		state:     Idle,
		watch:     make(map[string]struct{}),
		handlers:  make(map[lifecycle.Kind][]Handler),
		recent:    cache.New(DefaultPollInterval, 10*DefaultPollInterval),
		connected: make(map[string]bool),
	}

	for _, address := range addresses {
		err := m.Watch(address)
		if nil != err {
			return nil, err
		}
	}
	return m, nil
}

// Watch - add an address whose events will be emitted
func (m *Monitor) Watch(address string) error {
	conn, err := util.ParseEndpoint(address)
	if nil != err {
		return err
	}

	m.Lock()
	m.watch[conn.Endpoint()] = struct{}{}
	m.Unlock()

	m.log.Infof("watch: %q", conn.Endpoint())
	return nil
}

// OnEvent - subscribe a handler to one kind of event
//
// handlers of a kind run in registration order
func (m *Monitor) OnEvent(kind lifecycle.Kind, handler Handler) {
	m.Lock()
	m.handlers[kind] = append(m.handlers[kind], handler)
	m.Unlock()
}

// State - current state
func (m *Monitor) State() State {
	m.Lock()
	defer m.Unlock()
	return m.state
}

// Start - begin observing target on a background goroutine
//
// only valid once, from Idle
func (m *Monitor) Start(target Target, pollInterval time.Duration) error {

	m.Lock()
	defer m.Unlock()

	if Idle != m.state {
		return fault.ErrMonitorNotIdle
	}
	if pollInterval < 0 {
		return fault.ErrInvalidInterval
	}
	if 0 == pollInterval {
		pollInterval = DefaultPollInterval
	}

	noticeChannel := channelCounter.Inproc("monitor-notice")
	notices, err := zmqutil.NewInproc(zmq.PULL, noticeChannel, true)
	if nil != err {
		return err
	}
	err = target.Notify(noticeChannel)
	if nil != err {
		notices.Close()
		return err
	}

	events, err := zmqutil.NewMonitor(target, channelCounter.Inproc("monitor-events"), lifecycle.ZMQMask)
	if nil != err {
		m.detach(target)
		notices.Close()
		return err
	}

	push, pull, err := zmqutil.NewSignalPair(channelCounter.Inproc("monitor-stop"))
	if nil != err {
		target.Monitor("", 0)
		m.detach(target)
		events.Close()
		notices.Close()
		return err
	}

	m.pollInterval = pollInterval
	m.recent = cache.New(pollInterval, 10*pollInterval)
	m.events = events
	m.notices = notices
	m.stopPull = pull
	m.stopPush = push

	m.state = Running
	m.runner = background.Start(background.Processes{m}, nil)

	m.log.Infof("started  poll interval: %s", pollInterval)
	return nil
}

// drop the notice channel from a target after a failed start
func (m *Monitor) detach(target Target) {
	err := target.Notify("")
	if nil != err {
		m.log.Warnf("detach notice channel error: %s", err)
	}
}

// Stop - cooperative cancellation, returns after the goroutine has exited
//
// no handler runs after Stop returns; safe to call more than once
func (m *Monitor) Stop() {

	m.Lock()
	previous := m.state
	switch previous {
	case Idle:
		m.state = Stopped
		m.Unlock()
		return
	case Running:
		m.state = Stopping
	default:
	}
	runner := m.runner
	m.Unlock()

	if Running == previous {
		_, err := m.stopPush.SendMessage("stop")
		if nil != err {
			m.log.Errorf("stop signal error: %s", err)
		}
	}

	// join
	runner.Stop()

	if Running == previous {
		m.stopPush.Close()
		m.Lock()
		m.state = Stopped
		m.Unlock()
		m.log.Info("stopped")
	}
}

// Run - background polling loop
func (m *Monitor) Run(args interface{}, shutdown <-chan struct{}) {

	log := m.log
	log.Info("starting…")

	poller := zmqutil.NewPoller()
	poller.Add(m.events, zmq.POLLIN)
	poller.Add(m.notices, zmq.POLLIN)
	poller.Add(m.stopPull, zmq.POLLIN)
	log.Debugf("polling: %d sockets", poller.Len())

loop:
	for {
		// poll boundary
		select {
		case <-shutdown:
			break loop
		default:
		}

		polled, err := poller.Poll(m.pollInterval)
		if nil != err {
			log.Errorf("poll error: %s", err)
			continue loop
		}

		// a notice is written before any reconnect that follows it,
		// so notices go ahead of transport events from the same poll
		var notices, events []notification
		for _, p := range polled {
			switch p.Socket {
			case m.stopPull:
				break loop
			case m.events:
				events = m.drainEvents()
			case m.notices:
				notices = m.drainNotices()
			}
		}

		for _, n := range append(notices, events...) {
			m.process(n)
		}
	}

	m.stopPull.Close()
	m.notices.Close()
	m.events.Close()
	log.Info("finished")
}

// raw notification before filtering
type notification struct {
	kind    lifecycle.Kind
	address string
	value   int
}

func (m *Monitor) drainEvents() []notification {
	batch := []notification{}
	for i := 0; i < drainLimit; i += 1 {
		ev, address, value, err := m.events.RecvEvent(zmq.DONTWAIT)
		if nil != err {
			break
		}
		kind, ok := lifecycle.FromZMQ(ev)
		if !ok {
			m.log.Debugf("ignore event: %s  address: %q", ev, address)
			continue
		}
		batch = append(batch, notification{kind: kind, address: address, value: value})
	}
	return batch
}

func (m *Monitor) drainNotices() []notification {
	batch := []notification{}
	for i := 0; i < drainLimit; i += 1 {
		data, err := m.notices.RecvMessage(zmq.DONTWAIT)
		if nil != err {
			break
		}
		if 2 != len(data) {
			m.log.Warnf("malformed notice: %q", data)
			continue
		}
		kind, ok := lifecycle.ParseKind(data[0])
		if !ok {
			m.log.Warnf("unknown notice kind: %q", data[0])
			continue
		}
		batch = append(batch, notification{kind: kind, address: data[1]})
	}
	return batch
}

// filter, deduplicate, stamp and dispatch one notification
func (m *Monitor) process(n notification) {

	m.Lock()
	_, watched := m.watch[n.address]
	m.Unlock()

	if !watched {
		m.log.Debugf("unwatched address: %q  kind: %s", n.address, n.kind)
		return
	}
	if !m.accept(n.kind, n.address) {
		m.log.Debugf("duplicate: %s  address: %q", n.kind, n.address)
		return
	}

	event := lifecycle.Event{
		Kind:      n.kind,
		Address:   n.address,
		Timestamp: time.Now(),
		Sequence:  m.sequence.Increment(),
		Value:     n.value,
	}
	m.log.Infof("event: %s", event)
	m.dispatch(event)
}

// connected and disconnected are emitted only on a change of state;
// other kinds are suppressed when repeated within one poll interval
func (m *Monitor) accept(kind lifecycle.Kind, address string) bool {
	switch kind {
	case lifecycle.Connected:
		if m.connected[address] {
			return false
		}
		m.connected[address] = true
		return true

	case lifecycle.Disconnected:
		if !m.connected[address] {
			return false
		}
		m.connected[address] = false
		return true

	default:
		key := kind.String() + " " + address
		return nil == m.recent.Add(key, struct{}{}, cache.DefaultExpiration)
	}
}

func (m *Monitor) dispatch(event lifecycle.Event) {
	m.Lock()
	handlers := append([]Handler(nil), m.handlers[event.Kind]...)
	m.Unlock()

	for _, h := range handlers {
		m.invoke(h, event)
	}
}

func (m *Monitor) invoke(h Handler, event lifecycle.Event) {
	defer func() {
		if fault.Recovered(m.name, recover()) {
			m.log.Errorf("handler for: %s panicked", event)
		}
	}()

	err := h(event)
	if nil != err {
		m.log.Errorf("handler for: %s  error: %s", event, err)
	}
}
