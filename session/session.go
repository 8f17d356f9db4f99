// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/dealermonitor/endpoint"
	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/lifecycle"
	"github.com/bitmark-inc/logger"
)

const (
	menuHeader = "Select an option:\n" +
		"\n" +
		"1: Connect\n" +
		"2: Disconnect\n" +
		"3: Send a message\n" +
		"4: Wait for a message\n"
	quitOption    = "5: Quit\n"
	anyOtherQuits = "Any other option to quit\n"

	selectionPrompt = "Enter your selection: "
	messagePrompt   = "Type the message you want to send: "
)

// Menu - the option list shown before each selection
//
// only when invalid input quits does the menu say so
func Menu(quitOnInvalid bool) string {
	if quitOnInvalid {
		return menuHeader + anyOtherQuits + "\n"
	}
	return menuHeader + quitOption + "\n"
}

// Command - one menu selection
type Command int

// the commands
const (
	Invalid Command = iota
	Connect
	Disconnect
	Send
	Receive
	Quit
)

// ParseCommand - decode one line of input
func ParseCommand(line string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "1":
		return Connect, nil
	case "2":
		return Disconnect, nil
	case "3":
		return Send, nil
	case "4":
		return Receive, nil
	case "5", "q", "quit":
		return Quit, nil
	default:
		return Invalid, fault.ErrInvalidCommand
	}
}

// Config - session options
type Config struct {
	Address        string        // tcp://host:port used by Connect
	ReceiveTimeout time.Duration // zero waits forever
	QuitOnInvalid  bool          // finish on unrecognised input
}

// Session - console state
type Session struct {
	sync.Mutex // protects address

	log      *logger.L
	config   Config
	menu     string
	address  string
	endpoint Endpoint
	monitor  Monitor
	in       *bufio.Scanner
	out      *display
}

// display - serialises writes from the console and monitor goroutines
type display struct {
	sync.Mutex
	w io.Writer
}

func (d *display) print(text string) {
	d.Lock()
	io.WriteString(d.w, text)
	d.Unlock()
}

func (d *display) printf(format string, args ...interface{}) {
	d.Lock()
	fmt.Fprintf(d.w, format, args...)
	d.Unlock()
}

// New - create a session and subscribe to monitor events
func New(config Config, e Endpoint, m Monitor, in io.Reader, out io.Writer) *Session {
	s := &Session{
		log:      logger.New("session"),
		config:   config,
		menu:     Menu(config.QuitOnInvalid),
		address:  config.Address,
		endpoint: e,
		monitor:  m,
		in:       bufio.NewScanner(in),
		out:      &display{w: out},
	}

	for _, kind := range lifecycle.Kinds {
		m.OnEvent(kind, s.handle)
	}
	return s
}

// monitor callback, runs on the monitor goroutine
//
// every event advances the endpoint phase; only connection changes are
// shown since retries repeat on each reconnect attempt
func (s *Session) handle(event lifecycle.Event) error {
	s.endpoint.Observe(event)

	switch event.Kind {
	case lifecycle.Connected:
		s.out.printf("Monitor saw a Connect event\n")
	case lifecycle.Disconnected:
		s.out.printf("Monitor saw a Disconnected event\n")
	default:
		s.log.Debugf("event: %s", event)
	}
	return nil
}

// SetAddress - change the address used by the next connect
//
// a connection already in progress is kept until it is disconnected
func (s *Session) SetAddress(address string) error {
	err := s.monitor.Watch(address)
	if nil != err {
		return err
	}

	s.Lock()
	previous := s.address
	s.address = address
	s.Unlock()

	if endpoint.Disconnected != s.endpoint.Phase() {
		s.log.Infof("address: %q  replaces: %q  on next connect", address, previous)
	} else {
		s.log.Infof("address: %q  replaces: %q", address, previous)
	}
	return nil
}

// Address - the address used by the next connect
func (s *Session) Address() string {
	s.Lock()
	defer s.Unlock()
	return s.address
}

// Run - the menu loop, returns when the operator quits
//
// the monitor is stopped before returning
func (s *Session) Run() error {
	defer s.monitor.Stop()

	for {
		s.out.print(s.menu)
		s.out.printf("%s\n", selectionPrompt)

		line, ok := s.readLine()
		if !ok {
			return s.finish("end of input")
		}
		s.out.printf("\n")

		command, err := ParseCommand(line)
		if nil != err {
			s.log.Warnf("input: %q  error: %s", line, err)
			if s.config.QuitOnInvalid {
				return s.finish("invalid selection")
			}
			s.report(err)
			continue
		}

		switch command {
		case Connect:
			s.connect()
		case Disconnect:
			s.disconnect()
		case Send:
			if !s.send() {
				return s.finish("end of input")
			}
		case Receive:
			s.receive()
		case Quit:
			return s.finish("quit")
		}
	}
}

func (s *Session) readLine() (string, bool) {
	if s.in.Scan() {
		return s.in.Text(), true
	}
	if err := s.in.Err(); nil != err {
		s.log.Errorf("read error: %s", err)
	}
	return "", false
}

func (s *Session) finish(reason string) error {
	s.log.Infof("finish: %s", reason)
	if err := s.in.Err(); nil != err {
		return err
	}
	return nil
}

func (s *Session) report(err error) {
	s.out.printf("Error: %s\n\n", err)
}

func (s *Session) connect() {
	address := s.Address()
	err := s.endpoint.Connect(address)
	if nil != err {
		s.report(err)
		return
	}
	s.out.printf("Dealer socket connected to %s\n\n", address)
}

func (s *Session) disconnect() {
	address := s.Address()
	err := s.endpoint.Disconnect("")
	if nil != err {
		s.report(err)
		return
	}
	s.out.printf("Dealer socket disconnected from %s\n\n", address)
}

// false when input ended at the prompt
func (s *Session) send() bool {
	s.out.printf("%s\n", messagePrompt)
	body, ok := s.readLine()
	if !ok {
		return false
	}

	err := s.endpoint.Send([]byte(body))
	s.out.printf("\n")
	if nil != err {
		s.report(err)
		return true
	}
	s.out.printf("Sent message to router socket\n\n")
	return true
}

func (s *Session) receive() {
	s.out.printf("Waiting on message from router socket\n")
	data, err := s.endpoint.Receive(s.config.ReceiveTimeout)
	if nil != err {
		s.report(err)
		return
	}

	first := ""
	found := "not found"
	if len(data) > 0 {
		found = "found"
		first = string(data[0])
	}
	s.out.printf("%s greeting frame\n", found)
	s.out.printf("Message: %s\n", first)
}
