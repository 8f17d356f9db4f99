// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/dealermonitor/fault"
)

// TCPPrefix - scheme used for all remote endpoints
const TCPPrefix = "tcp://"

// Connection - a validated IP and port
type Connection struct {
	ip   net.IP
	port int
}

// NewConnection - parse an IP:port (IPv6 as [addr]:port) into a connection
func NewConnection(hostPort string) (*Connection, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return nil, fault.ErrInvalidIPAddress
	}
	return NewConnectionFromParts(host, port)
}

// NewConnectionFromParts - build a connection from separate host and port strings
func NewConnectionFromParts(host string, port string) (*Connection, error) {

	IP := net.ParseIP(strings.Trim(host, " []"))
	if nil == IP {
		return nil, fault.ErrInvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err {
		return nil, fault.ErrInvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return nil, fault.ErrInvalidPortNumber
	}

	return &Connection{
		ip:   IP,
		port: numericPort,
	}, nil
}

// ParseEndpoint - accept either tcp://IP:port or plain IP:port
func ParseEndpoint(endpoint string) (*Connection, error) {
	return NewConnection(strings.TrimPrefix(strings.TrimSpace(endpoint), TCPPrefix))
}

// CanonicalIPandPort - make the IP:Port canonical, and flag IPv6
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
func (conn *Connection) CanonicalIPandPort(prefix string) (string, bool) {
	port := strconv.Itoa(conn.port)
	if nil != conn.ip.To4() {
		return prefix + conn.ip.String() + ":" + port, false
	}
	return prefix + "[" + conn.ip.String() + "]:" + port, true
}

// Endpoint - canonical tcp:// form
func (conn *Connection) Endpoint() string {
	s, _ := conn.CanonicalIPandPort(TCPPrefix)
	return s
}

// IsV6 - true for an IPv6 address
func (conn *Connection) IsV6() bool {
	return nil == conn.ip.To4()
}

// String - canonical form without prefix
func (conn *Connection) String() string {
	s, _ := conn.CanonicalIPandPort("")
	return s
}
