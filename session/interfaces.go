// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_session.go -package=mocks

import (
	"time"

	"github.com/bitmark-inc/dealermonitor/endpoint"
	"github.com/bitmark-inc/dealermonitor/lifecycle"
	"github.com/bitmark-inc/dealermonitor/monitor"
)

// Endpoint - the connection driven by the menu
type Endpoint interface {
	Connect(address string) error
	Disconnect(address string) error
	Send(frames ...[]byte) error
	Receive(timeout time.Duration) ([][]byte, error)
	Observe(event lifecycle.Event)
	Phase() endpoint.Phase
}

// Monitor - the lifecycle monitor observing the endpoint
type Monitor interface {
	OnEvent(kind lifecycle.Kind, handler monitor.Handler)
	Watch(address string) error
	Stop()
}
