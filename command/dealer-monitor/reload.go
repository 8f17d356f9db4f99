// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/dealermonitor/configuration"
	"github.com/bitmark-inc/dealermonitor/session"
	"github.com/bitmark-inc/logger"
)

// re-read the settings file whenever it changes
//
// only the remote address can change; socket options are fixed at startup
type reloader struct {
	log      *logger.L
	fileName string
	watcher  *configuration.Watcher
	session  *session.Session
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	r.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-r.watcher.Changes():
			r.reload()
		}
	}
	r.log.Info("stopped")
}

func (r *reloader) reload() {
	settings, err := configuration.Load(r.fileName)
	if nil != err {
		r.log.Errorf("reload: %q  error: %s", r.fileName, err)
		return
	}

	address := settings.Address()
	if address == r.session.Address() {
		r.log.Debugf("reload: address unchanged: %q", address)
		return
	}

	err = r.session.SetAddress(address)
	if nil != err {
		r.log.Errorf("reload: address: %q  error: %s", address, err)
		return
	}
	r.log.Infof("reload: address: %q", address)
}
