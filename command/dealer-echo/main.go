// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/dealermonitor/echo"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const (
	defaultListen = "tcp://127.0.0.1:49152"
	logDirectory  = "log"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "listen", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'l'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--version] [--listen=tcp://IP:PORT]", program)
	}

	listen := defaultListen
	if n := len(options["listen"]); n > 0 {
		listen = options["listen"][n-1]
	}

	level := "info"
	if len(options["verbose"]) > 0 {
		level = "debug"
	}

	_ = os.MkdirAll(logDirectory, 0700)
	err = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "dealer-echo.log",
		Size:      1024 * 1024,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
	if nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Infof("version: %s", version)

	peer, err := echo.New(listen)
	if nil != err {
		exitwithstatus.Message("%s: cannot listen on: %q  error: %s", program, listen, err)
	}
	peer.Start()
	defer peer.Stop()

	log.Infof("listening on: %s", peer.Address())

	// wait for CTRL-C SIGINT
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v  echoed: %d", sig, peer.Echoed())
}
