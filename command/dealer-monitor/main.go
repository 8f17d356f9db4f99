// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/dealermonitor/background"
	"github.com/bitmark-inc/dealermonitor/configuration"
	"github.com/bitmark-inc/dealermonitor/endpoint"
	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/monitor"
	"github.com/bitmark-inc/dealermonitor/session"
	"github.com/bitmark-inc/dealermonitor/util"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// used when no --config-file is given
const defaultConfigurationFile = "appsettings.json"

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] [--version] [--config-file=FILE]", program)
	}

	configurationFile := defaultConfigurationFile
	switch len(options["config-file"]) {
	case 0:
		if !util.FileExists(configurationFile) {
			exitwithstatus.Message("%s: no --config-file and no %s in the current directory", program, configurationFile)
		}
	case 1:
		configurationFile = options["config-file"][0]
	default:
		exitwithstatus.Message("%s: only one config-file option is allowed, %d were detected", program, len(options["config-file"]))
	}

	settings, err := configuration.Load(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(options["verbose"]) > 0 {
		settings.Logging.Console = true
		settings.Logging.Levels[logger.DefaultTag] = "debug"
	} else if len(options["quiet"]) > 0 {
		settings.Logging.Console = false
		settings.Logging.Levels[logger.DefaultTag] = "critical"
	}

	// start logging
	err = os.MkdirAll(settings.Logging.Directory, 0700)
	if nil != err {
		exitwithstatus.Message("%s: cannot create log directory: %q  error: %s", program, settings.Logging.Directory, err)
	}
	if err = logger.Initialise(settings.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("settings: %+v", settings)

	// ------------------
	// start of real main
	// ------------------

	dealer, err := endpoint.New(endpoint.Config{
		KeepaliveEnabled:  settings.TcpKeepalive,
		KeepaliveInterval: settings.KeepaliveInterval(),
		Heartbeat:         settings.Heartbeat,
	})
	if nil != err {
		fault.Criticalf("endpoint setup error: %s", err)
		exitwithstatus.Message("%s: transport initialisation failed: %s", program, err)
	}
	defer dealer.Close()

	lifecycleMonitor, err := monitor.New(settings.Address())
	if nil != err {
		fault.Criticalf("monitor setup error: %s", err)
		exitwithstatus.Message("%s: monitor setup failed: %s", program, err)
	}

	console := session.New(session.Config{
		Address:        settings.Address(),
		ReceiveTimeout: settings.ReceiveTimeout(),
		QuitOnInvalid:  settings.QuitOnInvalid,
	}, dealer, lifecycleMonitor, os.Stdin, os.Stdout)

	err = lifecycleMonitor.Start(dealer, settings.PollInterval())
	if nil != err {
		fault.Criticalf("monitor start error: %s", err)
		exitwithstatus.Message("%s: monitor start failed: %s", program, err)
	}
	defer lifecycleMonitor.Stop()

	// settings reload is optional
	watcher, err := configuration.NewWatcher(configurationFile)
	if nil == err {
		err = watcher.Start()
	}
	if nil != err {
		log.Warnf("settings will not be reloaded: %s", err)
	} else {
		defer watcher.Close()
		reload := &reloader{
			log:      logger.New("reload"),
			fileName: configurationFile,
			watcher:  watcher,
			session:  console,
		}
		processes := background.Start(background.Processes{reload}, nil)
		defer processes.Stop()
	}

	err = console.Run()
	if nil != err {
		log.Errorf("session error: %s", err)
	}
}
