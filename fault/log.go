// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel
var log *logger.L

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data
func Finalise() {
	if nil != log {
		log.Flush()
	}
	log = nil
}

// Criticalf - log a formatted string prefixed with the caller's location
func Criticalf(format string, arguments ...interface{}) {
	f, a := withCaller(2, format, arguments)
	internalCriticalf(f, a...)
}

// Recovered - log a recovered panic value from a named goroutine
//
// returns true if there was something to log
func Recovered(name string, r interface{}) bool {
	if nil == r {
		return false
	}
	internalCriticalf("%s: recovered from: %v", name, r)
	return true
}

func withCaller(skip int, format string, arguments []interface{}) (string, []interface{}) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return format, arguments
	}
	a := make([]interface{}, 2, 2+len(arguments))
	a[0] = file
	a[1] = line
	return "(%q:%d) " + format, append(a, arguments...)
}

// internal routine to handle uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush() // make sure log file is saved
}
