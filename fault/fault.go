// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type TransportError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrConnectFailed           = TransportError("connect failed")
	ErrEmptyMessage            = InvalidError("empty message")
	ErrInvalidCommand          = InvalidError("invalid command")
	ErrInvalidInterval         = InvalidError("invalid interval")
	ErrInvalidIPAddress        = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidPortNumber       = InvalidError("invalid port number")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrMissingAddress          = NotFoundError("missing address")
	ErrMissingSettingsFile     = NotFoundError("missing settings file")
	ErrMonitorNotIdle          = ProcessError("monitor is not idle")
	ErrNotConnected            = ProcessError("not connected")
	ErrRateLimiting            = ProcessError("rate limiting")
	ErrSendFailed              = TransportError("send failed")
	ErrTimedOut                = TransportError("timed out")
	ErrUnsupportedConfigFormat = InvalidError("unsupported configuration file format")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e TransportError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
func IsErrTransport(e error) bool { _, ok := e.(TransportError); return ok }
