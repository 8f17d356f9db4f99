// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (log directory is relative to the configuration file)
const (
	defaultIPAddress         = "127.0.0.1"
	defaultPort              = 49152
	defaultKeepaliveInterval = 1000
	defaultPollInterval      = 100
	defaultReceiveTimeout    = 5000

	defaultLogDirectory = "log"
	defaultLogFile      = "dealer-monitor.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

func (m LoglevelMap) copy() map[string]string {
	levels := make(map[string]string, len(m))
	for tag, level := range m {
		levels[tag] = level
	}
	return levels
}

// Settings - the complete settings file
//
// key names match the appsettings.json layout
type Settings struct {
	TcpKeepalive             bool                 `gluamapper:"TcpKeepalive" json:"TcpKeepalive"`
	TcpKeepaliveIntervalInMs int                  `gluamapper:"TcpKeepaliveIntervalInMs" json:"TcpKeepaliveIntervalInMs"`
	IpAddress                string               `gluamapper:"IpAddress" json:"IpAddress"`
	Port                     int                  `gluamapper:"Port" json:"Port"`
	PollIntervalInMs         int                  `gluamapper:"PollIntervalInMs" json:"PollIntervalInMs"`
	ReceiveTimeoutInMs       int                  `gluamapper:"ReceiveTimeoutInMs" json:"ReceiveTimeoutInMs"`
	QuitOnInvalid            bool                 `gluamapper:"QuitOnInvalid" json:"QuitOnInvalid"`
	Heartbeat                bool                 `gluamapper:"Heartbeat" json:"Heartbeat"`
	Logging                  logger.Configuration `gluamapper:"Logging" json:"Logging"`
}

// Default - settings used for any key a file omits
func Default() *Settings {
	return &Settings{
		TcpKeepalive:             true,
		TcpKeepaliveIntervalInMs: defaultKeepaliveInterval,
		IpAddress:                defaultIPAddress,
		Port:                     defaultPort,
		PollIntervalInMs:         defaultPollInterval,
		ReceiveTimeoutInMs:       defaultReceiveTimeout,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels.copy(),
		},
	}
}

// Load - read a settings file selected by its extension
func Load(fileName string) (*Settings, error) {

	fileName, err := util.AbsoluteFile(fileName)
	if nil != err {
		return nil, err
	}

	settings := Default()

	switch filepath.Ext(fileName) {
	case ".lua":
		err = ParseConfigurationFile(fileName, settings)
	case ".json":
		err = parseJSONFile(fileName, settings)
	default:
		err = fault.ErrUnsupportedConfigFormat
	}
	if nil != err {
		return nil, err
	}

	err = settings.validate()
	if nil != err {
		return nil, err
	}

	if nil == settings.Logging.Levels {
		settings.Logging.Levels = defaultLogLevels.copy()
	}

	// log files are relative to the settings file
	settings.Logging.Directory = util.RelativeTo(fileName, settings.Logging.Directory)

	return settings, nil
}

func (s *Settings) validate() error {
	if _, err := s.connection(); nil != err {
		return err
	}
	if s.TcpKeepaliveIntervalInMs < 0 || s.PollIntervalInMs < 0 || s.ReceiveTimeoutInMs < 0 {
		return fault.ErrInvalidInterval
	}
	return nil
}

func (s *Settings) connection() (*util.Connection, error) {
	return util.NewConnectionFromParts(s.IpAddress, strconv.Itoa(s.Port))
}

// Address - the remote endpoint in tcp:// form
func (s *Settings) Address() string {
	conn, err := s.connection()
	if nil != err {
		return ""
	}
	return conn.Endpoint()
}

// KeepaliveInterval - TCP keepalive interval
func (s *Settings) KeepaliveInterval() time.Duration {
	return time.Duration(s.TcpKeepaliveIntervalInMs) * time.Millisecond
}

// PollInterval - monitor poll interval
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalInMs) * time.Millisecond
}

// ReceiveTimeout - session receive timeout, zero waits forever
func (s *Settings) ReceiveTimeout() time.Duration {
	return time.Duration(s.ReceiveTimeoutInMs) * time.Millisecond
}
