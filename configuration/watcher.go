// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/util"
	"github.com/bitmark-inc/logger"
)

const (
	watcherLoggerPrefix = "settings-watcher"
)

// Watcher - signal when the settings file is rewritten
//
// the directory is watched so that editors which replace the file are
// still seen
type Watcher struct {
	sync.Mutex

	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	done     chan struct{}
	started  bool
	closed   bool
}

// NewWatcher - create a watcher for an existing file
func NewWatcher(fileName string) (*Watcher, error) {
	log := logger.New(watcherLoggerPrefix)

	filePath, err := util.AbsoluteFile(fileName)
	if nil != err {
		log.Errorf("parse file: %s  error: %s", fileName, err)
		return nil, err
	}

	if !util.FileExists(filePath) {
		return nil, fault.ErrMissingSettingsFile
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Changes - receives one value per burst of writes
func (w *Watcher) Changes() <-chan struct{} {
	return w.change
}

// Start - begin watching in the background
func (w *Watcher) Start() error {
	w.Lock()
	defer w.Unlock()

	if w.started || w.closed {
		return fault.ErrAlreadyInitialised
	}

	err := w.watcher.Add(filepath.Dir(w.filePath))
	if nil != err {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}

	w.started = true
	go w.run()
	return nil
}

func (w *Watcher) run() {
	defer close(w.done)

	name := filepath.Base(w.filePath)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			w.log.Debugf("file event: %s", event)
			if isChange(event) {
				w.sendEvent()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

// a full channel already holds an unread change
func (w *Watcher) sendEvent() {
	select {
	case w.change <- struct{}{}:
		w.log.Info("settings changed")
	default:
		w.log.Debug("change pending, discard event")
	}
}

// Close - stop watching, safe to call more than once
func (w *Watcher) Close() error {
	w.Lock()
	defer w.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	err := w.watcher.Close()
	if w.started {
		<-w.done
	}
	return err
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
