// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// AbsoluteFile - clean absolute form of a settings file name
func AbsoluteFile(fileName string) (string, error) {
	return filepath.Abs(filepath.Clean(fileName))
}

// RelativeTo - resolve a path named inside a settings file
//
// relative paths are taken from the directory holding the settings
// file, not the working directory
func RelativeTo(settingsFile string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(filepath.Dir(settingsFile), path)
}

// FileExists - true only for an existing regular file
func FileExists(name string) bool {
	info, err := os.Stat(name)
	return nil == err && info.Mode().IsRegular()
}
