// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the dealer monitor settings file
//
// a ".lua" file is executed and must return a table; most of base Lua
// is available such as getenv to extract environment supplied items.
// a ".json" file has the same keys as a flat object.
//
// the Watcher reports changes so settings can be re-read while running
package configuration
