// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCaller(t *testing.T) {
	format, arguments := withCaller(1, "step: %s", []interface{}{"connect"})

	assert.Equal(t, "(%q:%d) step: %s", format, "format")
	if assert.Equal(t, 3, len(arguments), "arguments") {
		file, ok := arguments[0].(string)
		assert.True(t, ok && strings.HasSuffix(file, "log_test.go"), "caller file: %v", arguments[0])
		assert.Equal(t, "connect", arguments[2], "original argument")
	}
}

// without Initialise the message goes to stdout
func TestUninitialisedLogging(t *testing.T) {
	Finalise()

	assert.NotPanics(t, func() { Criticalf("setup error: %s", "none") }, "critical")
	assert.False(t, Recovered("test", nil), "nothing recovered")
	assert.True(t, Recovered("test", "boom"), "panic value")
}
