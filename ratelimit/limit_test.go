// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/dealermonitor/fault"
	"github.com/bitmark-inc/dealermonitor/ratelimit"
)

func TestLimitWithinBurst(t *testing.T) {
	limiter := ratelimit.New(1, 3)

	start := time.Now()
	for i := 0; i < 3; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "burst slot %d", i)
	}
	assert.True(t, time.Since(start) < 50*time.Millisecond, "burst should not wait")
}

func TestLimitDelays(t *testing.T) {
	limiter := ratelimit.New(20, 1)

	assert.Nil(t, ratelimit.Limit(limiter), "first")
	start := time.Now()
	assert.Nil(t, ratelimit.Limit(limiter), "second")
	assert.True(t, time.Since(start) >= 30*time.Millisecond, "second call should wait for a token")
}

func TestLimitRefused(t *testing.T) {
	limiter := ratelimit.New(0, 0)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Limit(limiter), "zero burst")
}

func TestLimitNil(t *testing.T) {
	assert.Nil(t, ratelimit.Limit(nil), "nil limiter")
}
