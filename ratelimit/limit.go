// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttle operator driven socket churn
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/dealermonitor/fault"
)

// New - limiter allowing perSecond operations with the given burst
func New(perSecond float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Limit - wait for a single operation slot
func Limit(limiter *rate.Limiter) error {
	if nil == limiter {
		return nil
	}
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
