// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/orbs-network/govnr"
	"testing"
	"time"
)

// WithContext runs f with a context traced under the test's name and cancelled when f returns
func WithContext(tb testing.TB, f func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(trace.NewContext(context.Background(), tb.Name()))
	defer cancel()
	f(ctx)
}

// WithContextAndShutdown also waits for the supervised goroutines behind waiter to exit after cancellation
func WithContextAndShutdown(tb testing.TB, waiter govnr.ShutdownWaiter, f func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(trace.NewContext(context.Background(), tb.Name()))
	defer shutdown(waiter)
	defer cancel()
	f(ctx)
}

func shutdown(waiter govnr.ShutdownWaiter) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	waiter.WaitUntilShutdown(ctx)
}

func WithContextWithTimeout(tb testing.TB, d time.Duration, f func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(trace.NewContext(context.Background(), tb.Name()), d)
	defer cancel()
	f(ctx)
}
