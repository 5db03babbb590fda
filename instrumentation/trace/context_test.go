// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package trace

import (
	"context"
	"github.com/stretchr/testify/require"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEntryPoint_DecoratesContext(t *testing.T) {
	ctx := NewContext(context.Background(), "foo")

	ep, ok := FromContext(ctx)

	require.True(t, ok)
	require.Equal(t, "foo", ep.Name())
	require.NotEmpty(t, ep.RequestId())
}

func TestNestedContextsRetainValue(t *testing.T) {
	ctx := NewContext(context.Background(), "foo")
	childCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ep, ok := FromContext(childCtx)

	require.True(t, ok)
	require.Equal(t, "foo", ep.Name())
}

func TestFromRequest_ReusesIncomingRequestId(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIdHeader, "abc-123")

	ep, ok := FromContext(FromRequest(req, "http"))

	require.True(t, ok)
	require.Equal(t, "abc-123", ep.RequestId())
}

func TestFromRequest_GeneratesRequestIdWhenMissing(t *testing.T) {
	first, _ := FromContext(FromRequest(httptest.NewRequest("GET", "/", nil), "http"))
	second, _ := FromContext(FromRequest(httptest.NewRequest("GET", "/", nil), "http"))

	require.NotEmpty(t, first.RequestId())
	require.NotEqual(t, first.RequestId(), second.RequestId(), "request ids must be unique")
}

func TestLogFieldFrom(t *testing.T) {
	withoutTrace := LogFieldFrom(context.Background())
	require.Equal(t, "NO-CONTEXT", withoutTrace.StringVal)

	withTrace := LogFieldFrom(NewContext(context.Background(), "join"))
	require.True(t, strings.HasPrefix(withTrace.StringVal, "join/"))
}

func TestWithTraceOf_OutlivesCancelledRequest(t *testing.T) {
	requestCtx, cancel := context.WithCancel(NewContext(context.Background(), "join"))
	cancel()

	detached := WithTraceOf(context.Background(), requestCtx)
	require.NoError(t, detached.Err())

	ep, ok := FromContext(detached)
	require.True(t, ok)
	require.Equal(t, "join", ep.Name())
}
