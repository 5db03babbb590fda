// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package trace

import (
	"context"
	"github.com/google/uuid"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type entryPointKeyType string

const entryPointKey entryPointKeyType = "ep"
const RequestId = "request-id"
const RequestIdHeader = "X-Request-ID"

type Context struct {
	created   time.Time
	name      string
	requestId string
}

func NewContext(parent context.Context, name string) context.Context {
	return newContextWithRequestId(parent, name, uuid.New().String())
}

func newContextWithRequestId(parent context.Context, name string, requestId string) context.Context {
	ep := &Context{
		name:      name,
		created:   time.Now(),
		requestId: requestId,
	}
	return context.WithValue(parent, entryPointKey, ep)
}

// FromRequest reuses the caller's request id when one was sent
func FromRequest(r *http.Request, name string) context.Context {
	if requestId := r.Header.Get(RequestIdHeader); requestId != "" {
		return newContextWithRequestId(r.Context(), name, requestId)
	}
	return NewContext(r.Context(), name)
}

func FromContext(ctx context.Context) (e *Context, ok bool) {
	e, ok = ctx.Value(entryPointKey).(*Context)
	return
}

func (c *Context) RequestId() string {
	return c.requestId
}

func (c *Context) Name() string {
	return c.name
}

func (c *Context) Elapsed() time.Duration {
	return time.Since(c.created)
}

func LogFieldFrom(ctx context.Context) *log.Field {
	if ep, ok := FromContext(ctx); ok {
		return log.String("trace", ep.name+"/"+ep.requestId)
	}
	return log.String("trace", "NO-CONTEXT")
}

// WithTraceOf carries the trace of from into parent, for work that outlives the request that started it
func WithTraceOf(parent context.Context, from context.Context) context.Context {
	if ep, ok := FromContext(from); ok {
		return context.WithValue(parent, entryPointKey, ep)
	}
	return parent
}
