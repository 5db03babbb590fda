// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/orbs-network/scribe/log"
	"net/http"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *server) traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := trace.FromRequest(r, r.Method+" "+r.URL.Path)
		ep, _ := trace.FromContext(ctx)
		w.Header().Set(trace.RequestIdHeader, ep.RequestId())

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		s.logger.Info("http request served", trace.LogFieldFrom(ctx), log.Int("status", recorder.status), log.String("elapsed", ep.Elapsed().String()))
	})
}
