// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"encoding/json"
	"github.com/crypto-devs/whitelist-dapp/config"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type StatusResponse struct {
	Uptime  int64
	State   whitelist.State
	Button  whitelist.Button
	Version config.Version
}

func (s *server) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

func (s *server) page(w http.ResponseWriter, r *http.Request) {
	state := s.service.State()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{State: state, Button: whitelist.RenderButton(state)})
	if err != nil {
		s.logger.Info("error rendering page", log.Error(err), trace.LogFieldFrom(r.Context()))
	}
}

// failures are kept in the service state and shown on the page after the redirect
func (s *server) connect(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ConnectWallet(r.Context()); err != nil {
		s.logger.Info("connect request failed", log.Error(err), trace.LogFieldFrom(r.Context()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// the join runs in the background since mining can take minutes; the page shows Loading... until it is done
func (s *server) join(w http.ResponseWriter, r *http.Request) {
	if !s.joinLimiter.Allow() {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusTooManyRequests, trace.LogFieldFrom(r.Context()), "join requests are coming in too fast"})
		return
	}

	ctx := trace.WithTraceOf(s.ctx, r.Context())
	govnr.Once(logfields.GovnrErrorer(s.logger), func() {
		if err := s.service.AddAddressToWhitelist(ctx); err != nil {
			s.logger.Info("join request failed", log.Error(err), trace.LogFieldFrom(ctx))
		}
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) state(w http.ResponseWriter, r *http.Request) {
	state := s.service.State()
	response := StatusResponse{
		Uptime:  int64(time.Since(s.startTime) / time.Second),
		State:   state,
		Button:  whitelist.RenderButton(state),
		Version: config.GetVersion(),
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *server) dumpMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	bytes, _ := json.Marshal(s.metricRegistry.ExportAll())
	_, err := w.Write(bytes)
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *server) dumpPrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, err := w.Write([]byte(s.metricRegistry.ExportPrometheus()))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}
