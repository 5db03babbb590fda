// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"fmt"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"github.com/gorilla/mux"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"golang.org/x/time/rate"
	"net"
	"net/http"
	"time"
)

var LogTag = log.String("adapter", "http-server")

type httpErr struct {
	code     int
	logField *log.Field
	message  string
}

type Config interface {
	HttpAddress() string
	HttpJoinRateLimitInterval() time.Duration
}

type WhitelistService interface {
	State() whitelist.State
	ConnectWallet(ctx context.Context) error
	AddAddressToWhitelist(ctx context.Context) error
}

type HttpServer interface {
	GracefulShutdown(timeout time.Duration)
	Port() int
}

type server struct {
	// background joins live as long as this context, not as long as the request that started them
	ctx            context.Context
	httpServer     *http.Server
	logger         log.Logger
	service        WhitelistService
	metricRegistry metric.Registry
	config         Config
	joinLimiter    *rate.Limiter
	startTime      time.Time

	port int
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func newServer(ctx context.Context, cfg Config, logger log.Logger, service WhitelistService, metricRegistry metric.Registry) *server {
	return &server{
		ctx:            ctx,
		logger:         logger.WithTags(LogTag),
		service:        service,
		metricRegistry: metricRegistry,
		config:         cfg,
		joinLimiter:    rate.NewLimiter(rate.Every(cfg.HttpJoinRateLimitInterval()), 1),
		startTime:      time.Now(),
	}
}

func NewHttpServer(ctx context.Context, cfg Config, logger log.Logger, service WhitelistService, metricRegistry metric.Registry) HttpServer {
	server := newServer(ctx, cfg, logger, service, metricRegistry)

	if listener, err := net.Listen("tcp", cfg.HttpAddress()); err != nil {
		panic(fmt.Sprintf("failed to start http server: %s", err.Error()))
	} else {
		server.port = listener.Addr().(*net.TCPAddr).Port
		server.httpServer = &http.Server{
			Handler: server.createRouter(),
		}

		// We prefer not to use `HttpServer.ListenAndServe` because we want to block until the socket is listening or exit immediately
		govnr.Once(logfields.GovnrErrorer(server.logger), func() {
			if err := server.httpServer.Serve(tcpKeepAliveListener{listener.(*net.TCPListener)}); err != http.ErrServerClosed {
				server.logger.Error("http server stopped serving", log.Error(err))
			}
		})
	}

	server.logger.Info("started http server", log.String("address", cfg.HttpAddress()), log.Int("port", server.port))

	return server
}

func (s *server) Port() int {
	return s.port
}

func (s *server) GracefulShutdown(timeout time.Duration) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
}

func (s *server) createRouter() http.Handler {
	router := mux.NewRouter()
	router.Use(s.traceRequests)

	router.HandleFunc("/", s.page).Methods(http.MethodGet)
	router.HandleFunc("/connect", s.connect).Methods(http.MethodPost)
	router.HandleFunc("/join", s.join).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/state", wrapHandlerWithCORS(s.state)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/metrics", wrapHandlerWithCORS(s.dumpMetrics)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/metrics.prometheus", s.dumpPrometheusMetrics).Methods(http.MethodGet)
	router.HandleFunc("/robots.txt", s.robots).Methods(http.MethodGet)

	return router
}

func (s *server) writeErrorResponseAndLog(w http.ResponseWriter, m *httpErr) {
	if m.logField == nil {
		s.logger.Info(m.message)
	} else {
		s.logger.Info(m.message, m.logField)
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(m.code)
	_, err := w.Write([]byte(m.message))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

// Allows handler to be called via XHR requests from any host
func wrapHandlerWithCORS(f func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
		} else {
			f(w, r)
		}
	}
}
