// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/utils/logging"
)

const (
	serverShutdownTimeout = 10 * time.Second
	readHeaderTimeout     = 5 * time.Second
)

var (
	errAlreadyDispatched = errors.New("server already dispatched")
	errNotDispatched     = errors.New("server not dispatched")
)

// Wrapper instruments every request served by the server.
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

// Server serves the metrics and health endpoints.
type Server struct {
	log        logging.Logger
	listenHost string
	listenPort uint16

	router  *mux.Router
	handler http.Handler

	lock     sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// New returns a server listening on [host]:[port] once dispatched. Requests
// pass through [wrappers] in order, then gzip, then CORS, then the router.
func New(
	log logging.Logger,
	host string,
	port uint16,
	allowedOrigins []string,
	wrappers ...Wrapper,
) *Server {
	router := mux.NewRouter()

	log.Info("API created",
		zap.Strings("allowedOrigins", allowedOrigins),
	)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	var handler http.Handler = gziphandler.GzipHandler(corsHandler)
	for i := len(wrappers) - 1; i >= 0; i-- {
		handler = wrappers[i].WrapHandler(handler)
	}

	return &Server{
		log:        log,
		listenHost: host,
		listenPort: port,
		router:     router,
		handler:    handler,
	}
}

// AddRoute registers [handler] to serve GET requests to [path].
func (s *Server) AddRoute(path string, handler http.Handler) {
	s.log.Info("adding route",
		zap.String("path", path),
	)
	s.router.Handle(path, handler).Methods(http.MethodGet, http.MethodHead)
}

// Handler returns the fully wrapped handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen binds the server's address. It is split from Serve so that the
// bound address is known before requests are served.
func (s *Server) Listen() (net.Addr, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener != nil {
		return nil, errAlreadyDispatched
	}

	listenAddress := fmt.Sprintf("%s:%d", s.listenHost, s.listenPort)
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return nil, err
	}
	s.listener = listener
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.log.Info("HTTP API server listening",
		zap.Stringer("address", listener.Addr()),
	)
	return listener.Addr(), nil
}

// Serve blocks serving requests until the server is shut down. Listen must
// have been called.
func (s *Server) Serve() error {
	s.lock.Lock()
	srv, listener := s.srv, s.listener
	s.lock.Unlock()

	if srv == nil {
		return errNotDispatched
	}
	err := srv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Dispatch starts the API server
func (s *Server) Dispatch() error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown this server
func (s *Server) Shutdown() error {
	s.lock.Lock()
	srv := s.srv
	s.lock.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
