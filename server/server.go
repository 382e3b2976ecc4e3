// Package server exposes category and business reports over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rotisserie/eris"

	"tourism-reviews/utils"
)

const shutdownTimeout = 5 * time.Second

// HTTPServer serves a Router until its context is cancelled.
type HTTPServer struct {
	router    *Router
	muxRouter *mux.Router
	port      int
	logger    *utils.Logger
}

func NewHTTPServer(router *Router, muxRouter *mux.Router, port int, logger *utils.Logger) *HTTPServer {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &HTTPServer{
		router:    router,
		muxRouter: muxRouter,
		port:      port,
		logger:    logger,
	}
}

// New wires handler, router and server for runner.
func New(runner Runner, port int, logger *utils.Logger) *HTTPServer {
	muxRouter := mux.NewRouter()
	return NewHTTPServer(NewRouter(NewReportHandler(runner, logger), muxRouter), muxRouter, port, logger)
}

// Handler registers the routes and returns the root handler.
func (s *HTTPServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return s.muxRouter
}

// Start listens on the configured port and shuts down gracefully once ctx
// is done.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("[server] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	s.logger.Info("[server] Server exiting")
	return nil
}
