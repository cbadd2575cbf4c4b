package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type UploaderHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	logger    *zap.Logger
}

func NewUploaderHttpServer(router *Router, muxRouter *mux.Router, addr string, logger *zap.Logger) *UploaderHttpServer {
	return &UploaderHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		logger:    logger.Named("UploaderHttpServer"),
	}
}

// Handler returns the routed handler wrapped in access logging.
func (s *UploaderHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	accessLog := zap.NewStdLog(s.logger.Named("access")).Writer()
	return handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(accessLog, s.muxRouter))
}

// Start serves until ctx is cancelled, then shuts down gracefully. Batches
// already running are given shutdownTimeout to finish.
func (s *UploaderHttpServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server exiting")
	return nil
}
