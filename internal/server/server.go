// Package server serves the contract dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// Options configure a Server.
type Options struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string
	Log  zerolog.Logger
	// Formatter renders call results.
	Formatter codec.Formatter
	// ShutdownTimeout bounds graceful shutdown. Zero means 5s.
	ShutdownTimeout time.Duration
}

// Server is the dashboard HTTP server.
type Server struct {
	resolved *config.Resolved
	callers  map[string]*contract.Caller
	page     []byte
	opts     Options
	log      zerolog.Logger
	router   *mux.Router
}

// New builds a server for resolved. resolved.RPCURL is the node every read
// call goes to.
func New(resolved *config.Resolved, opts Options) (*Server, error) {
	page, err := renderIndex(resolved)
	if err != nil {
		return nil, err
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = config.ShutdownTimeout
	}

	s := &Server{
		resolved: resolved,
		callers:  make(map[string]*contract.Caller, len(resolved.Contracts)),
		page:     page,
		opts:     opts,
		log:      opts.Log,
	}
	for _, c := range resolved.Contracts {
		caller := contract.NewCaller(resolved.RPCURL, c.ABI)
		caller.Formatter = opts.Formatter
		caller.Enums = c.Enums
		s.callers[c.Name] = caller
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/index.html", s.handleIndex).Methods(http.MethodGet, http.MethodHead)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contract}/functions", s.handleFunctions).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contract}/read/{function}", s.handleRead).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{contract}/calldata/{function}", s.handleCalldata).Methods(http.MethodPost)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/datetime", s.handleDateTime).Methods(http.MethodPost)

	r.PathPrefix("/").Handler(staticHandler()).Methods(http.MethodGet, http.MethodHead)
	r.NotFoundHandler = s.logRequests(http.HandlerFunc(notFound))
	r.MethodNotAllowedHandler = s.logRequests(http.HandlerFunc(methodNotAllowed))
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("dashboard listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
