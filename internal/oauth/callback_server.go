package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultRedirectURI is the redirect target registered with the BAND
// developer console when none is configured.
const DefaultRedirectURI = "http://localhost:8000"

// CallbackResult represents the query parameters of the OAuth redirect.
type CallbackResult struct {
	// Code is the authorization code from the authorization server.
	Code string

	// Error is the error code if the user denied consent.
	Error string

	// ErrorDescription is a human-readable error description.
	ErrorDescription string
}

// IsError returns true if the redirect carried an error instead of a code.
func (r *CallbackResult) IsError() bool {
	return r.Error != ""
}

// CallbackServer is a one-shot local HTTP listener for the OAuth redirect.
// It binds the host/port implied by the redirect URI, serves exactly one
// request with an empty 200 response, and then stops accepting. The blocking
// wait in WaitForCallback is the only synchronization point between the
// out-of-band browser consent and the program.
type CallbackServer struct {
	addr     string
	path     string
	server   *http.Server
	listener net.Listener
	resultCh chan *CallbackResult
	errorCh  chan error
	once     sync.Once
}

// NewCallbackServer creates a callback server for the given redirect URI.
// The URI's host, port, and path determine where the listener binds and
// which request path it answers.
func NewCallbackServer(redirectURI string) (*CallbackServer, error) {
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI %q: %w", redirectURI, err)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("redirect URI %q has no host", redirectURI)
	}
	port := u.Port()
	if port == "" {
		port = "8000"
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	return &CallbackServer{
		addr:     net.JoinHostPort(host, port),
		path:     path,
		resultCh: make(chan *CallbackResult, 1),
		errorCh:  make(chan error, 1),
	}, nil
}

// Start binds the listener and begins serving. The server stops when the
// context is cancelled or after the first request has been answered.
func (s *CallbackServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start callback server on %s: %w", s.addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleCallback)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errorCh <- err:
			default:
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// WaitForCallback blocks until the redirect arrives, the server fails, or
// the context expires. Without a deadline on ctx this wait is unbounded; an
// absent user action blocks indefinitely, matching the interactive
// single-session model this flow was built for.
func (s *CallbackServer) WaitForCallback(ctx context.Context) (*CallbackResult, error) {
	select {
	case result := <-s.resultCh:
		return result, nil
	case err := <-s.errorCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleCallback answers the redirect. Only the first request is processed;
// anything after that is rejected, since the listener is about to shut down.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	var handled bool
	s.once.Do(func() {
		handled = true
		s.processCallback(w, r)
	})

	if !handled {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
	}
}

// processCallback extracts the redirect parameters and answers 200 with an
// empty body, then schedules shutdown. Called exactly once via sync.Once.
func (s *CallbackServer) processCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result := &CallbackResult{
		Code:             query.Get("code"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}

	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	select {
	case s.resultCh <- result:
	default:
	}

	// Give the response time to flush before tearing the listener down.
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.Stop()
	}()
}

// Stop shuts the server down and closes the listener. It is safe to call
// more than once.
func (s *CallbackServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// Addr returns the host:port the server binds.
func (s *CallbackServer) Addr() string {
	return s.addr
}
