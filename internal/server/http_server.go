package server

import (
	"context"
	"net/http"
)

// httpServer is the slice of *http.Server the Server actually needs. Tests
// substitute stubs to drive the startup and shutdown paths without binding
// real ports.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// stdHTTPServer adapts *http.Server to the httpServer interface.
type stdHTTPServer struct {
	inner *http.Server
}

func (s stdHTTPServer) ListenAndServe() error              { return s.inner.ListenAndServe() }
func (s stdHTTPServer) Shutdown(ctx context.Context) error { return s.inner.Shutdown(ctx) }
func (s stdHTTPServer) Addr() string                       { return s.inner.Addr }
func (s stdHTTPServer) Handler() http.Handler              { return s.inner.Handler }
