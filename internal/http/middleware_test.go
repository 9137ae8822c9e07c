package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fredagsliga-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	handler := LoggingMiddleware(logger, nil, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNoContent)
	}))

	rr := testutil.Serve(handler, nethttp.MethodGet, "/health", nil)

	if rr.Code != nethttp.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id header")
	}
}

func TestLoggingMiddlewarePreservesValidRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	handler := LoggingMiddleware(logger, nil, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected request id in context, got %q", got)
		}
	}))

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected incoming id preserved, got %q", got)
	}
}

func TestLoggingMiddlewareReplacesMalformedRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	handler := LoggingMiddleware(logger, nil, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces\n")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	got := rr.Header().Get("X-Request-ID")
	if got == "" || strings.Contains(got, " ") {
		t.Fatalf("expected sanitized request id, got %q", got)
	}
}

func TestLoggingMiddlewareLogsCompletion(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	handler := LoggingMiddleware(logger, nil, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusTeapot)
	}))

	testutil.Serve(handler, nethttp.MethodGet, "/session", nil)

	out := buf.String()
	if !strings.Contains(out, "request complete") {
		t.Fatalf("expected completion log, got %q", out)
	}
	if !strings.Contains(out, "status_code=418") {
		t.Fatalf("expected status in log, got %q", out)
	}
}
