package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/testutil"
)

func TestLoggingSetsRequestIDAndCallsNext(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	rr := testutil.Serve(Logging(logger, rec)(next), http.MethodGet, "/imports/abc", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rec.ProviderCalls("http") != 0 {
		t.Fatalf("expected provider metrics untouched")
	}
	if !strings.Contains(buf.String(), "status_code=418") {
		t.Fatalf("expected status code logged, got %s", buf.String())
	}
}

func TestLoggingKeepsValidIncomingRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "client-id_1" {
			t.Fatalf("expected incoming id, got %s", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-id_1")
	rr := testutil.ServeRequest(Logging(logger, nil)(next), req)

	if got := rr.Header().Get("X-Request-ID"); got != "client-id_1" {
		t.Fatalf("expected echoed request id, got %s", got)
	}
}

func TestLoggingReplacesInvalidRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rr := testutil.ServeRequest(Logging(logger, nil)(next), req)

	got := rr.Header().Get("X-Request-ID")
	if got == "" || got == "bad id with spaces" {
		t.Fatalf("expected generated request id, got %q", got)
	}
}

func TestLoggingNilLoggerUsesDefault(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	rr := testutil.Serve(Logging(nil, nil)(next), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestRoutePattern(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/imports/123", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Fatalf("expected %s without chi context, got %s", unmatchedRoute, got)
	}

	var seen string
	r := chi.NewRouter()
	r.Get("/imports/{id}", func(w http.ResponseWriter, r *http.Request) {
		seen = routePattern(r)
	})
	r.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "/imports/{id}" {
		t.Fatalf("expected route pattern, got %s", seen)
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	ctx = withRequestID(ctx, "abc")
	if got := RequestIDFromContext(ctx); got != "abc" {
		t.Fatalf("expected abc, got %s", got)
	}
}
