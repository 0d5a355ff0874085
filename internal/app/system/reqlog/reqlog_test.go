package reqlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/wuwapi/internal/app/system/reqlog"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_GeneratesID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := reqlog.Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqlog.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deadlines", nil))

	id := rec.Header().Get(reqlog.Header)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid request id, got %q", id)
	}
	if seen != id {
		t.Errorf("context id %q differs from header %q", seen, id)
	}

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log line, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(http.StatusCreated) || fields["path"] != "/deadlines" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestMiddleware_ReusesIncomingID(t *testing.T) {
	h := reqlog.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.Header.Set(reqlog.Header, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(reqlog.Header); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestMiddleware_WarnsOnServerError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := reqlog.Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rooms", nil))

	if logs.Len() != 1 {
		t.Errorf("expected a warning for a 500, got %d entries", logs.Len())
	}
}
