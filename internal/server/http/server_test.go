package httpserver

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	cfgpkg "github.com/karvel/ringd/internal/config"
	"github.com/karvel/ringd/internal/runtime"
	logpkg "github.com/karvel/ringd/pkg/log"
)

func newTestServer(t *testing.T, capacity int) *Server {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.Capacity = capacity
	rt, err := runtime.Open(runtime.Options{Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return New(rt, logpkg.NewLogger())
}

func postRecord(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/v1/records", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, 4)
	req := httptest.NewRequest("GET", "/v1/healthz", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("status: got %d want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("status field: %q", resp["status"])
	}
}

func TestWriteThenRead(t *testing.T) {
	s := newTestServer(t, 4)
	if w := postRecord(t, s, "one\ntwo\n"); w.Code != 202 {
		t.Fatalf("write status: got %d body %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest("GET", "/v1/read?at=0&max=64", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("read status: %d", w.Code)
	}
	// One record per read.
	if got := w.Body.String(); got != "one\n" {
		t.Fatalf("read: got %q want %q", got, "one\n")
	}

	req = httptest.NewRequest("GET", "/v1/read?at=4&max=64", nil)
	w = httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if got := w.Body.String(); got != "two\n" {
		t.Fatalf("read: got %q want %q", got, "two\n")
	}

	// Past the end: empty body, not an error.
	req = httptest.NewRequest("GET", "/v1/read?at=8&max=64", nil)
	w = httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 200 || w.Body.Len() != 0 {
		t.Fatalf("eof read: status %d len %d", w.Code, w.Body.Len())
	}
}

func TestWriteRejectsWrongMethod(t *testing.T) {
	s := newTestServer(t, 4)
	req := httptest.NewRequest("GET", "/v1/records", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 405 {
		t.Fatalf("status: got %d want 405", w.Code)
	}
}

func TestSeekHandler(t *testing.T) {
	s := newTestServer(t, 4)
	postRecord(t, s, "one\ntwo\nthree\n")

	req := httptest.NewRequest("POST", "/v1/seek", strings.NewReader(`{"record":1,"offset":2}`))
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("seek status: %d body %s", w.Code, w.Body.String())
	}
	var resp map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// "one\n" is 4 bytes, plus 2 into "two\n".
	if resp["cursor"] != 6 {
		t.Fatalf("cursor: got %d want 6", resp["cursor"])
	}

	req = httptest.NewRequest("POST", "/v1/seek", strings.NewReader(`{"record":9,"offset":0}`))
	w = httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 416 {
		t.Fatalf("out of range seek: got %d want 416", w.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t, 4)
	postRecord(t, s, "one\ntwo\npar")

	req := httptest.NewRequest("GET", "/v1/stats", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("stats status: %d", w.Code)
	}
	var stats map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats["totalBytes"] != 8 {
		t.Fatalf("totalBytes: got %v want 8", stats["totalBytes"])
	}
	if stats["liveRecords"] != 2 {
		t.Fatalf("liveRecords: got %v want 2", stats["liveRecords"])
	}
	if stats["pendingBytes"] != 3 {
		t.Fatalf("pendingBytes: got %v want 3", stats["pendingBytes"])
	}
	if stats["capacity"] != 4 {
		t.Fatalf("capacity: got %v want 4", stats["capacity"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 4)
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("metrics status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ringd_") {
		t.Fatalf("metrics body missing ringd_ series")
	}
}
