package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// startAPIStub serves a minimal in-memory version of the HTTP API.
func startAPIStub(t *testing.T) (base string, got *stubState) {
	t.Helper()
	st := &stubState{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/records", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		st.written = append(st.written, b...)
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]int{"accepted": len(b)})
	})
	mux.HandleFunc("/v1/read", func(w http.ResponseWriter, r *http.Request) {
		at := r.URL.Query().Get("at")
		switch at {
		case "0":
			_, _ = w.Write([]byte("one\n"))
		case "4":
			_, _ = w.Write([]byte("two\n"))
		default:
			// empty response: end of log
		}
	})
	mux.HandleFunc("/v1/seek", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]int
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["record"] > 1 {
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "out of range"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"cursor": req["record"]*4 + req["offset"]})
	})
	mux.HandleFunc("/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"totalBytes": 8, "liveRecords": 2})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL, st
}

type stubState struct {
	written []byte
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return buf.String()
}

func TestWriteAppendsDelimiter(t *testing.T) {
	base, st := startAPIStub(t)
	out := execute(t, newLogWriteCommand(func() string { return base }), "--data", "hello")
	if !strings.Contains(out, "status:") {
		t.Fatalf("expected status in output, got: %s", out)
	}
	if string(st.written) != "hello\n" {
		t.Fatalf("written: %q", st.written)
	}
}

func TestWriteRawKeepsBytes(t *testing.T) {
	base, st := startAPIStub(t)
	execute(t, newLogWriteCommand(func() string { return base }), "--data", "par", "--raw")
	if string(st.written) != "par" {
		t.Fatalf("written: %q", st.written)
	}
}

func TestCatWalksToEnd(t *testing.T) {
	base, _ := startAPIStub(t)
	out := execute(t, newLogCatCommand(func() string { return base }))
	if out != "one\ntwo\n" {
		t.Fatalf("cat: %q", out)
	}
}

func TestSeekPrintsCursor(t *testing.T) {
	base, _ := startAPIStub(t)
	out := execute(t, newLogSeekCommand(func() string { return base }), "--record", "1", "--offset", "2")
	if !strings.Contains(out, "cursor: 6") {
		t.Fatalf("seek output: %s", out)
	}
}

func TestSeekOutOfRangeErrors(t *testing.T) {
	base, _ := startAPIStub(t)
	cmd := newLogSeekCommand(func() string { return base })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--record", "9", "--offset", "0"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for out-of-range seek")
	}
}

func TestStatsPrettyPrints(t *testing.T) {
	base, _ := startAPIStub(t)
	out := execute(t, newLogStatsCommand(func() string { return base }))
	if !strings.Contains(out, "\"totalBytes\": 8") {
		t.Fatalf("stats output: %s", out)
	}
}
