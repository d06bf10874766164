package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karvel/ringd/internal/metrics"
	"github.com/karvel/ringd/internal/runtime"
	"github.com/karvel/ringd/internal/store"
	logpkg "github.com/karvel/ringd/pkg/log"
)

// maxBodyBytes bounds a single write request body.
const maxBodyBytes = 1 << 20

// Server is the JSON control plane over the store, plus the Prometheus
// scrape endpoint.
type Server struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
	srv    *http.Server
	lis    net.Listener
}

// New constructs an HTTP server and registers routes.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{rt: rt, logger: logger, srv: &http.Server{Handler: mux}}

	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/records", s.handleWrite)
	mux.HandleFunc("/v1/read", s.handleRead)
	mux.HandleFunc("/v1/seek", s.handleSeek)
	mux.HandleFunc("/v1/stats", s.handleStats)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

// ListenAndServe binds addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http listener started", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_serving"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleWrite accepts raw bytes and feeds them to the store. Bytes without a
// trailing delimiter stay pending until a later write completes the record.
func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}
	if len(body) > maxBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}
	n, err := s.rt.Store().Write(r.Context(), body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrPendingOverflow) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err.Error())
		return
	}
	metrics.BytesWritten.Add(float64(n))
	writeJSON(w, http.StatusAccepted, map[string]any{"accepted": n})
}

// handleRead returns up to max bytes starting at the global offset "at". An
// empty 200 response signals end of stream.
func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	at, err := queryInt(r, "at", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at")
		return
	}
	max, err := queryInt(r, "max", 4096)
	if err != nil || max <= 0 {
		writeError(w, http.StatusBadRequest, "invalid max")
		return
	}
	b, err := s.rt.Store().ReadAt(r.Context(), at, max)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.BytesRead.Add(float64(len(b)))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type seekReq struct {
	Record int `json:"record"`
	Offset int `json:"offset"`
}

// handleSeek resolves a (record, offset) address to a cursor the client can
// pass back to /v1/read.
func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req seekReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	cursor, err := s.rt.Store().SeekToCommand(r.Context(), req.Record, req.Offset)
	if err != nil {
		if errors.Is(err, store.ErrOutOfRange) {
			metrics.SeekErrors.Inc()
			writeError(w, http.StatusRequestedRangeNotSatisfiable, "out of range")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cursor": cursor})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := s.rt.Store()
	total, err := st.TotalBytes(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	live, err := st.LiveCount(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pending, err := st.PendingBytes(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := map[string]any{
		"totalBytes":   total,
		"liveRecords":  live,
		"pendingBytes": pending,
		"capacity":     st.Capacity(),
	}
	if a := s.rt.Archive(); a != nil {
		stats["archivedRecords"] = a.LastSeq()
	}
	writeJSON(w, http.StatusOK, stats)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
