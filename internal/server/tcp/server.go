package tcpserver

import (
	"context"
	"net"
	"sync"

	"github.com/karvel/ringd/internal/metrics"
	"github.com/karvel/ringd/internal/runtime"
	"github.com/karvel/ringd/pkg/id"
	logpkg "github.com/karvel/ringd/pkg/log"
)

// Server is the record-ingest daemon: a newline-framed TCP protocol in front
// of the store. Each connection gets its own session goroutine and its own
// cursor; the engine itself holds no per-caller position.
type Server struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
	ids    *id.Generator

	mu    sync.Mutex
	lis   net.Listener
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// New constructs a TCP server over rt.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	return &Server{
		rt:     rt,
		logger: logger,
		ids:    id.NewGenerator(),
		conns:  make(map[net.Conn]struct{}),
	}
}

// ListenAndServe binds addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts sessions on l until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	s.lis = l
	s.mu.Unlock()

	// Idle sessions block in conn.Read; closing their connections is what
	// unblocks them so wg.Wait can complete.
	go func() {
		<-ctx.Done()
		s.Close()
	}()

	s.logger.Info("tcp listener started", logpkg.Str("addr", l.Addr().String()))
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			s.wg.Wait()
			return err
		}
		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			_ = conn.Close()
			continue
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		metrics.ConnectionsTotal.Inc()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, conn)
			s.mu.Lock()
			delete(s.conns, conn)
			s.mu.Unlock()
		}()
	}
}

// Close stops the listener and closes every open session connection so
// in-flight handlers unblock and drain through Serve.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		_ = s.lis.Close()
	}
	for conn := range s.conns {
		_ = conn.Close()
	}
}
