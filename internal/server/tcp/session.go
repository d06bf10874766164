package tcpserver

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/karvel/ringd/internal/metrics"
	"github.com/karvel/ringd/internal/ring"
	"github.com/karvel/ringd/internal/store"
	logpkg "github.com/karvel/ringd/pkg/log"
)

const readChunkSize = 4096

// session frames one connection's byte stream into packets and runs the
// ingest protocol: data packets are appended and answered with the full log
// content; seek packets reposition the session cursor and are answered with
// the content from that cursor onward.
type session struct {
	st     *store.Store
	conn   net.Conn
	logger logpkg.Logger
	acc    *ring.Accumulator
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	sid := s.ids.Next().Short()
	logger := s.logger.With(
		logpkg.Str("session", sid),
		logpkg.Str("remote", conn.RemoteAddr().String()),
	)
	logger.Debug("session opened")
	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()
	defer conn.Close()

	cfg := s.rt.Config()
	sess := &session{
		st:     s.rt.Store(),
		conn:   conn,
		logger: logger,
		acc:    ring.NewAccumulator(cfg.DelimiterByte(), cfg.MaxPendingBytes),
	}

	buf := make([]byte, readChunkSize)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := conn.Read(buf)
		if n > 0 {
			if cerr := sess.consume(ctx, buf[:n]); cerr != nil {
				logger.Warn("session aborted", logpkg.Err(cerr))
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				logger.Debug("session read error", logpkg.Err(err))
			}
			logger.Debug("session closed")
			return
		}
	}
}

// consume feeds chunk to the session's framer and handles each completed
// packet.
func (sess *session) consume(ctx context.Context, chunk []byte) error {
	packets, err := sess.acc.Feed(chunk)
	if err != nil {
		return err
	}
	for _, pkt := range packets {
		if err := sess.handlePacket(ctx, pkt); err != nil {
			return err
		}
	}
	return nil
}

func (sess *session) handlePacket(ctx context.Context, pkt []byte) error {
	if recordIndex, offsetInRecord, ok := parseSeekPacket(pkt); ok {
		cursor, err := sess.st.SeekToCommand(ctx, recordIndex, offsetInRecord)
		if err != nil {
			if errors.Is(err, store.ErrOutOfRange) {
				metrics.SeekErrors.Inc()
				sess.logger.Warn("seek out of range",
					logpkg.Int("record", recordIndex),
					logpkg.Int("offset", offsetInRecord),
				)
				// The session stays usable after a rejected seek.
				return nil
			}
			return err
		}
		return sess.stream(ctx, cursor)
	}

	n, err := sess.st.Write(ctx, pkt)
	if err != nil {
		return err
	}
	metrics.BytesWritten.Add(float64(n))
	// Answer every stored packet with the full current log content.
	return sess.stream(ctx, 0)
}

// stream writes the log content from cursor to end-of-stream to the client,
// one record per engine read.
func (sess *session) stream(ctx context.Context, cursor int) error {
	for {
		b, err := sess.st.ReadAt(ctx, cursor, readChunkSize)
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return nil
		}
		if _, err := sess.conn.Write(b); err != nil {
			return err
		}
		metrics.BytesRead.Add(float64(len(b)))
		cursor += len(b)
	}
}
