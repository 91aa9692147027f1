package responder

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"statuspulse/internal/shared"
	"statuspulse/internal/shared/metrics"
)

// handleConnection owns conn until it returns. Errors and panics stop here.
func (r *Responder) handleConnection(conn net.Conn) {
	defer r.untrack(conn)
	defer conn.Close()

	r.metrics.ActiveConnections.Inc()
	defer r.metrics.ActiveConnections.Dec()

	l := r.log.With().Str("trace_id", uuid.NewString()).Logger()

	defer func() {
		if p := recover(); p != nil {
			r.metrics.HandlerFailures.WithLabelValues(metrics.FailurePanic).Inc()
			l.Error().Interface("panic", p).Msg("Recovered from panic while handling connection")
		}
	}()

	counted := shared.NewCountedConn(conn, r.metrics.BytesIn, r.metrics.BytesOut)
	if err := r.process(counted, &l); err != nil {
		r.metrics.HandlerFailures.WithLabelValues(failureKind(err)).Inc()
		l.Warn().Err(err).Msg("Error handling connection")
	}
}

// process 依次完成：获取对端地址、读取一次、计数、写回复。
func (r *Responder) process(conn net.Conn, l *zerolog.Logger) error {
	remote := conn.RemoteAddr()
	if remote == nil {
		return &AddressError{Err: ErrNoRemoteAddr}
	}
	remoteAddr := remote.String()

	buf := make([]byte, ReadBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			// 对端未发送任何数据就关闭了连接
			l.Debug().Str("remote_addr", remoteAddr).Msg("Peer closed without sending data")
			return nil
		}
		if errors.Is(err, os.ErrDeadlineExceeded) && r.isClosed() {
			l.Debug().Str("remote_addr", remoteAddr).Msg("Idle connection interrupted by shutdown")
			return nil
		}
		return &ReadError{Remote: remoteAddr, Err: err}
	}

	l.Info().Str("remote_addr", remoteAddr).Str("request", requestSummary(buf[:n])).Msg("Request received")

	count := r.counter.Increment()
	r.metrics.RequestsServed.Inc()

	reply, err := BuildReply(r.version, count)
	if err != nil {
		return err
	}

	if r.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(r.cfg.WriteTimeout))
	}
	// net.Conn.Write 要么写完全部数据，要么返回错误
	if _, err := conn.Write(reply); err != nil {
		return &WriteError{Remote: remoteAddr, Err: err}
	}
	return nil
}

func failureKind(err error) string {
	var (
		addrErr  *AddressError
		readErr  *ReadError
		writeErr *WriteError
	)
	switch {
	case errors.As(err, &addrErr):
		return metrics.FailureAddress
	case errors.As(err, &readErr):
		return metrics.FailureRead
	case errors.As(err, &writeErr):
		return metrics.FailureWrite
	default:
		return metrics.FailureReply
	}
}

