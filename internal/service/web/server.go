package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"statuspulse/internal/shared/logger"
)

// loggingListener logs every accepted scrape connection at debug level.
type loggingListener struct {
	net.Listener
}

func (l loggingListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err == nil {
		logger.Debug().Str("remote_addr", conn.RemoteAddr().String()).Msg("Metrics server accepted connection")
	}
	return conn, err
}

// MetricsServer 在独立端口上暴露 prometheus 指标，与 responder 端口互不影响。
type MetricsServer struct {
	listener net.Listener
	server   *http.Server
}

// NewMetricsServer 监听 addr 并准备 /metrics 处理器，但不阻塞。
func NewMetricsServer(addr string, gatherer prometheus.Gatherer) (*MetricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics server failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	logger.Info().Str("listen_addr", listener.Addr().String()).Msg("Metrics server is listening.")

	return &MetricsServer{
		listener: listener,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Addr 返回实际监听的地址。
func (s *MetricsServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve 阻塞直到服务器被关闭。正常关闭时返回 nil。
func (s *MetricsServer) Serve() error {
	err := s.server.Serve(loggingListener{Listener: s.listener})
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info().Msg("Metrics server stopped.")
		return nil
	}
	return err
}

// Close shuts the server down, giving in-flight scrapes a short grace period.
func (s *MetricsServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
