package app

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"statuspulse/internal/core/responder"
	"statuspulse/internal/service/web"
	"statuspulse/internal/shared/logger"
	"statuspulse/internal/shared/metrics"
	"statuspulse/internal/shared/types"
)

// AppServer is the application's main struct.
type AppServer struct {
	cfg types.ServeConf

	metrics       *metrics.Collectors
	responder     *responder.Responder
	metricsServer *web.MetricsServer

	stopping atomic.Bool
	stopOnce sync.Once
}

// New creates a new AppServer for the given serve configuration.
func New(cfg types.ServeConf) *AppServer {
	m := metrics.New()
	return &AppServer{
		cfg:       cfg,
		metrics:   m,
		responder: responder.New(cfg, m),
	}
}

// Start 绑定监听地址，并在配置了 MetricsAddr 时启动 metrics 端口的监听。
// 它不阻塞；返回 responder 实际监听的地址。
func (s *AppServer) Start() (net.Addr, error) {
	addr, err := s.responder.InitializeListener()
	if err != nil {
		return nil, err
	}

	if s.cfg.MetricsAddr != "" {
		ms, err := web.NewMetricsServer(s.cfg.MetricsAddr, s.metrics.Registry)
		if err != nil {
			s.responder.Close()
			return nil, err
		}
		s.metricsServer = ms
	}

	logger.Info().Msgf("Server listening on %s", addr)
	logger.Info().Msg("Accepting connections...")
	return addr, nil
}

// Serve 阻塞直到 responder 停止。通过 Stop 停止时返回 nil；
// 监听 socket 意外失效时返回对应的错误。必须在 Start 之后调用。
func (s *AppServer) Serve() error {
	var g errgroup.Group

	g.Go(func() error {
		err := s.responder.Serve()
		stopping := s.stopping.Load()
		s.Stop()
		if stopping {
			return nil
		}
		return err
	})

	if s.metricsServer != nil {
		g.Go(s.metricsServer.Serve)
	}

	return g.Wait()
}

// Run is the server's entry point.
func (s *AppServer) Run() error {
	if _, err := s.Start(); err != nil {
		return err
	}
	return s.Serve()
}

// Stop gracefully shuts down the server.
func (s *AppServer) Stop() {
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		s.responder.Close()
		if s.metricsServer != nil {
			if err := s.metricsServer.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				logger.Warn().Err(err).Msg("Metrics server did not shut down cleanly")
			}
		}
	})
}

// Requests 返回已处理的请求数。
func (s *AppServer) Requests() uint64 {
	return s.responder.Requests()
}

// MetricsAddr 返回 metrics 端口的实际地址，未启用时返回 nil。
func (s *AppServer) MetricsAddr() net.Addr {
	if s.metricsServer == nil {
		return nil
	}
	return s.metricsServer.Addr()
}
