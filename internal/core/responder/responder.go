package responder

import (
	"errors"
	"net"
	"net/netip"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"

	"statuspulse/internal/core/counter"
	"statuspulse/internal/shared/logger"
	"statuspulse/internal/shared/metrics"
	"statuspulse/internal/shared/types"
)

// ReadBufferSize 是每个连接单次读取的缓冲区大小。
const ReadBufferSize = 1024

// Responder 监听一个 TCP 地址，为每个连接回复一次状态信息。
type Responder struct {
	cfg      types.ServeConf
	version  string
	counter  *counter.Counter
	metrics  *metrics.Collectors
	log      zerolog.Logger
	listener net.Listener

	// newBackOff 决定 accept 出错后的等待时间
	newBackOff func() backoff.BackOff

	mu        sync.Mutex
	closed    bool
	live      map[net.Conn]struct{}
	conns     sync.WaitGroup
	closeOnce sync.Once
}

// New creates a Responder with its own request counter. m may be nil.
func New(cfg types.ServeConf, m *metrics.Collectors) *Responder {
	if m == nil {
		m = metrics.New()
	}
	r := &Responder{
		cfg:        cfg,
		version:    types.Version,
		counter:    counter.New(),
		metrics:    m,
		log:        logger.WithComponent("responder"),
		newBackOff: newAcceptBackOff,
		live:       make(map[net.Conn]struct{}),
	}
	if err := m.TrackRequestCount(r.counter.Value); err != nil {
		r.log.Warn().Err(err).Msg("Request count gauge is already registered")
	}
	return r
}

func newAcceptBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(5*time.Millisecond),
		backoff.WithMaxInterval(time.Second),
		backoff.WithMaxElapsedTime(0),
	)
	return b
}

// Requests 返回共享计数器的当前值。
func (r *Responder) Requests() uint64 {
	return r.counter.Value()
}

// InitializeListener 解析并监听配置的地址，但不阻塞。
// 地址格式错误或端口被占用时返回 *BindError。
func (r *Responder) InitializeListener() (net.Addr, error) {
	listenAddr := net.JoinHostPort(r.cfg.Host, strconv.Itoa(int(r.cfg.Port)))
	addrPort, err := netip.ParseAddrPort(listenAddr)
	if err != nil {
		return nil, &BindError{Addr: listenAddr, Err: err}
	}

	listener, err := net.Listen("tcp", addrPort.String())
	if err != nil {
		return nil, &BindError{Addr: listenAddr, Err: err}
	}
	if r.cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, r.cfg.MaxConnections)
	}
	r.listener = listener

	r.log.Info().Str("listen_addr", listener.Addr().String()).Msg("Responder is listening.")
	return listener.Addr(), nil
}

// Serve runs the accept loop until the listener becomes unusable. Temporary
// accept failures are logged and retried after a backoff delay. A closed or
// invalid listener ends the loop and is returned as an *AcceptError.
func (r *Responder) Serve() error {
	if r.listener == nil {
		return &AcceptError{Err: errors.New("serve called before listener was initialized")}
	}

	delay := r.newBackOff()
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				r.log.Info().Msg("Responder listener is closing.")
				return &AcceptError{Err: err}
			}
			r.metrics.AcceptErrors.Inc()
			if isListenerBroken(err) {
				r.log.Error().Err(err).Msg("Responder listener is no longer usable")
				return &AcceptError{Err: err}
			}
			wait := delay.NextBackOff()
			r.log.Warn().Err(err).Dur("retry_in", wait).Msg("Responder failed to accept connection")
			time.Sleep(wait)
			continue
		}
		delay.Reset()

		if !r.track(conn) {
			conn.Close()
			continue
		}

		r.metrics.ConnectionsAccepted.Inc()
		go r.handleConnection(conn)
	}
}

// isListenerBroken 判断 accept 错误是否表示监听 socket 本身已失效。
// EMFILE、ECONNABORTED 之类的错误是暂时的，可以重试。
func isListenerBroken(err error) bool {
	return errors.Is(err, syscall.EBADF) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.ENOTSOCK)
}

// track 登记一个新连接并设置读超时。responder 已关闭时返回 false。
func (r *Responder) track(conn net.Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if r.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(r.cfg.ReadTimeout))
	}
	r.live[conn] = struct{}{}
	r.conns.Add(1)
	return true
}

func (r *Responder) untrack(conn net.Conn) {
	r.mu.Lock()
	delete(r.live, conn)
	r.mu.Unlock()
	r.conns.Done()
}

func (r *Responder) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close 关闭监听器，打断仍在等待读取的连接，并等待所有处理器结束。可重复调用。
func (r *Responder) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		if r.listener != nil {
			r.listener.Close()
		}
		now := time.Now()
		for conn := range r.live {
			_ = conn.SetReadDeadline(now)
		}
		r.mu.Unlock()

		r.conns.Wait()
		r.log.Info().Uint64("requests", r.counter.Value()).Msg("Responder has been shut down")
	})
}
