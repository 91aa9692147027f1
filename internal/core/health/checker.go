package health

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DialFunc 与 net.Dialer.DialContext 的签名一致。
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Checker 对远端地址做一次性的 TCP 可达性探测。
type Checker struct {
	dial DialFunc
}

// New 创建一个使用系统拨号器的 Checker。
func New() *Checker {
	d := &net.Dialer{}
	return &Checker{dial: d.DialContext}
}

// NewWithDialer creates a Checker that dials through dial.
func NewWithDialer(dial DialFunc) *Checker {
	return &Checker{dial: dial}
}

type dialResult struct {
	conn net.Conn
	err  error
}

// Probe 尝试在 timeout 内与 host:port 建立 TCP 连接。
// 连接建立后立即关闭，不收发任何数据，也不重试。
//
// 返回 nil 表示健康；*ConnectionFailure 表示连接在超时前失败；
// *TimeoutFailure 表示超时先到。
func (c *Checker) Probe(ctx context.Context, host string, port uint16, timeout time.Duration) error {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	if timeout <= 0 {
		// 超时已经耗尽，不再发起连接
		return &TimeoutFailure{Addr: addr, Timeout: timeout}
	}

	dialCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan dialResult, 1)
	go func() {
		conn, err := c.dial(dialCtx, "tcp", addr)
		results <- dialResult{conn: conn, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		if res.err != nil {
			return &ConnectionFailure{Addr: addr, Cause: res.err}
		}
		res.conn.Close()
		return nil
	case <-timer.C:
		go discard(results)
		return &TimeoutFailure{Addr: addr, Timeout: timeout}
	case <-ctx.Done():
		go discard(results)
		return &ConnectionFailure{Addr: addr, Cause: ctx.Err()}
	}
}

// discard waits for an abandoned dial and closes the connection if it won late.
func discard(results <-chan dialResult) {
	if res := <-results; res.conn != nil {
		res.conn.Close()
	}
}
