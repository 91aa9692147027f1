package shared

import (
	"net"

	"github.com/prometheus/client_golang/prometheus"
)

// CountedConn 是一个 net.Conn 的包装器，把读写字节数累加到 prometheus 计数器上。
type CountedConn struct {
	net.Conn
	received prometheus.Counter
	sent     prometheus.Counter
}

// NewCountedConn 创建一个新的 CountedConn 实例。
func NewCountedConn(conn net.Conn, received, sent prometheus.Counter) *CountedConn {
	return &CountedConn{
		Conn:     conn,
		received: received,
		sent:     sent,
	}
}

// Read 从底层连接读取数据，并增加接收计数。
func (c *CountedConn) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)
	if n > 0 {
		c.received.Add(float64(n))
	}
	return n, err
}

// Write 将数据写入底层连接，并增加发送计数。
func (c *CountedConn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	if n > 0 {
		c.sent.Add(float64(n))
	}
	return n, err
}
