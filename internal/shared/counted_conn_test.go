package shared

import (
	"io"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountedConn_CountsBothDirections(t *testing.T) {
	received := prometheus.NewCounter(prometheus.CounterOpts{Name: "received"})
	sent := prometheus.NewCounter(prometheus.CounterOpts{Name: "sent"})

	server, client := net.Pipe()
	defer client.Close()
	counted := NewCountedConn(server, received, sent)
	defer counted.Close()

	go func() {
		_, _ = client.Write([]byte("PING\r\n"))
		buf := make([]byte, 4)
		_, _ = io.ReadFull(client, buf)
	}()

	buf := make([]byte, 16)
	n, err := counted.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = counted.Write([]byte("PONG"))
	require.NoError(t, err)

	assert.Equal(t, 6.0, testutil.ToFloat64(received))
	assert.Equal(t, 4.0, testutil.ToFloat64(sent))
}
