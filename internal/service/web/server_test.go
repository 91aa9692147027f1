package web

import (
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServer_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	served := prometheus.NewCounter(prometheus.CounterOpts{Name: "statuspulse_requests_served_total", Help: "test"})
	reg.MustRegister(served)
	served.Add(3)

	srv, err := NewMetricsServer("127.0.0.1:0", reg)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	resp, err := http.Get("http://" + srv.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "statuspulse_requests_served_total 3")

	require.NoError(t, srv.Close())
	assert.NoError(t, <-done)
}

func TestNewMetricsServer_BadAddress(t *testing.T) {
	_, err := NewMetricsServer("not-an-address", prometheus.NewRegistry())
	assert.Error(t, err)
}
