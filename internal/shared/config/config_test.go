package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{EnvHost, EnvPort, EnvMaxConnections, EnvMetricsAddr, EnvLogLevel, EnvProbeHost, EnvProbePort} {
		t.Setenv(name, "")
	}
}

func TestDefaultServe_NoEnv(t *testing.T) {
	clearEnv(t)
	cfg := DefaultServe()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, 0, cfg.MaxConnections)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestDefaultServe_EnvOverrides(t *testing.T) {
	t.Setenv(EnvHost, "127.0.0.1")
	t.Setenv(EnvPort, "18080")
	t.Setenv(EnvMaxConnections, "16")
	t.Setenv(EnvMetricsAddr, "127.0.0.1:9100")

	cfg := DefaultServe()

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, uint16(18080), cfg.Port)
	assert.Equal(t, 16, cfg.MaxConnections)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
}

func TestDefaultServe_InvalidEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "70000")
	t.Setenv(EnvMaxConnections, "many")

	cfg := DefaultServe()

	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, 0, cfg.MaxConnections)
}

func TestDefaultProbe(t *testing.T) {
	clearEnv(t)
	cfg := DefaultProbe()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Setenv(EnvProbeHost, "10.0.0.5")
	t.Setenv(EnvProbePort, "9000")
	cfg = DefaultProbe()
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, uint16(9000), cfg.Port)
}

func TestDefaultProbe_IgnoresServeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHost, "0.0.0.0")
	t.Setenv(EnvPort, "18080")

	cfg := DefaultProbe()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, "0.0.0.0", DefaultServe().Host)
}

func TestDefaultLog(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "info", DefaultLog().Level)

	t.Setenv(EnvLogLevel, "debug")
	assert.Equal(t, "debug", DefaultLog().Level)
}
