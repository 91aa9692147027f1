package config

import (
	"os"
	"strconv"
	"time"

	"statuspulse/internal/shared/types"
)

// 环境变量名。命令行参数的默认值由它们覆盖，显式传入的参数优先级最高。
const (
	EnvHost           = "STATUSPULSE_HOST"
	EnvPort           = "STATUSPULSE_PORT"
	EnvMaxConnections = "STATUSPULSE_MAX_CONNECTIONS"
	EnvMetricsAddr    = "STATUSPULSE_METRICS_ADDR"
	EnvLogLevel       = "STATUSPULSE_LOG_LEVEL"

	// health 子命令使用独立的变量，避免 serve 的监听地址影响探测目标
	EnvProbeHost = "STATUSPULSE_PROBE_HOST"
	EnvProbePort = "STATUSPULSE_PROBE_PORT"
)

// DefaultServe 返回 serve 子命令的默认配置，并应用环境变量覆盖。
func DefaultServe() types.ServeConf {
	cfg := types.ServeConf{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	overrideFromEnvString(&cfg.Host, EnvHost)
	overrideFromEnvUint16(&cfg.Port, EnvPort)
	overrideFromEnvInt(&cfg.MaxConnections, EnvMaxConnections)
	overrideFromEnvString(&cfg.MetricsAddr, EnvMetricsAddr)
	return cfg
}

// DefaultProbe 返回 health 子命令的默认配置。
func DefaultProbe() types.ProbeConf {
	cfg := types.ProbeConf{
		Host:    "localhost",
		Port:    8080,
		Timeout: 5 * time.Second,
	}
	overrideFromEnvString(&cfg.Host, EnvProbeHost)
	overrideFromEnvUint16(&cfg.Port, EnvProbePort)
	return cfg
}

// DefaultLog 返回日志配置。
func DefaultLog() types.LogConf {
	cfg := types.LogConf{Level: "info"}
	overrideFromEnvString(&cfg.Level, EnvLogLevel)
	return cfg
}

func overrideFromEnvString(target *string, envName string) {
	if envValue := os.Getenv(envName); envValue != "" {
		*target = envValue
	}
}

func overrideFromEnvInt(target *int, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if intValue, err := strconv.Atoi(envValue); err == nil {
			*target = intValue
		}
	}
}

func overrideFromEnvUint16(target *uint16, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if v, err := strconv.ParseUint(envValue, 10, 16); err == nil {
			*target = uint16(v)
		}
	}
}
