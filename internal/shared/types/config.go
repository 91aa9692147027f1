package types

import "time"

// Version 是写入状态回复中的版本号。
const Version = "0.1.0"

// ServeConf 包含 serve 子命令的配置
type ServeConf struct {
	Host           string
	Port           uint16
	MaxConnections int           // 0 表示不限制
	ReadTimeout    time.Duration // 0 表示不设置读超时
	WriteTimeout   time.Duration
	MetricsAddr    string // 为空则不启动 metrics 端口
}

// ProbeConf 包含 health 子命令的配置
type ProbeConf struct {
	Host    string
	Port    uint16
	Timeout time.Duration
}

// LogConf contains logging specific configuration
type LogConf struct {
	Level string
}
