package health

import (
	"fmt"
	"time"
)

// ConnectionFailure 表示连接在超时前被拒绝或不可达。
type ConnectionFailure struct {
	Addr  string
	Cause error
}

func (e *ConnectionFailure) Error() string {
	return fmt.Sprintf("Connection failed: %v", e.Cause)
}

func (e *ConnectionFailure) Unwrap() error { return e.Cause }

// TimeoutFailure 表示在配置的超时内连接未能建立。
type TimeoutFailure struct {
	Addr    string
	Timeout time.Duration
}

func (e *TimeoutFailure) Error() string {
	return fmt.Sprintf("Health check timed out after %s", e.Timeout)
}
