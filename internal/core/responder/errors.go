package responder

import (
	"errors"
	"fmt"
)

// ErrNoRemoteAddr is wrapped by AddressError when the peer address is unknown.
var ErrNoRemoteAddr = errors.New("remote address unavailable")

// BindError 表示监听地址无效或已被占用，启动因此失败。
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind to %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// AcceptError 表示 accept 调用失败。只有监听 socket 本身失效时才会被 Serve 返回。
type AcceptError struct {
	Err error
}

func (e *AcceptError) Error() string {
	return fmt.Sprintf("failed to accept connection: %v", e.Err)
}

func (e *AcceptError) Unwrap() error { return e.Err }

// AddressError 表示无法获取对端地址。
type AddressError struct {
	Err error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("failed to get peer address: %v", e.Err)
}

func (e *AddressError) Unwrap() error { return e.Err }

// ReadError 表示从连接读取失败。
type ReadError struct {
	Remote string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read from %s: %v", e.Remote, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError 表示回复未能完整写出。
type WriteError struct {
	Remote string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write response to %s: %v", e.Remote, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
