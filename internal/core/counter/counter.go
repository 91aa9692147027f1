package counter

import "sync"

// Counter 是所有连接处理器共享的请求计数器。
// 每次读-改-写都在互斥锁内完成，锁内不做任何 I/O。
type Counter struct {
	mu    sync.Mutex
	value uint64
}

// New 创建一个从 0 开始的计数器。
func New() *Counter {
	return &Counter{}
}

// Increment 将计数加一并返回新值。
func (c *Counter) Increment() uint64 {
	c.mu.Lock()
	c.value++
	v := c.value
	c.mu.Unlock()
	return v
}

// Value 返回当前计数。
func (c *Counter) Value() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}
