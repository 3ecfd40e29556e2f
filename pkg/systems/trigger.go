package systems

import "sync"

// Trigger 边沿触发器
//
// 展示层用一个布尔信号请求爆发：信号从 false 变为 true 时触发一次，
// 保持 true 不会重复触发，调用方需要先复位再次置位。
type Trigger struct {
	mu   sync.Mutex
	last bool
}

// Observe 记录当前电平，上升沿时返回 true
func (t *Trigger) Observe(level bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	fired := level && !t.last
	t.last = level
	return fired
}

// Reset forgets the last observed level.
func (t *Trigger) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = false
}
