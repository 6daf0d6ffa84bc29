// Package syncx 提供总线内部使用的同步容器
//
//   - Cell: 互斥保护的单值容器
//   - Sequence: 并发安全的有序序列，迭代使用快照
//
// 两者都只持有一把锁，且锁内只做 O(1) 或 O(n) 的内存操作，
// 从不在锁内调用外部回调。
package syncx

import "sync"

// Cell 互斥保护的单值容器
//
// Load 和 Store 互斥，并发读不会看到写了一半的值。
type Cell[V any] struct {
	mu sync.Mutex
	v  V
}

// NewCell 创建带初始值的 Cell
func NewCell[V any](v V) *Cell[V] {
	return &Cell[V]{v: v}
}

// Load 返回当前值
func (c *Cell[V]) Load() V {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Store 替换当前值
func (c *Cell[V]) Store(v V) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Swap 替换当前值并返回旧值
func (c *Cell[V]) Swap(v V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.v
	c.v = v
	return old
}

// Update 在锁内执行读-改-写
//
// fn 不得再访问同一个 Cell。
func (c *Cell[V]) Update(fn func(V) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = fn(c.v)
	return c.v
}
