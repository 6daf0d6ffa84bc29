package syncx

import "sync"

// Sequence 并发安全的有序序列
//
// 插入顺序即迭代顺序。Snapshot 返回时间点副本，
// 调用方可以在不持锁的情况下遍历并执行回调。
type Sequence[E any] struct {
	mu    sync.RWMutex
	items []E
}

// NewSequence 创建序列
func NewSequence[E any](items ...E) *Sequence[E] {
	s := &Sequence[E]{}
	if len(items) > 0 {
		s.items = append(make([]E, 0, len(items)), items...)
	}
	return s
}

// Append 追加到末尾，对之后的快照可见
func (s *Sequence[E]) Append(e E) {
	s.mu.Lock()
	s.items = append(s.items, e)
	s.mu.Unlock()
}

// ReplaceAll 原子替换整个序列
func (s *Sequence[E]) ReplaceAll(items []E) {
	cp := make([]E, len(items))
	copy(cp, items)

	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
}

// RemoveIf 在同一临界区内过滤并替换序列，返回移除的元素个数
//
// 与 Snapshot + ReplaceAll 不同，这里不会丢失并发 Append 的元素。
// pred 在锁内调用，不得访问同一个序列。
func (s *Sequence[E]) RemoveIf(pred func(E) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]E, 0, len(s.items))
	for _, e := range s.items {
		if !pred(e) {
			kept = append(kept, e)
		}
	}

	removed := len(s.items) - len(kept)
	if removed > 0 {
		s.items = kept
	}
	return removed
}

// Snapshot 返回当前序列的副本
func (s *Sequence[E]) Snapshot() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]E, len(s.items))
	copy(cp, s.items)
	return cp
}

// Range 按顺序遍历快照，fn 返回 false 时停止
func (s *Sequence[E]) Range(fn func(E) bool) {
	for _, e := range s.Snapshot() {
		if !fn(e) {
			return
		}
	}
}

// Len 返回元素个数
func (s *Sequence[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
