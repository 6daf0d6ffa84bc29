package metrics

import (
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

// Recorder 总线指标记录接口
//
// eventType 为事件类型的限定名称，见 TypeName。
type Recorder interface {
	Registered(eventType string)
	Unregistered(eventType string, n int)
	Posted(eventType string)
	Delivered(eventType string)
	Stale(eventType string)
	Pruned(eventType string, n int)
}

// TypeName 返回事件类型的限定名称，用作计数器键
//
// 具名类型带完整包路径（如 example.com/app/event.Changed），
// 不同包里的同名类型不会合并到同一组计数器。
func TypeName(t reflect.Type) string {
	switch {
	case t == nil:
		return "<nil>"
	case t.Name() != "" && t.PkgPath() != "":
		return t.PkgPath() + "." + t.Name()
	case t.Kind() == reflect.Pointer:
		return "*" + TypeName(t.Elem())
	default:
		return t.String()
	}
}

// Nop 不记录任何指标
type Nop struct{}

func (Nop) Registered(string)        {}
func (Nop) Unregistered(string, int) {}
func (Nop) Posted(string)            {}
func (Nop) Delivered(string)         {}
func (Nop) Stale(string)             {}
func (Nop) Pruned(string, int)       {}

// Snapshot 计数器快照
type Snapshot struct {
	Registered   int64 `json:"registered"`
	Unregistered int64 `json:"unregistered"`
	Posted       int64 `json:"posted"`
	Delivered    int64 `json:"delivered"`
	Stale        int64 `json:"stale"`
	Pruned       int64 `json:"pruned"`
}

// counters 单个事件类型的计数器
type counters struct {
	registered   atomic.Int64
	unregistered atomic.Int64
	posted       atomic.Int64
	delivered    atomic.Int64
	stale        atomic.Int64
	pruned       atomic.Int64
}

func (c *counters) snapshot() Snapshot {
	return Snapshot{
		Registered:   c.registered.Load(),
		Unregistered: c.unregistered.Load(),
		Posted:       c.posted.Load(),
		Delivered:    c.delivered.Load(),
		Stale:        c.stale.Load(),
		Pruned:       c.pruned.Load(),
	}
}

// Stats 按事件类型统计的计数器集合
type Stats struct {
	mu     sync.RWMutex
	byType map[string]*counters
}

// 确保 Stats 实现 Recorder 接口
var _ Recorder = (*Stats)(nil)

// NewStats 创建计数器集合
func NewStats() *Stats {
	return &Stats{byType: make(map[string]*counters)}
}

// get 获取或创建事件类型的计数器
func (s *Stats) get(eventType string) *counters {
	s.mu.RLock()
	c, ok := s.byType[eventType]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.byType[eventType]; ok {
		return c
	}
	c = &counters{}
	s.byType[eventType] = c
	return c
}

// Registered 记录注册
func (s *Stats) Registered(eventType string) { s.get(eventType).registered.Add(1) }

// Unregistered 记录注销移除的观察者数
func (s *Stats) Unregistered(eventType string, n int) {
	if n > 0 {
		s.get(eventType).unregistered.Add(int64(n))
	}
}

// Posted 记录发布
func (s *Stats) Posted(eventType string) { s.get(eventType).posted.Add(1) }

// Delivered 记录投递
func (s *Stats) Delivered(eventType string) { s.get(eventType).delivered.Add(1) }

// Stale 记录失效观察者
func (s *Stats) Stale(eventType string) { s.get(eventType).stale.Add(1) }

// Pruned 记录清理的失效记录数
func (s *Stats) Pruned(eventType string, n int) {
	if n > 0 {
		s.get(eventType).pruned.Add(int64(n))
	}
}

// For 返回某个事件类型的快照；未出现过的类型返回零值
func (s *Stats) For(eventType string) Snapshot {
	s.mu.RLock()
	c, ok := s.byType[eventType]
	s.mu.RUnlock()
	if !ok {
		return Snapshot{}
	}
	return c.snapshot()
}

// ByType 返回所有事件类型的快照
func (s *Stats) ByType() map[string]Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Snapshot, len(s.byType))
	for typ, c := range s.byType {
		out[typ] = c.snapshot()
	}
	return out
}

// EventTypes 返回已出现的事件类型（有序）
func (s *Stats) EventTypes() []string {
	s.mu.RLock()
	types := make([]string, 0, len(s.byType))
	for typ := range s.byType {
		types = append(types, typ)
	}
	s.mu.RUnlock()

	sort.Strings(types)
	return types
}

// Totals 返回所有事件类型的合计
func (s *Stats) Totals() Snapshot {
	var total Snapshot
	for _, snap := range s.ByType() {
		total.Registered += snap.Registered
		total.Unregistered += snap.Unregistered
		total.Posted += snap.Posted
		total.Delivered += snap.Delivered
		total.Stale += snap.Stale
		total.Pruned += snap.Pruned
	}
	return total
}

// Reset 清空所有统计
func (s *Stats) Reset() {
	s.mu.Lock()
	s.byType = make(map[string]*counters)
	s.mu.Unlock()
}
