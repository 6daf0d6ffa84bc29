package eventbus

import (
	"reflect"

	"github.com/dep2p/go-typedbus/internal/core/metrics"
	"github.com/dep2p/go-typedbus/internal/util/syncx"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

var bufferedEventType = reflect.TypeFor[pkgif.BufferedEvent]()

// anyBus 类型擦除后的总线，供 Storage 跨类型操作
type anyBus interface {
	EventType() reflect.Type
	Buffered() bool
	Len() int
	Unregister(tok Token) int
	Prune() int
}

// lastValue 缓冲事件的最后一个值
type lastValue[E any] struct {
	v  E
	ok bool
}

// Bus 单个事件类型的总线
//
// 通过 BusFor 获取，不直接创建。
type Bus[E any] struct {
	typ      reflect.Type
	name     string
	buffered bool

	observers *syncx.Sequence[*Observer[E]]
	last      *syncx.Cell[lastValue[E]] // 仅缓冲事件

	env *env
}

var _ anyBus = (*Bus[int])(nil)

func newBus[E any](env *env) *Bus[E] {
	typ := reflect.TypeFor[E]()
	b := &Bus[E]{
		typ:       typ,
		name:      metrics.TypeName(typ),
		buffered:  typ.Implements(bufferedEventType),
		observers: syncx.NewSequence[*Observer[E]](),
		env:       env,
	}
	if b.buffered {
		b.last = syncx.NewCell(lastValue[E]{})
	}
	return b
}

// EventType 返回事件类型
func (b *Bus[E]) EventType() reflect.Type { return b.typ }

// Buffered 是否为缓冲事件总线
func (b *Bus[E]) Buffered() bool { return b.buffered }

// Len 返回观察者记录数（包含尚未清理的失效记录）
func (b *Bus[E]) Len() int { return b.observers.Len() }

// Register 注册观察者
//
// 缓冲事件且已有最后值时，返回前立即向该观察者投递最后值
// （回调本身仍在其执行上下文上运行，可能稍后才执行）。
//
// 观察者先加入列表再读取最后值。与 Post 并发时，新观察者可能先从
// 该次发布的快照收到新值，随后又收到补发的旧值。
func (b *Bus[E]) Register(o *Observer[E]) {
	if o == nil {
		return
	}

	b.observers.Append(o)
	b.env.recorder.Registered(b.name)

	if b.buffered {
		if lv := b.last.Load(); lv.ok {
			b.deliver(o, lv.v)
		}
	}
}

// Post 发布事件
//
// 缓冲事件先存储再通知。之后对观察者快照按注册顺序逐个投递；
// 发布过程中新注册的观察者不在本次快照内。
func (b *Bus[E]) Post(evt E) {
	if b.buffered {
		b.last.Store(lastValue[E]{v: evt, ok: true})
	}
	b.env.recorder.Posted(b.name)

	stale := 0
	for _, o := range b.observers.Snapshot() {
		if !b.deliver(o, evt) {
			stale++
		}
	}

	if stale > 0 && b.env.pruneStale {
		b.Prune()
	}
}

// deliver 向单个观察者投递，失效时记录诊断
func (b *Bus[E]) deliver(o *Observer[E], evt E) bool {
	if o.Post(evt) {
		b.env.recorder.Delivered(b.name)
		return true
	}
	b.env.reportStale(b.typ, o.id, o.label)
	return false
}

// Unregister 移除身份标识匹配的所有观察者记录，返回移除数量
//
// 零值 Token（nil 订阅者）为空操作。
func (b *Bus[E]) Unregister(tok Token) int {
	if tok.IsZero() {
		return 0
	}

	n := b.observers.RemoveIf(func(o *Observer[E]) bool {
		return o.token == tok
	})
	if n > 0 {
		b.env.recorder.Unregistered(b.name, n)
		logger.Debug("观察者已注销", "event", b.name, "removed", n)
	}
	return n
}

// Prune 移除订阅者已被回收的观察者记录，返回移除数量
func (b *Bus[E]) Prune() int {
	n := b.observers.RemoveIf(func(o *Observer[E]) bool {
		return !o.alive()
	})
	if n > 0 {
		b.env.recorder.Pruned(b.name, n)
		logger.Debug("已清理失效观察者", "event", b.name, "pruned", n)
	}
	return n
}

// LastValue 返回最后一次发布的值
//
// 普通事件总线或尚未发布时返回 false。
func (b *Bus[E]) LastValue() (E, bool) {
	if !b.buffered {
		var zero E
		return zero, false
	}
	lv := b.last.Load()
	return lv.v, lv.ok
}
