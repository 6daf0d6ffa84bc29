package eventbus

import (
	"fmt"
	"weak"

	"github.com/google/uuid"

	"github.com/dep2p/go-typedbus/internal/core/executor"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// Observer 事件观察者
//
// 持有订阅者的弱引用、身份标识、回调和目标执行上下文。
// 创建后不可变，可被多个 goroutine 并发 Post。
type Observer[E any] struct {
	id      uuid.UUID
	token   Token
	alive   func() bool
	deliver func(E)
	exec    pkgif.Executor
	label   string
}

// NewObserver 创建观察者
//
// cb 不应强引用 sub，否则订阅者永远不会被回收。
// exec 为 nil 时使用进程级 main 队列。
func NewObserver[E, S any](sub *S, exec pkgif.Executor, cb func(E)) (*Observer[E], error) {
	if sub == nil {
		return nil, ErrNilSubscriber
	}
	if cb == nil {
		return nil, ErrNilCallback
	}

	wp := weak.Make(sub)
	return &Observer[E]{
		id:      uuid.New(),
		token:   Token{p: wp},
		alive:   func() bool { return wp.Value() != nil },
		deliver: cb,
		exec:    orMain(exec),
		label:   fmt.Sprintf("%T", sub),
	}, nil
}

// NewBoundObserver 创建绑定订阅者的观察者
//
// 回调执行前在目标执行上下文上重新解析弱引用，并把订阅者作为参数传入；
// 若订阅者在调度之后、执行之前被回收，本次回调直接跳过。
func NewBoundObserver[E, S any](sub *S, exec pkgif.Executor, cb func(*S, E)) (*Observer[E], error) {
	if sub == nil {
		return nil, ErrNilSubscriber
	}
	if cb == nil {
		return nil, ErrNilCallback
	}

	wp := weak.Make(sub)
	return &Observer[E]{
		id:    uuid.New(),
		token: Token{p: wp},
		alive: func() bool { return wp.Value() != nil },
		deliver: func(evt E) {
			if s := wp.Value(); s != nil {
				cb(s, evt)
			}
		},
		exec:  orMain(exec),
		label: fmt.Sprintf("%T", sub),
	}, nil
}

// ID 返回观察者 ID（用于日志关联）
func (o *Observer[E]) ID() uuid.UUID { return o.id }

// Token 返回订阅者身份标识
func (o *Observer[E]) Token() Token { return o.token }

// Label 返回订阅者类型名
func (o *Observer[E]) Label() string { return o.label }

// Alive 订阅者是否仍然存活
func (o *Observer[E]) Alive() bool { return o.alive() }

// Post 投递事件
//
// 订阅者已被回收时触发失效断言并返回 false，不投递；
// 否则把回调交给执行上下文后立即返回 true，回调的 panic 不会传回这里。
func (o *Observer[E]) Post(evt E) bool {
	if !o.alive() {
		assertLive(o.label)
		return false
	}

	deliver := o.deliver
	o.exec.Execute(func() { deliver(evt) })
	return true
}

func orMain(exec pkgif.Executor) pkgif.Executor {
	if exec == nil {
		return executor.Main()
	}
	return exec
}
