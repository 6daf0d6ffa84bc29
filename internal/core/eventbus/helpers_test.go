package eventbus

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-typedbus/internal/core/executor"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// ============================================================================
// 测试事件与订阅者
// ============================================================================

// Ping 普通事件
type Ping struct{ N int }

// Status 缓冲事件
type Status struct {
	pkgif.Buffered
	Text string
}

// Pair 缓冲事件，两个字段总是相等，用于检测写了一半的值
type Pair struct {
	pkgif.Buffered
	A, B int
}

// subscriber 测试订阅者（非零大小且含指针，避免 tiny 分配合并）
type subscriber struct {
	name string
}

func newSubscriber(name string) *subscriber {
	return &subscriber{name: name}
}

// inline 同步执行上下文，测试中保证回调在 Post 返回前运行
var inline pkgif.Executor = executor.Inline{}

// recorder 线程安全的回调记录器
type recorder[E any] struct {
	mu  sync.Mutex
	got []E
}

func (r *recorder[E]) add(e E) {
	r.mu.Lock()
	r.got = append(r.got, e)
	r.mu.Unlock()
}

func (r *recorder[E]) events() []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]E, len(r.got))
	copy(out, r.got)
	return out
}

func (r *recorder[E]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

// mustObserver 创建观察者，失败时终止测试
func mustObserver[E, S any](t *testing.T, sub *S, exec pkgif.Executor, cb func(E)) *Observer[E] {
	t.Helper()
	o, err := NewObserver(sub, exec, cb)
	require.NoError(t, err)
	return o
}

// registerTransient 注册一个随即不可达的订阅者，返回其观察者
//
// 单独成函数，保证订阅者指针不留在调用方栈上。
func registerTransient[E any](t *testing.T, bus *Bus[E], cb func(E)) *Observer[E] {
	t.Helper()
	sub := newSubscriber("transient")
	o := mustObserver(t, sub, inline, cb)
	bus.Register(o)
	return o
}

// waitCollected 反复 GC 直到观察者的订阅者被回收
func waitCollected[E any](t *testing.T, o *Observer[E]) {
	t.Helper()
	require.Eventually(t, func() bool {
		runtime.GC()
		return !o.Alive()
	}, 2*time.Second, 10*time.Millisecond, "subscriber was not collected")
}

// skipIfAsserting 调试构建下失效投递会 panic，相关测试改由 assert_debug_test.go 覆盖
func skipIfAsserting(t *testing.T) {
	t.Helper()
	if assertionsEnabled {
		t.Skip("stale delivery panics under typedbus_debug")
	}
}
