package eventbus

import (
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/internal/core/executor"
	"github.com/dep2p/go-typedbus/internal/core/metrics"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// ============================================================================
// Storage 实现
// ============================================================================

// Storage 总线注册表
//
// 每个事件类型恰好对应一个 Bus，首次使用时创建，与 Storage 同生命周期。
type Storage struct {
	mu    sync.Mutex
	buses map[reflect.Type]anyBus

	env *env
}

var defaultStorage = sync.OnceValue(func() *Storage {
	return NewStorage()
})

// Default 返回进程级默认 Storage
//
// 首次调用时创建，随进程退出，没有显式销毁接口。
func Default() *Storage {
	return defaultStorage()
}

// NewStorage 创建独立的 Storage
func NewStorage(opts ...Option) *Storage {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	e := &env{
		storageID:  uuid.New(),
		executor:   o.executor,
		recorder:   o.recorder,
		pruneStale: o.pruneStale,
		onStale:    o.onStale,
	}
	if e.executor == nil {
		e.executor = executor.Main()
	}
	if e.recorder == nil {
		e.recorder = metrics.Nop{}
	}
	if o.logStale {
		e.limiter = rate.NewLimiter(rate.Limit(o.staleLogRate), o.staleLogBurst)
	}

	return &Storage{
		buses: make(map[reflect.Type]anyBus),
		env:   e,
	}
}

// BusFor 返回 Storage 中事件类型 E 的总线，不存在时创建
//
// 查找与创建在同一临界区内完成，并发调用总是得到同一个实例。
func BusFor[E any](s *Storage) *Bus[E] {
	typ := reflect.TypeFor[E]()

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buses[typ]; ok {
		return b.(*Bus[E])
	}

	b := newBus[E](s.env)
	s.buses[typ] = b
	logger.Debug("创建事件总线", "event", b.name, "buffered", b.buffered)
	return b
}

// ID 返回 Storage ID
func (s *Storage) ID() uuid.UUID { return s.env.storageID }

// Executor 返回默认执行上下文
func (s *Storage) Executor() pkgif.Executor { return s.env.executor }

// Len 返回已创建的总线数
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buses)
}

// EventTypes 返回已创建总线的事件类型，按名称排序
func (s *Storage) EventTypes() []reflect.Type {
	buses := s.snapshot()
	types := make([]reflect.Type, 0, len(buses))
	for _, b := range buses {
		types = append(types, b.EventType())
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// UnregisterAll 从所有总线移除该订阅者，返回移除的记录总数
func (s *Storage) UnregisterAll(tok Token) int {
	if tok.IsZero() {
		return 0
	}
	n := 0
	for _, b := range s.snapshot() {
		n += b.Unregister(tok)
	}
	return n
}

// Prune 清理所有总线中的失效观察者，返回移除的记录总数
func (s *Storage) Prune() int {
	n := 0
	for _, b := range s.snapshot() {
		n += b.Prune()
	}
	return n
}

// snapshot 在锁外操作各总线，避免与 BusFor 形成锁嵌套
func (s *Storage) snapshot() []anyBus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]anyBus, 0, len(s.buses))
	for _, b := range s.buses {
		out = append(out, b)
	}
	return out
}

// ============================================================================
// 选项
// ============================================================================

// Option Storage 选项
type Option func(*options)

type options struct {
	executor      pkgif.Executor
	recorder      metrics.Recorder
	pruneStale    bool
	onStale       StaleHandler
	logStale      bool
	staleLogRate  float64
	staleLogBurst int
}

func defaultOptions() *options {
	bus := config.DefaultBusConfig()
	diag := config.DefaultDiagnosticsConfig()
	return &options{
		pruneStale:    bus.PruneStale,
		logStale:      diag.LogStale,
		staleLogRate:  diag.StaleLogRate,
		staleLogBurst: diag.StaleLogBurst,
	}
}

// WithExecutor 设置默认执行上下文（默认进程级 main 队列）
func WithExecutor(exec pkgif.Executor) Option {
	return func(o *options) { o.executor = exec }
}

// WithRecorder 设置指标记录器
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithPruneStale 设置发布遇到失效记录后是否顺带清理
func WithPruneStale(prune bool) Option {
	return func(o *options) { o.pruneStale = prune }
}

// WithStaleHandler 设置失效观察者回调
func WithStaleHandler(h StaleHandler) Option {
	return func(o *options) { o.onStale = h }
}

// WithStaleLog 设置失效日志限流；rate <= 0 关闭失效日志
func WithStaleLog(perSecond float64, burst int) Option {
	return func(o *options) {
		o.logStale = perSecond > 0
		o.staleLogRate = perSecond
		o.staleLogBurst = burst
	}
}

// WithConfig 应用统一配置中的总线与诊断配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		o.pruneStale = cfg.Bus.PruneStale
		o.logStale = cfg.Diagnostics.LogStale
		o.staleLogRate = cfg.Diagnostics.StaleLogRate
		o.staleLogBurst = cfg.Diagnostics.StaleLogBurst
	}
}
