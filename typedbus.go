package typedbus

import (
	"github.com/dep2p/go-typedbus/internal/core/eventbus"
	"github.com/dep2p/go-typedbus/internal/core/executor"
	"github.com/dep2p/go-typedbus/internal/core/metrics"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "typedbus " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Storage 总线注册表
	Storage = eventbus.Storage

	// Token 订阅者身份标识
	Token = eventbus.Token

	// StaleInfo 失效观察者诊断信息
	StaleInfo = eventbus.StaleInfo

	// StaleHandler 失效观察者回调
	StaleHandler = eventbus.StaleHandler

	// Executor 回调执行上下文
	Executor = pkgif.Executor

	// ExecutorFunc 函数适配器
	ExecutorFunc = pkgif.ExecutorFunc

	// BufferedEvent 缓冲事件标记接口
	BufferedEvent = pkgif.BufferedEvent

	// Buffered 可嵌入事件结构体的缓冲标记
	Buffered = pkgif.Buffered

	// Queue 串行队列或 worker 池
	Queue = executor.Queue

	// Inline 在调用方 goroutine 上直接执行
	Inline = executor.Inline

	// Goroutine 每个任务一个 goroutine
	Goroutine = executor.Goroutine

	// Stats 按事件类型统计的计数器
	Stats = metrics.Stats

	// StatsSnapshot 计数快照
	StatsSnapshot = metrics.Snapshot
)

// Default 返回进程级默认 Storage
func Default() *Storage { return eventbus.Default() }

// NewStorage 创建独立的 Storage
func NewStorage(opts ...StorageOption) *Storage { return eventbus.NewStorage(opts...) }

// TokenOf 返回订阅者身份标识
func TokenOf[S any](sub *S) Token { return eventbus.TokenOf(sub) }

// Main 返回进程级 main 队列
func Main() *Queue { return executor.Main() }

// NewSerial 创建独立串行队列
func NewSerial(name string) *Queue { return executor.NewSerial(name) }

// NewPool 创建 worker 池
func NewPool(name string, workers int) *Queue { return executor.NewPool(name, workers) }

// NewStats 创建计数器
func NewStats() *Stats { return metrics.NewStats() }

// ════════════════════════════════════════════════════════════════════════════
//                              注册与发布
// ════════════════════════════════════════════════════════════════════════════

// Register 为订阅者注册事件类型 E 的回调
//
// 订阅者以弱引用持有；cb 不应强引用 sub，需要访问订阅者时使用 Bind。
// E 为缓冲事件且已有最后值时，立即向新观察者投递该值。
// sub 或 cb 为 nil 时返回错误。
func Register[E, S any](sub *S, cb func(E), opts ...Option) error {
	o := applyOptions(opts)

	obs, err := eventbus.NewObserver(sub, o.executor, cb)
	if err != nil {
		return err
	}
	eventbus.BusFor[E](o.storage).Register(obs)
	return nil
}

// Bind 注册以订阅者为接收者的回调
//
// 回调执行前重新解析弱引用，订阅者已被回收时跳过。
func Bind[E, S any](sub *S, cb func(*S, E), opts ...Option) error {
	o := applyOptions(opts)

	obs, err := eventbus.NewBoundObserver(sub, o.executor, cb)
	if err != nil {
		return err
	}
	eventbus.BusFor[E](o.storage).Register(obs)
	return nil
}

// Post 发布事件
//
// 不等待回调完成。缓冲事件在通知前保存为最后值。
func Post[E any](evt E, opts ...Option) {
	eventbus.BusFor[E](applyOptions(opts).storage).Post(evt)
}

// Unregister 从事件类型 E 的总线移除订阅者的所有记录，返回移除数量
//
// sub 为 nil 或未注册时为空操作。已调度的回调不会被撤回。
func Unregister[E, S any](sub *S, opts ...Option) int {
	if sub == nil {
		return 0
	}
	return eventbus.BusFor[E](applyOptions(opts).storage).Unregister(eventbus.TokenOf(sub))
}

// UnregisterAll 从所有事件类型的总线移除订阅者，返回移除数量
func UnregisterAll[S any](sub *S, opts ...Option) int {
	if sub == nil {
		return 0
	}
	return applyOptions(opts).storage.UnregisterAll(eventbus.TokenOf(sub))
}

// LastValue 返回缓冲事件 E 最后一次发布的值
//
// 尚未发布时返回 false。
func LastValue[E BufferedEvent](opts ...Option) (E, bool) {
	return eventbus.BusFor[E](applyOptions(opts).storage).LastValue()
}
