package typedbus

import (
	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/internal/core/eventbus"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// ════════════════════════════════════════════════════════════════════════════
//                              调用选项
// ════════════════════════════════════════════════════════════════════════════

// Option 单次调用选项
type Option func(*callOptions)

// callOptions 内部选项结构
type callOptions struct {
	// 目标 Storage，nil 表示 Default()
	storage *Storage

	// 回调执行上下文，nil 表示 Storage 的默认执行上下文
	executor Executor
}

func applyOptions(opts []Option) *callOptions {
	o := &callOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.storage == nil {
		o.storage = eventbus.Default()
	}
	if o.executor == nil {
		o.executor = o.storage.Executor()
	}
	return o
}

// WithStorage 指定 Storage（默认进程级 Default()）
func WithStorage(s *Storage) Option {
	return func(o *callOptions) { o.storage = s }
}

// WithExecutor 指定回调执行上下文，仅 Register / Bind 使用
//
// 默认使用 Storage 的执行上下文，未配置时为进程级 main 队列。
func WithExecutor(exec Executor) Option {
	return func(o *callOptions) { o.executor = exec }
}

// ════════════════════════════════════════════════════════════════════════════
//                              Storage 选项
// ════════════════════════════════════════════════════════════════════════════

// StorageOption Storage 构造选项
type StorageOption = eventbus.Option

// WithDefaultExecutor 设置 Storage 的默认执行上下文
func WithDefaultExecutor(exec pkgif.Executor) StorageOption {
	return eventbus.WithExecutor(exec)
}

// WithPruneStale 设置发布遇到失效观察者后是否顺带清理（默认开启）
func WithPruneStale(prune bool) StorageOption {
	return eventbus.WithPruneStale(prune)
}

// WithStaleHandler 设置失效观察者回调
func WithStaleHandler(h StaleHandler) StorageOption {
	return eventbus.WithStaleHandler(h)
}

// WithStaleLog 设置失效日志限流；perSecond <= 0 关闭失效日志
func WithStaleLog(perSecond float64, burst int) StorageOption {
	return eventbus.WithStaleLog(perSecond, burst)
}

// WithStats 把计数写入 stats
func WithStats(stats *Stats) StorageOption {
	if stats == nil {
		return eventbus.WithRecorder(nil)
	}
	return eventbus.WithRecorder(stats)
}

// WithConfig 应用统一配置中的总线与诊断配置
func WithConfig(cfg *config.Config) StorageOption {
	return eventbus.WithConfig(cfg)
}
