package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-typedbus/config"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
	"github.com/dep2p/go-typedbus/pkg/lib/log"
)

var logger = log.Logger("core/executor")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrExecutorClosed 执行上下文已关闭
	ErrExecutorClosed = errors.New("executor closed")
	// ErrUnknownExecutor 未知的执行上下文类型
	ErrUnknownExecutor = errors.New("unknown executor kind")
)

// Closer 可关闭的执行上下文
type Closer interface {
	// Close 停止接收新任务并等待已排队任务执行完毕
	Close(ctx context.Context) error
}

// ============================================================================
// Inline / Goroutine
// ============================================================================

// Inline 在调用方 goroutine 上直接执行任务
//
// 适用于测试和不关心调用线程的观察者。回调中的 panic 同样被 recover。
type Inline struct{}

// Execute 实现 Executor 接口
func (Inline) Execute(task func()) { run("inline", task) }

// Goroutine 每个任务启动一个新 goroutine
type Goroutine struct{}

// Execute 实现 Executor 接口
func (Goroutine) Execute(task func()) { go run("goroutine", task) }

// run 执行任务并吞掉 panic
func run(name string, task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("回调执行 panic",
				"executor", name,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	task()
}

// ============================================================================
// 构造
// ============================================================================

// New 按配置创建执行上下文
//
// main 返回进程级共享队列，其余类型返回新实例。
// serial/pool 返回的实例实现 Closer，调用方负责关闭。
func New(cfg config.ExecutorConfig) (pkgif.Executor, error) {
	switch cfg.Kind {
	case "", config.ExecutorMain:
		return Main(), nil
	case config.ExecutorSerial:
		return NewSerial(cfg.Name), nil
	case config.ExecutorPool:
		if cfg.Workers <= 0 {
			return nil, fmt.Errorf("%w: pool requires positive workers, got %d", config.ErrInvalidConfig, cfg.Workers)
		}
		return NewPool(cfg.Name, cfg.Workers), nil
	case config.ExecutorGoroutine:
		return Goroutine{}, nil
	case config.ExecutorInline:
		return Inline{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExecutor, cfg.Kind)
	}
}

// CloseAll 并发关闭所有可关闭的执行上下文
//
// 不可关闭的执行上下文被忽略；ErrExecutorClosed 不视为错误。
func CloseAll(ctx context.Context, execs ...pkgif.Executor) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, e := range execs {
		c, ok := e.(Closer)
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := c.Close(ctx); err != nil && !errors.Is(err, ErrExecutorClosed) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
