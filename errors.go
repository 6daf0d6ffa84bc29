package typedbus

import (
	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/internal/core/eventbus"
	"github.com/dep2p/go-typedbus/internal/core/executor"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 注册错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNilSubscriber 订阅者为 nil
	ErrNilSubscriber = eventbus.ErrNilSubscriber

	// ErrNilCallback 回调为 nil
	ErrNilCallback = eventbus.ErrNilCallback

	// ────────────────────────────────────────────────────────────────────────
	// 执行上下文错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrExecutorClosed 执行上下文已关闭
	ErrExecutorClosed = executor.ErrExecutorClosed

	// ErrUnknownExecutor 未知的执行上下文类型
	ErrUnknownExecutor = executor.ErrUnknownExecutor

	// ────────────────────────────────────────────────────────────────────────
	// 配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = config.ErrInvalidConfig
)
