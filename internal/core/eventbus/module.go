package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/internal/core/metrics"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params Storage 依赖参数
type Params struct {
	fx.In

	UnifiedCfg   *config.Config   `optional:"true"`
	Executor     pkgif.Executor   `optional:"true"`
	Recorder     metrics.Recorder `optional:"true"`
	StaleHandler StaleHandler     `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Storage *Storage
}

// Module 返回 Fx 模块
//
// 提供独立的 Storage（不是进程级 Default），执行上下文、指标记录器
// 和失效回调从容器中可选注入。
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideStorage),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStorage 提供 Storage 实例
func ProvideStorage(p Params) Result {
	return Result{
		Storage: NewStorage(
			WithConfig(p.UnifiedCfg),
			WithExecutor(p.Executor),
			WithRecorder(p.Recorder),
			WithStaleHandler(p.StaleHandler),
		),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC      fx.Lifecycle
	Storage *Storage
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Debug("事件总线已就绪", "storage", input.Storage.ID().String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			// 停止前清理一次失效记录，已调度的回调由执行上下文负责排空
			pruned := input.Storage.Prune()
			logger.Debug("事件总线停止",
				"storage", input.Storage.ID().String(),
				"buses", input.Storage.Len(),
				"pruned", pruned)
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "类型化事件总线模块，提供按类型唯一的总线注册表、弱引用观察者和缓冲事件"
)
