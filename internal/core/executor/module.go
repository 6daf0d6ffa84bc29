package executor

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-typedbus/config"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 执行上下文依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Executor pkgif.Executor
}

// Module 返回 Fx 模块
//
// 按统一配置提供默认执行上下文，停止时关闭它（进程级 main 队列除外）。
func Module() fx.Option {
	return fx.Module("executor",
		fx.Provide(ProvideExecutor),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideExecutor 提供默认执行上下文
func ProvideExecutor(p Params) (Result, error) {
	cfg := config.DefaultExecutorConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Executor
	}

	exec, err := New(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("create executor: %w", err)
	}
	return Result{Executor: exec}, nil
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	Executor   pkgif.Executor
	UnifiedCfg *config.Config `optional:"true"`
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	timeout := config.DefaultExecutorConfig().DrainTimeout.Duration()
	if input.UnifiedCfg != nil {
		timeout = input.UnifiedCfg.Executor.DrainTimeout.Duration()
	}

	input.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return CloseAll(ctx, input.Executor)
		},
	})
}
