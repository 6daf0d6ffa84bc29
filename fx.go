package typedbus

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/internal/core/eventbus"
	"github.com/dep2p/go-typedbus/internal/core/executor"
	"github.com/dep2p/go-typedbus/internal/core/metrics"
)

// Module 返回 typedbus 的 Fx 模块
//
// 提供 Executor、*Stats（指标关闭时为 nil）和 *Storage。
// 可选依赖：*config.Config、prometheus.Registerer、StaleHandler。
//
// 加载顺序（按依赖）：Executor → Metrics → EventBus
func Module() fx.Option {
	return fx.Module("typedbus",
		executor.Module(),
		metrics.Module,
		eventbus.Module(),
	)
}

// NewApp 构建 Fx 应用
//
// cfg 为 nil 时使用默认配置；fxLogger 为 nil 时不输出 Fx 内部日志。
func NewApp(cfg *config.Config, fxLogger *zap.Logger, extra ...fx.Option) (*fx.App, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if fxLogger == nil {
		fxLogger = zap.NewNop()
	}

	modules := []fx.Option{
		fx.Supply(cfg),
		Module(),
	}
	modules = append(modules, extra...)
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: fxLogger}
		}),
	)

	return fx.New(modules...), nil
}
