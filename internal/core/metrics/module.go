package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Result Metrics 模块输出
type Result struct {
	fx.Out

	Stats    *Stats
	Recorder Recorder
}

// Module 是 metrics 的 Fx 模块
//
// 未启用时 Stats 为 nil，Recorder 为 Nop。
// 注入了 prometheus.Registerer 时自动注册 Collector。
var Module = fx.Module("metrics",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建指标收集器
func NewFromParams(p Params) (Result, error) {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}
	if !cfg.Enabled {
		logger.Debug("指标收集未启用")
		return Result{Recorder: Nop{}}, nil
	}

	stats := NewStats()
	if p.Registerer != nil {
		if err := p.Registerer.Register(NewCollector(cfg.Namespace, stats)); err != nil {
			return Result{}, fmt.Errorf("register metrics collector: %w", err)
		}
	}
	return Result{Stats: stats, Recorder: stats}, nil
}
