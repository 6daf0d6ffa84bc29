package config

import "fmt"

// DiagnosticsConfig 失效观察者诊断配置
//
// 观察者对象被回收但未注销时，投递会被跳过并产生诊断。
// 以 typedbus_debug 构建标签编译时诊断直接 panic；
// 否则按这里的限流参数输出 Warn 日志。
type DiagnosticsConfig struct {
	// LogStale 是否输出失效观察者日志
	LogStale bool `json:"log_stale"`

	// StaleLogRate 每秒最多输出的失效观察者日志条数
	StaleLogRate float64 `json:"stale_log_rate"`

	// StaleLogBurst 日志限流突发量
	StaleLogBurst int `json:"stale_log_burst"`
}

// DefaultDiagnosticsConfig 返回默认诊断配置
func DefaultDiagnosticsConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		LogStale:      true,
		StaleLogRate:  1,
		StaleLogBurst: 10,
	}
}

// Validate 验证诊断配置
func (c DiagnosticsConfig) Validate() error {
	if !c.LogStale {
		return nil
	}
	if c.StaleLogRate <= 0 {
		return fmt.Errorf("%w: diagnostics.stale_log_rate must be positive", ErrInvalidConfig)
	}
	if c.StaleLogBurst <= 0 {
		return fmt.Errorf("%w: diagnostics.stale_log_burst must be positive", ErrInvalidConfig)
	}
	return nil
}
