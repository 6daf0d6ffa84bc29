// Package config 提供 typedbus 的统一配置
//
// 本包采用与组件一一对应的分文件配置：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，带 Default*Config 和 Validate
//   - 支持从 JSON 加载和保存配置
//   - 支持预设配置（default/debug/throughput）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Executor.Kind = config.ExecutorPool
//	cfg.Executor.Workers = 8
//
//	// 从 JSON 文件加载
//	cfg, err := config.LoadFile("typedbus.json")
package config

import "errors"

// ErrInvalidConfig 配置无效
var ErrInvalidConfig = errors.New("invalid config")

// Config 是 typedbus 的完整配置结构
//
//   - Bus: 总线行为（失效观察者清理）
//   - Executor: 默认回调执行上下文
//   - Diagnostics: 失效观察者诊断
//   - Metrics: 指标收集
//   - Log: 日志输出
type Config struct {
	// Bus 总线配置
	Bus BusConfig `json:"bus"`

	// Executor 默认执行上下文配置
	Executor ExecutorConfig `json:"executor"`

	// Diagnostics 诊断配置
	Diagnostics DiagnosticsConfig `json:"diagnostics"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Bus:         DefaultBusConfig(),
		Executor:    DefaultExecutorConfig(),
		Diagnostics: DefaultDiagnosticsConfig(),
		Metrics:     DefaultMetricsConfig(),
		Log:         DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Bus.Validate(); err != nil {
		return err
	}
	if err := c.Executor.Validate(); err != nil {
		return err
	}
	if err := c.Diagnostics.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}
