package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "executor": {"kind": "pool", "workers": 8},
//	  "bus": {"prune_stale": false}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func ToJSON(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// LoadFile 从 JSON 文件加载并验证配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "default": 默认配置，不做修改
//   - "debug": 每次失效诊断都输出，debug 级别日志，inline 执行便于单步调试
//   - "throughput": pool 执行上下文，关闭失效日志
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "", "default":
		return nil
	case "debug":
		cfg.Log.Level = "debug"
		cfg.Executor.Kind = ExecutorInline
		cfg.Diagnostics.LogStale = true
		cfg.Diagnostics.StaleLogRate = 1000
		cfg.Diagnostics.StaleLogBurst = 1000
		cfg.Bus.PruneStale = false
		return nil
	case "throughput":
		cfg.Executor.Kind = ExecutorPool
		if cfg.Executor.Workers < 8 {
			cfg.Executor.Workers = 8
		}
		cfg.Diagnostics.LogStale = false
		cfg.Bus.PruneStale = true
		return nil
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
}

// CloneConfig 克隆配置
//
// 所有子配置都是值类型，浅拷贝即为深拷贝。
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	cloned := *cfg
	return &cloned
}
