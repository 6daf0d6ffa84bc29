package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dep2p/go-typedbus/config"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// 环境变量（均使用 TYPEDBUS_ 前缀）
const (
	envPrefix   = "TYPEDBUS_"
	envPreset   = "PRESET"
	envExecutor = "EXECUTOR"
	envLogLevel = "LOG_LEVEL"
)

// buildConfig 构建最终配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（TYPEDBUS_* 前缀）
//  3. 预设
//  4. 配置文件或默认值
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	presetName := *preset
	if v := os.Getenv(envPrefix + envPreset); v != "" && !isFlagSet("preset") {
		presetName = v
	}
	if err := config.ApplyPreset(cfg, presetName); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if *executor != "" {
		cfg.Executor.Kind = *executor
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖配置
//
//   - TYPEDBUS_EXECUTOR: 执行上下文类型
//   - TYPEDBUS_LOG_LEVEL: 日志级别
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv(envPrefix + envExecutor); v != "" {
		cfg.Executor.Kind = v
	}
	if v := os.Getenv(envPrefix + envLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
