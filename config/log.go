package config

import (
	"fmt"

	"github.com/dep2p/go-typedbus/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别（debug/info/warn/error），可按组件配置：
	// "core/eventbus=debug,info"
	Level string `json:"level"`

	// Format 日志格式（text/json）
	Format string `json:"format"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: log.FormatText,
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	if _, err := log.ParseLevels(c.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Format {
	case "", log.FormatText, log.FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Format)
	}
}
