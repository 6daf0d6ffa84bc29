package config

import (
	"fmt"
	"time"
)

// 执行上下文类型
const (
	// ExecutorMain 进程级串行队列（默认）
	ExecutorMain = "main"
	// ExecutorSerial 独立串行队列
	ExecutorSerial = "serial"
	// ExecutorPool 固定数量 worker 的队列
	ExecutorPool = "pool"
	// ExecutorGoroutine 每个任务一个 goroutine
	ExecutorGoroutine = "goroutine"
	// ExecutorInline 在调用方 goroutine 上直接执行
	ExecutorInline = "inline"
)

// ExecutorConfig 默认执行上下文配置
type ExecutorConfig struct {
	// Kind 执行上下文类型（main/serial/pool/goroutine/inline）
	Kind string `json:"kind"`

	// Name 队列名称，用于日志（serial/pool）
	Name string `json:"name,omitempty"`

	// Workers worker 数量，仅 pool 使用
	Workers int `json:"workers,omitempty"`

	// DrainTimeout 关闭时等待队列排空的最长时间
	DrainTimeout Duration `json:"drain_timeout"`
}

// DefaultExecutorConfig 返回默认执行上下文配置
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		Kind:         ExecutorMain,
		Name:         "typedbus",
		Workers:      4,
		DrainTimeout: Duration(5 * time.Second),
	}
}

// Validate 验证执行上下文配置
func (c ExecutorConfig) Validate() error {
	switch c.Kind {
	case ExecutorMain, ExecutorSerial, ExecutorGoroutine, ExecutorInline:
	case ExecutorPool:
		if c.Workers <= 0 {
			return fmt.Errorf("%w: executor.workers must be positive for pool, got %d", ErrInvalidConfig, c.Workers)
		}
	default:
		return fmt.Errorf("%w: unknown executor kind %q", ErrInvalidConfig, c.Kind)
	}
	if c.DrainTimeout < 0 {
		return fmt.Errorf("%w: executor.drain_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
