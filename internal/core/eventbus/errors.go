package eventbus

import "errors"

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNilSubscriber 订阅者为 nil
	ErrNilSubscriber = errors.New("subscriber is nil")
	// ErrNilCallback 回调为 nil
	ErrNilCallback = errors.New("callback is nil")
)
