//go:build !typedbus_debug

package eventbus

// assertionsEnabled 以 typedbus_debug 构建时为 true
const assertionsEnabled = false

// assertLive 非调试构建下不做任何事，诊断由 Storage 记录
func assertLive(string) {}
