//go:build typedbus_debug

package eventbus

import "fmt"

// assertionsEnabled 以 typedbus_debug 构建时为 true
const assertionsEnabled = true

// assertLive 观察者未注销但已被回收：开发期硬中断
func assertLive(label string) {
	panic(fmt.Sprintf("typedbus: observer %s was reclaimed without unregistering", label))
}
