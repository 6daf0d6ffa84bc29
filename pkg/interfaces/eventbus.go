// Package interfaces 定义 typedbus 公共接口
//
// 本文件定义事件能力标记和执行上下文接口。
package interfaces

// BufferedEvent 缓冲事件标记
//
// 实现该接口的事件类型，其总线会保留最后一次发布的值：
// 新注册的观察者立即收到该值，LastValue 可随时查询。
// 未实现该接口的类型为普通事件，只投递给发布时已注册的观察者。
type BufferedEvent interface {
	BufferedEvent()
}

// Buffered 可嵌入事件结构体的缓冲标记
//
//	type ThemeChanged struct {
//	    interfaces.Buffered
//	    Name string
//	}
type Buffered struct{}

// BufferedEvent 实现 BufferedEvent 接口
func (Buffered) BufferedEvent() {}

// Executor 定义回调执行上下文
//
// Execute 接收一个无参任务，并保证它最终恰好执行一次
// （立即执行或稍后执行，在任意 goroutine 上）。
// 调用方不应假设任务在 Execute 返回前或返回后运行。
type Executor interface {
	Execute(task func())
}

// ExecutorFunc 函数适配器
type ExecutorFunc func(task func())

// Execute 实现 Executor 接口
func (f ExecutorFunc) Execute(task func()) { f(task) }
