// Package typedbus 提供进程内类型化事件总线
//
// 生产者发布强类型事件值，订阅者按事件类型注册回调，回调在各自选择的
// 执行上下文上运行。缓冲事件额外保留最近一次发布的值，晚到的订阅者
// 和直接查询无需等待下一次发布即可看到当前状态。
//
// # 快速开始
//
//	import "github.com/dep2p/go-typedbus"
//
//	type UserLoggedIn struct{ ID int }
//
//	// 1. 注册（订阅者以弱引用持有，不延长其生命周期）
//	err := typedbus.Register(view, func(e UserLoggedIn) {
//	    // 默认在进程级 main 队列上执行
//	})
//
//	// 2. 发布
//	typedbus.Post(UserLoggedIn{ID: 42})
//
//	// 3. 注销
//	typedbus.Unregister[UserLoggedIn](view)
//
// # 缓冲事件
//
// 嵌入 typedbus.Buffered 的事件类型为缓冲事件：
//
//	type Theme struct {
//	    typedbus.Buffered
//	    Name string
//	}
//
//	typedbus.Post(Theme{Name: "dark"})
//	theme, ok := typedbus.LastValue[Theme]()
//
// 新注册的观察者立即收到最后值。LastValue 的类型约束保证只能用于缓冲事件。
//
// # 执行上下文
//
// 回调执行位置由 Executor 决定：
//
//   - Main(): 进程级串行队列（默认）
//   - NewSerial / NewPool: 独立的串行队列或 worker 池
//   - Inline: 在发布方 goroutine 上同步执行
//   - Goroutine: 每个回调一个 goroutine
//
// 每次投递恰好执行一次；Post 不等待回调完成。
//
// # 隔离与依赖注入
//
// 所有函数默认作用于进程级 Default() Storage，WithStorage 切换到独立实例。
// 使用 fx 的应用通过 Module() 获得由配置构造的 Storage、执行上下文和指标。
//
// # 并发安全
//
// 所有函数均可从任意 goroutine 并发调用，回调内也可以注册、注销和发布。
package typedbus
