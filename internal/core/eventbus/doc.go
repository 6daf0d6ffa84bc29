// Package eventbus 实现进程内类型化事件总线
//
// 三个核心部件：
//   - Storage: 按事件类型索引的总线注册表，每个 (Storage, E) 恰好一个 Bus[E]
//   - Bus[E]: 持有观察者序列，缓冲事件额外持有最后一次发布的值
//   - Observer[E]: 弱引用订阅者，发布时检查存活并把回调交给执行上下文
//
// # 快速开始
//
//	storage := eventbus.NewStorage()
//	bus := eventbus.BusFor[UserLoggedIn](storage)
//
//	obs, _ := eventbus.NewObserver(view, executor.Main(), func(e UserLoggedIn) {
//	    // 处理事件
//	})
//	bus.Register(obs)
//	bus.Post(UserLoggedIn{ID: 42})
//	bus.Unregister(eventbus.TokenOf(view))
//
// # 普通事件与缓冲事件
//
// 实现 interfaces.BufferedEvent（通常通过嵌入 interfaces.Buffered）的事件类型
// 为缓冲事件：总线在通知观察者之前保存该值，新注册的观察者立即收到它，
// LastValue 可随时查询。其余类型为普通事件，只投递给发布时已注册的观察者。
//
// 方法必须在值接收者上实现，指针接收者只会让 *E 成为缓冲事件。
//
// # 弱引用与失效观察者
//
// Observer 通过 weak.Pointer 持有订阅者，不延长其生命周期。
// 订阅者被回收但未注销时，投递被跳过并产生诊断：
//   - 以 typedbus_debug 构建标签编译时直接 panic（开发期的硬中断）
//   - 否则记录限流的 Warn 日志、计入 stale 指标并回调 StaleHandler
//
// 默认在发布遇到失效记录后顺带清理（WithPruneStale(false) 可关闭，
// 此时失效记录一直保留到显式注销）。
//
// 订阅者类型不应是零大小类型：所有零大小值可能共享同一地址，
// 无法区分身份，也永远不会被回收。回调闭包不应强引用订阅者本身，
// 需要访问订阅者时使用 NewBoundObserver。
//
// # 并发安全
//
//   - Storage 的查找或创建在同一把锁内完成，不会为同一类型创建两个 Bus
//   - 观察者序列的修改互斥；发布遍历快照，回调从不在锁内执行，
//     回调内可以安全地注册或注销
//   - 缓冲值先存储后通知，读取不会看到写了一半的值
//
// 已交给执行上下文的回调无法撤回：注销只影响之后的发布。
package eventbus
