// Package metrics 提供总线指标收集
//
// 按事件类型统计：
//   - registered / unregistered: 观察者注册与注销次数
//   - posted: 发布次数
//   - delivered: 成功调度到执行上下文的投递次数
//   - stale: 因观察者已被回收而跳过的投递次数
//   - pruned: 被清理掉的失效观察者记录数
//
// # 快速开始
//
//	stats := metrics.NewStats()
//	storage := eventbus.NewStorage(eventbus.WithRecorder(stats))
//
//	snap := stats.Totals()
//	fmt.Printf("posted=%d delivered=%d stale=%d\n", snap.Posted, snap.Delivered, snap.Stale)
//
// # Prometheus
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(metrics.NewCollector("typedbus", stats))
//
// Collector 在每次抓取时读取 Stats 的当前值，不额外维护状态。
//
// # 并发安全
//
// 计数器使用 atomic.Int64；事件类型索引使用 RWMutex 保护，
// 热路径上只有首次出现的事件类型需要写锁。
package metrics
