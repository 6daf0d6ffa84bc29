// Package executor 实现回调执行上下文
//
// 总线只"请求"在目标上下文上执行回调，具体调度由本包的实现决定：
//
//   - Inline: 在调用方 goroutine 上直接执行
//   - Goroutine: 每个任务一个新 goroutine
//   - Queue (NewSerial): 单 worker 无界 FIFO，同一队列上的回调串行且保持提交顺序
//   - Queue (NewPool): N 个 worker 共享一个无界 FIFO
//   - Main(): 进程级串行队列，首次访问时创建，随进程退出
//
// # 执行保证
//
// 每个提交的任务恰好执行一次：
//   - Execute 从不阻塞到任务执行完成（Inline 除外）
//   - 队列关闭后仍提交的任务在新 goroutine 上执行
//   - 任务 panic 被 recover 并记录日志，worker 继续运行，
//     panic 不会传回发布方
//
// # Fx 模块
//
//	app := fx.New(
//	    executor.Module(),
//	    fx.Invoke(func(exec pkgif.Executor) { ... }),
//	)
package executor
