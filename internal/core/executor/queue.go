package executor

import (
	"context"
	"fmt"
	"sync"
)

// Queue 无界 FIFO 任务队列
//
// 由固定数量的 worker 消费。单 worker 时（NewSerial）任务串行执行且保持提交顺序；
// 多 worker 时（NewPool）只保证按提交顺序出队。
//
// Execute 只在锁内追加任务，从不阻塞发布方。
type Queue struct {
	name    string
	workers int

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool

	// shared 为 true 时 Close 不生效（进程级队列）
	shared bool

	wg sync.WaitGroup
}

var mainQueue = sync.OnceValue(func() *Queue {
	q := newQueue("main", 1)
	q.shared = true
	return q
})

// Main 返回进程级串行队列
//
// 首次调用时创建，随进程退出，Close 对它无效。
// 未指定执行上下文的注册默认在这里执行回调。
func Main() *Queue {
	return mainQueue()
}

// NewSerial 创建单 worker 串行队列
func NewSerial(name string) *Queue {
	return newQueue(name, 1)
}

// NewPool 创建 workers 个 worker 的队列
//
// workers 小于 1 时按 1 处理。
func NewPool(name string, workers int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return newQueue(name, workers)
}

func newQueue(name string, workers int) *Queue {
	if name == "" {
		name = fmt.Sprintf("queue-%d", workers)
	}
	q := &Queue{
		name:    name,
		workers: workers,
	}
	q.cond = sync.NewCond(&q.mu)

	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.loop()
	}

	logger.Debug("执行队列已启动", "name", name, "workers", workers)
	return q
}

// Name 返回队列名称
func (q *Queue) Name() string { return q.name }

// Workers 返回 worker 数量
func (q *Queue) Workers() int { return q.workers }

// Pending 返回排队中（尚未开始执行）的任务数
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Execute 实现 Executor 接口
func (q *Queue) Execute(task func()) {
	if task == nil {
		return
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		// 关闭后仍保证恰好执行一次
		logger.Debug("队列已关闭，任务改为独立 goroutine 执行", "name", q.name)
		go run(q.name, task)
		return
	}
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	q.cond.Signal()
}

// Close 停止接收新任务，等待已排队任务执行完毕
//
// ctx 到期时返回 ctx.Err()，剩余任务仍会在后台执行完。
// 重复关闭返回 ErrExecutorClosed；进程级队列的 Close 直接返回 nil。
func (q *Queue) Close(ctx context.Context) error {
	if q.shared {
		return nil
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrExecutorClosed
	}
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Debug("执行队列已关闭", "name", q.name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loop worker 主循环：关闭后排空剩余任务再退出
func (q *Queue) loop() {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		run(q.name, task)
	}
}
