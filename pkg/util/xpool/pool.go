package xpool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

const (
	maxWorkers   = 1 << 16
	maxQueueSize = 1 << 24
)

// Pool 是一个泛型 worker pool 实现。
// 用于异步执行任务，支持优雅关闭和 panic 恢复。
type Pool[T any] struct {
	workers   int
	queueSize int
	handler   func(T)
	queue     chan T
	opts      options

	mu     sync.RWMutex // 保护 closed 与 queue 关闭，避免 send on closed channel
	closed bool

	wg        sync.WaitGroup
	closeOnce sync.Once
	done      chan struct{}
}

// New 创建并启动 worker pool。
//
// 参数：
//   - workers: worker 数量，范围 [1, 65536]
//   - queueSize: 任务队列大小，范围 [1, 16777216]
//   - handler: 任务处理函数，不能为 nil
func New[T any](workers, queueSize int, handler func(T), opts ...Option) (*Pool[T], error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if queueSize < 1 || queueSize > maxQueueSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQueueSize, queueSize)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	p := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		handler:   handler,
		queue:     make(chan T, queueSize),
		opts:      o,
		done:      make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.done)
	}()

	return p, nil
}

// worker 只从 queue 中读取任务直到 channel 关闭，
// 确保关闭时能处理完队列中的剩余任务。
func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		p.safeHandle(task)
	}
}

// safeHandle 执行 handler 并捕获 panic
func (p *Pool[T]) safeHandle(task T) {
	defer func() {
		if r := recover(); r != nil {
			p.opts.logger.Error(context.Background(), "xpool: worker panic recovered",
				slog.String("pool", p.opts.name),
				slog.String("task_type", fmt.Sprintf("%T", task)),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	p.handler(task)
}

// Submit 提交任务到 worker pool（非阻塞）。
//
// 队列满返回 ErrQueueFull，pool 已关闭返回 ErrPoolStopped。
func (p *Pool[T]) Submit(task T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolStopped
	}
	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close 停止接收新任务并等待队列中的任务全部处理完成。
func (p *Pool[T]) Close() error {
	return p.Shutdown(context.Background())
}

// Shutdown 停止接收新任务并等待 worker 退出，ctx 到期时提前返回 ctx.Err()。
// 可重复调用。
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 返回在所有 worker 退出后关闭的 channel。
func (p *Pool[T]) Done() <-chan struct{} {
	return p.done
}

// Workers 返回 worker 数量。
func (p *Pool[T]) Workers() int {
	return p.workers
}

// QueueSize 返回队列容量。
func (p *Pool[T]) QueueSize() int {
	return p.queueSize
}

// Pending 返回队列中尚未被 worker 取走的任务数。
func (p *Pool[T]) Pending() int {
	return len(p.queue)
}
