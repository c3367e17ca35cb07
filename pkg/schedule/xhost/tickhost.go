package xhost

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/sonyflake/v2"

	"github.com/omeyang/xtask/pkg/observability/xlog"
	"github.com/omeyang/xtask/pkg/util/xpool"
)

// maxMachineID sonyflake 默认 16 位机器 ID 上限
const maxMachineID = 1<<16 - 1

// TrackedHandle 是 TickHost 返回的句柄额外提供的能力。
//
//	h, _ := host.SubmitNow(xhost.ModeSync, fn)
//	if th, ok := h.(xhost.TrackedHandle); ok {
//	    fmt.Println(th.ID(), th.Fires())
//	}
type TrackedHandle interface {
	Handle
	// ID 返回宿主分配的句柄 ID（sonyflake）。
	ID() int64
	// Fires 返回任务已被执行的次数。
	Fires() int64
	// Mode 返回任务的执行模式。
	Mode() Mode
}

// TickHost 基于 tick 循环的参考宿主实现。
//
// 所有方法都是并发安全的。
type TickHost struct {
	opts   *options
	logger xlog.Logger
	ids    *sonyflake.Sonyflake
	pool   *xpool.Pool[*job] // 手动模式下为 nil

	mu      sync.Mutex
	tick    int64
	seq     uint64
	queue   jobQueue
	stopped bool

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	loopDone chan struct{}
}

// New 创建 TickHost。
//
// 非手动模式下会立即创建异步 worker pool，但主循环需要调用 [TickHost.Start] 启动。
// 使用完毕必须调用 [TickHost.Stop] 释放 worker。
func New(opts ...Option) (*TickHost, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if o.tickInterval <= 0 {
		return nil, fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidOption, o.tickInterval)
	}
	if o.machineID < 0 || o.machineID > maxMachineID {
		return nil, fmt.Errorf("%w: machine id out of range: %d", ErrInvalidOption, o.machineID)
	}

	machineID := o.machineID
	ids, err := sonyflake.New(sonyflake.Settings{
		MachineID: func() (int, error) { return machineID, nil },
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	h := &TickHost{
		opts:     o,
		logger:   o.logger.With(slog.String("component", "xhost")),
		ids:      ids,
		stopCh:   make(chan struct{}),
		loopDone: make(chan struct{}),
	}

	if !o.manual {
		pool, err := xpool.New(o.asyncWorkers, o.asyncQueue, h.run,
			xpool.WithLogger(o.logger), xpool.WithName("xhost-async"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		h.pool = pool
	}

	return h, nil
}

// SubmitNow 实现 [Host]。任务在下一个 tick 执行。
func (h *TickHost) SubmitNow(mode Mode, body func()) (Handle, error) {
	return h.submit(mode, body, 0, 0)
}

// SubmitAfterDelay 实现 [Host]。
func (h *TickHost) SubmitAfterDelay(mode Mode, body func(), delay Ticks) (Handle, error) {
	return h.submit(mode, body, delay, 0)
}

// SubmitPeriodic 实现 [Host]。
func (h *TickHost) SubmitPeriodic(mode Mode, body func(), delay, period Ticks) (Handle, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
	return h.submit(mode, body, delay, period)
}

func (h *TickHost) submit(mode Mode, body func(), delay, period Ticks) (Handle, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if delay < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
	}

	id, err := h.ids.NextID()
	if err != nil {
		return nil, fmt.Errorf("xhost: generate handle id: %w", err)
	}

	j := &job{
		id:     id,
		mode:   mode,
		body:   body,
		period: period,
		index:  -1,
	}

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil, ErrHostStopped
	}
	// delay 为 0 时在下一个 tick 执行
	j.next = h.tick + max(int64(delay), 1)
	j.seq = h.seq
	h.seq++
	heap.Push(&h.queue, j)
	h.mu.Unlock()

	h.logger.Debug(context.Background(), "job submitted",
		slog.Int64("handle", id),
		slog.String("mode", mode.String()),
		slog.Int64("delay_ticks", int64(delay)),
		slog.Int64("period_ticks", int64(period)),
	)
	return j, nil
}

// Start 启动主循环（非阻塞）。重复调用无效果。
//
// 手动模式下返回 [ErrManualTick]，已停止返回 [ErrHostStopped]。
func (h *TickHost) Start() error {
	if h.opts.manual {
		return ErrManualTick
	}
	h.mu.Lock()
	stopped := h.stopped
	h.mu.Unlock()
	if stopped {
		return ErrHostStopped
	}
	if !h.started.CompareAndSwap(false, true) {
		return nil
	}

	go h.loop()
	h.logger.Info(context.Background(), "host started",
		slog.Duration("tick_interval", h.opts.tickInterval),
		slog.Int("async_workers", h.opts.asyncWorkers),
	)
	return nil
}

func (h *TickHost) loop() {
	defer close(h.loopDone)

	ticker := time.NewTicker(h.opts.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.runTick()
		}
	}
}

// Step 手动推进一个 tick，并在调用方 goroutine 内执行所有到期任务。
func (h *TickHost) Step() error {
	return h.Advance(1)
}

// Advance 手动推进 n 个 tick。仅手动模式可用。
func (h *TickHost) Advance(n int) error {
	if !h.opts.manual {
		return ErrNotManual
	}
	for i := 0; i < n; i++ {
		h.runTick()
	}
	return nil
}

// runTick 推进一个 tick 并派发到期任务
func (h *TickHost) runTick() {
	h.mu.Lock()
	h.tick++
	now := h.tick

	var due, again []*job
	for h.queue.Len() > 0 {
		head := h.queue[0]
		if head.cancelled.Load() {
			heap.Pop(&h.queue)
			continue
		}
		if head.next > now {
			break
		}
		heap.Pop(&h.queue)
		due = append(due, head)
		if head.period > 0 {
			head.next = now + int64(head.period)
			again = append(again, head)
		}
	}
	for _, j := range again {
		j.seq = h.seq
		h.seq++
		heap.Push(&h.queue, j)
	}
	h.mu.Unlock()

	for _, j := range due {
		h.dispatch(j)
	}
}

// dispatch 按模式派发任务
func (h *TickHost) dispatch(j *job) {
	if j.cancelled.Load() {
		return
	}
	if j.mode == ModeSync || h.pool == nil {
		h.run(j)
		return
	}
	if err := h.pool.Submit(j); err != nil {
		h.logger.Warn(context.Background(), "async fire dropped",
			slog.Int64("handle", j.id), xlog.Err(err))
	}
}

// run 执行任务体，捕获 panic
func (h *TickHost) run(j *job) {
	if j.cancelled.Load() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error(context.Background(), "job panic recovered",
				slog.Int64("handle", j.id),
				slog.String("mode", j.mode.String()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	j.fires.Add(1)
	j.body()
}

// Stop 停止宿主：拒绝新的提交，停止主循环，并等待异步通道中已排队的任务执行完。
//
// 队列中尚未到期的任务被丢弃。ctx 到期时提前返回 ctx.Err()。重复调用安全。
func (h *TickHost) Stop(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.stopped = true
		pending := h.queue.Len()
		h.queue = nil
		h.mu.Unlock()

		close(h.stopCh)
		h.logger.Info(ctx, "host stopping", slog.Int("dropped", pending))
	})

	var errs []error
	if h.started.Load() {
		select {
		case <-h.loopDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if h.pool != nil {
		if err := h.pool.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CurrentTick 返回当前 tick 序号。
func (h *TickHost) CurrentTick() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tick
}

// Pending 返回队列中未取消的任务数。
func (h *TickHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, j := range h.queue {
		if !j.cancelled.Load() {
			n++
		}
	}
	return n
}

// Manual 报告宿主是否处于手动模式。
func (h *TickHost) Manual() bool {
	return h.opts.manual
}

var _ Host = (*TickHost)(nil)
