package xsched

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// RepeaterSpec 周期任务的定稿配置。
type RepeaterSpec struct {
	Mode    Mode
	Body    func()
	Delay   xhost.Ticks
	Period  xhost.Ticks
	Total   xhost.Ticks // Forever 为 true 时忽略
	Forever bool
	ID      string
}

// Repetitions 返回执行次数上限 floor(Total / Period)，Forever 时返回 -1。
func (s RepeaterSpec) Repetitions() int64 {
	if s.Forever {
		return -1
	}
	if s.Period <= 0 || s.Total <= 0 {
		return 0
	}
	return int64(s.Total / s.Period)
}

// Repeater 周期任务 builder。
//
// 未设置 RepeatsForever 时，任务在执行 floor(总时长 / 周期) 次后自行取消：
//
//	sched.Repeater().
//	    Task(fn).
//	    Repeats(250 * time.Millisecond).
//	    RepeatsFor(1250 * time.Millisecond). // 5 次
//	    Run()
type Repeater struct {
	s       *Scheduler
	body    func()
	delay   xhost.Ticks
	period  xhost.Ticks
	total   xhost.Ticks
	forever bool
	id      string
}

// Task 设置任务体。
func (r *Repeater) Task(body func()) *Repeater {
	r.body = body
	return r
}

// Delay 设置首次执行前的延迟。
func (r *Repeater) Delay(d time.Duration) *Repeater {
	r.delay = xhost.ToTicks(d)
	return r
}

// Repeats 设置执行周期，换算为 tick 后必须为正。
func (r *Repeater) Repeats(period time.Duration) *Repeater {
	r.period = xhost.ToTicks(period)
	return r
}

// RepeatsFor 设置总时长，用于计算执行次数。
func (r *Repeater) RepeatsFor(total time.Duration) *Repeater {
	r.total = xhost.ToTicks(total)
	return r
}

// RepeatsForever 设置是否无限重复，默认 false。
func (r *Repeater) RepeatsForever(forever bool) *Repeater {
	r.forever = forever
	return r
}

// UniqueID 设置登记用的 id。
func (r *Repeater) UniqueID(id string) *Repeater {
	r.id = id
	return r
}

// AutoID 生成 UUIDv7 作为 id。
func (r *Repeater) AutoID() *Repeater {
	r.id = newAutoID()
	return r
}

// Spec 校验并返回定稿配置。
func (r *Repeater) Spec() (RepeaterSpec, error) {
	if r.body == nil {
		return RepeaterSpec{}, ErrNilTask
	}
	if r.delay < 0 {
		return RepeaterSpec{}, ErrNegativeDelay
	}
	if r.period <= 0 {
		return RepeaterSpec{}, ErrNonPositivePeriod
	}
	return RepeaterSpec{
		Mode:    r.s.mode,
		Body:    r.body,
		Delay:   r.delay,
		Period:  r.period,
		Total:   r.total,
		Forever: r.forever,
		ID:      r.id,
	}, nil
}

// Run 等价于 RunIf(Always())。
func (r *Repeater) Run() (*Task, error) {
	return r.RunIf(Always())
}

// RunIf 提交周期任务，每次触发时 cond 为 true 才执行任务体。
//
// 有限次数的任务中，cond 为 false 的触发同样消耗一次次数。
// 返回的 Task 重复周期为配置的周期。
func (r *Repeater) RunIf(cond Condition) (*Task, error) {
	if cond == nil {
		return nil, ErrNilCondition
	}
	spec, err := r.Spec()
	if err != nil {
		return nil, err
	}
	host, err := r.s.host()
	if err != nil {
		return nil, err
	}

	body := r.s.instrument(KindRepeater, spec.ID, cond, spec.Body)
	var limit *countdown
	if !spec.Forever {
		limit = newCountdown(spec.Repetitions(), r.s, spec.ID)
		body = limit.wrap(body)
	}

	h, err := host.SubmitPeriodic(spec.Mode, body, spec.Delay, spec.Period)
	if err != nil {
		return nil, submitFailed(err)
	}
	if limit != nil {
		limit.bind(h)
	}

	task := newTask(h, spec.Period)
	r.s.register(r.s.registry.Periodic(), spec.ID, task)
	r.s.logSubmitted(KindRepeater, spec.ID,
		slog.Int64("delay_ticks", int64(spec.Delay)),
		slog.Int64("period_ticks", int64(spec.Period)),
		slog.Int64("repetitions", spec.Repetitions()),
	)
	return task, nil
}

// countdown 有限次数周期任务的计数适配器。
//
// 每次触发先占用一次次数再执行；次数用完后取消底层周期提交。
// 若宿主在 bind 之前就触发到耗尽，取消动作推迟到 bind 时执行。
type countdown struct {
	remaining atomic.Int64
	s         *Scheduler
	id        string

	mu        sync.Mutex
	handle    xhost.Handle
	exhausted bool
}

func newCountdown(n int64, s *Scheduler, id string) *countdown {
	c := &countdown{s: s, id: id}
	c.remaining.Store(n)
	return c
}

func (c *countdown) wrap(body func()) func() {
	return func() {
		left, ok := c.acquire()
		if !ok {
			c.finish()
			return
		}
		if left == 0 {
			defer c.finish()
		}
		body()
	}
}

// acquire 占用一次执行次数，返回剩余次数
func (c *countdown) acquire() (int64, bool) {
	for {
		n := c.remaining.Load()
		if n <= 0 {
			return 0, false
		}
		if c.remaining.CompareAndSwap(n, n-1) {
			return n - 1, true
		}
	}
}

func (c *countdown) bind(h xhost.Handle) {
	c.mu.Lock()
	c.handle = h
	exhausted := c.exhausted
	c.mu.Unlock()
	if exhausted {
		h.Cancel()
	}
}

// finish 标记耗尽并取消底层提交
func (c *countdown) finish() {
	c.mu.Lock()
	first := !c.exhausted
	c.exhausted = true
	h := c.handle
	c.mu.Unlock()

	if h != nil {
		h.Cancel()
	}
	if first {
		c.s.logger.Debug(context.Background(), "repeater exhausted", slog.String("id", c.id))
	}
}
