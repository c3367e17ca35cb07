package xsched

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xtask/pkg/observability/xlog"
	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// Scheduler 绑定执行模式的任务入口，负责创建各类 builder。
//
// Scheduler 本身是并发安全的；它创建的 builder 不是，每个 builder 只应在一个 goroutine 内使用。
type Scheduler struct {
	mode           Mode
	source         hostSource
	registry       *Registry
	logger         xlog.Logger
	observer       Observer
	now            func() time.Time
	cronResolution xhost.Ticks
}

// New 创建绑定到 host 与 mode 的 Scheduler。
func New(host xhost.Host, mode Mode, opts ...Option) (*Scheduler, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	return newScheduler(staticHost{host: host}, mode, opts), nil
}

// FromHolder 创建从 holder 解析宿主的 Scheduler。
//
// 宿主在每次 Run 时才解析，holder 尚未设置时 Run 返回 [ErrHostNotSet]。
// holder 为 nil 时使用进程级默认实例。
func FromHolder(holder *Holder, mode Mode, opts ...Option) *Scheduler {
	if holder == nil {
		holder = &defaultHolder
	}
	return newScheduler(holder, mode, opts)
}

// Get 返回使用默认宿主（[SetHost]）与默认注册表的 Scheduler。
func Get(mode Mode, opts ...Option) *Scheduler {
	return FromHolder(&defaultHolder, mode, opts...)
}

func newScheduler(source hostSource, mode Mode, opts []Option) *Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	return &Scheduler{
		mode:           mode,
		source:         source,
		registry:       o.registry,
		logger:         o.logger.With(slog.String("component", "xsched"), slog.String("mode", mode.String())),
		observer:       o.observer,
		now:            o.now,
		cronResolution: o.cronResolution,
	}
}

// Mode 返回绑定的执行模式。
func (s *Scheduler) Mode() Mode {
	return s.mode
}

// Registry 返回使用的注册表。
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Runner 创建立即执行的任务 builder。
func (s *Scheduler) Runner() *Runner {
	return &Runner{s: s}
}

// Later 创建延迟执行的任务 builder。
func (s *Scheduler) Later() *Later {
	return &Later{s: s}
}

// Repeater 创建周期任务 builder。
func (s *Scheduler) Repeater() *Repeater {
	return &Repeater{s: s}
}

// Cron 创建 cron 任务 builder。
func (s *Scheduler) Cron() *Cron {
	return &Cron{s: s}
}

// Canceller 返回绑定当前模式与注册表的取消入口。
func (s *Scheduler) Canceller() *Canceller {
	return &Canceller{mode: s.mode, registry: s.registry}
}

// Cancel 返回绑定同步模式与默认注册表的取消入口，适用于只记录 id、不记录模式的调用方。
func Cancel() *Canceller {
	return &Canceller{mode: ModeSync, registry: DefaultRegistry()}
}

// host 解析宿主
func (s *Scheduler) host() (xhost.Host, error) {
	return s.source.Get()
}

// register 将任务登记到表中，id 为空时跳过
func (s *Scheduler) register(table *JobTable, id string, task *Task) {
	if id == "" {
		return
	}
	table.put(s.mode, id, task)
}

// instrument 包装任务体：触发时先求值 cond，为 true 才执行 body；每次触发上报一条观测记录。
// body 或 cond 的 panic 会在上报后原样抛给宿主。
func (s *Scheduler) instrument(kind Kind, id string, cond Condition, body func()) func() {
	return func() {
		start := s.now()
		outcome := OutcomeSkipped
		defer func() {
			r := recover()
			if r != nil {
				outcome = OutcomePanicked
			}
			s.observer.Observe(context.Background(), Execution{
				Kind:     kind,
				Mode:     s.mode,
				ID:       id,
				Outcome:  outcome,
				Start:    start,
				Duration: s.now().Sub(start),
			})
			if r != nil {
				panic(r)
			}
		}()

		if !cond() {
			return
		}
		body()
		outcome = OutcomeRan
	}
}

func (s *Scheduler) logSubmitted(kind Kind, id string, attrs ...slog.Attr) {
	s.logger.Debug(context.Background(), "job submitted",
		append([]slog.Attr{slog.String("kind", string(kind)), slog.String("id", id)}, attrs...)...)
}

func submitFailed(err error) error {
	return fmt.Errorf("xsched: submit failed: %w", err)
}

// newAutoID 生成按时间有序的 UUIDv7 字符串
func newAutoID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
