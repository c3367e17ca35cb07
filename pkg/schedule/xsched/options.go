package xsched

import (
	"time"

	"github.com/omeyang/xtask/pkg/observability/xlog"
	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// DefaultCronResolution cron 任务的默认检查间隔。
const DefaultCronResolution = time.Second

type options struct {
	registry       *Registry
	logger         xlog.Logger
	observer       Observer
	now            func() time.Time
	cronResolution xhost.Ticks
}

func defaultOptions() *options {
	return &options{
		logger:         xlog.Nop(),
		observer:       NoopObserver(),
		now:            time.Now,
		cronResolution: xhost.ToTicks(DefaultCronResolution),
	}
}

// Option Scheduler 配置选项
type Option func(*options)

// WithRegistry 设置命名任务注册表，默认使用 [DefaultRegistry]。
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger 设置日志记录器。
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置执行观测器，默认 [NoopObserver]。
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithClock 设置时钟，用于观测耗时与 cron 匹配。
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithCronResolution 设置 cron 任务的检查间隔，不足 1 tick 按 1 tick 处理。
//
// cron 表达式的最小粒度是秒，间隔大于 1 秒会导致部分触发点被合并。
func WithCronResolution(d time.Duration) Option {
	return func(o *options) {
		o.cronResolution = max(xhost.ToTicks(d), 1)
	}
}
