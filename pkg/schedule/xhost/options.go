package xhost

import (
	"time"

	"github.com/omeyang/xtask/pkg/observability/xlog"
)

const (
	// DefaultAsyncWorkers 异步通道默认 worker 数
	DefaultAsyncWorkers = 4

	// DefaultAsyncQueueSize 异步通道默认队列容量
	DefaultAsyncQueueSize = 256
)

// options TickHost 配置
type options struct {
	tickInterval time.Duration // 主循环推进间隔（墙钟）
	asyncWorkers int
	asyncQueue   int
	machineID    int // sonyflake 机器 ID
	manual       bool
	logger       xlog.Logger
}

func defaultOptions() *options {
	return &options{
		tickInterval: TickDuration,
		asyncWorkers: DefaultAsyncWorkers,
		asyncQueue:   DefaultAsyncQueueSize,
		machineID:    0,
		logger:       xlog.Nop(),
	}
}

// Option TickHost 配置选项
type Option func(*options)

// WithTickInterval 设置主循环推进间隔。
//
// 默认等于 [TickDuration]。时长到 tick 的换算不受影响，
// 缩短间隔只会让宿主"走得更快"，适用于演示与测试。
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		o.tickInterval = d
	}
}

// WithAsyncWorkers 设置异步通道的 worker 数量，默认 [DefaultAsyncWorkers]。
func WithAsyncWorkers(n int) Option {
	return func(o *options) {
		o.asyncWorkers = n
	}
}

// WithAsyncQueueSize 设置异步通道的队列容量，默认 [DefaultAsyncQueueSize]。
// 队列满时该次异步执行被丢弃并记录警告。
func WithAsyncQueueSize(n int) Option {
	return func(o *options) {
		o.asyncQueue = n
	}
}

// WithMachineID 设置句柄 ID 生成器的机器 ID（0-65535）。
// 多个宿主实例的句柄 ID 需要全局可区分时使用。
func WithMachineID(id int) Option {
	return func(o *options) {
		o.machineID = id
	}
}

// WithManualTick 启用手动模式。
//
// 手动模式下不启动主循环与 worker pool，由 [TickHost.Step] / [TickHost.Advance]
// 推进 tick，同步与异步任务都在调用方 goroutine 内执行。
func WithManualTick() Option {
	return func(o *options) {
		o.manual = true
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
