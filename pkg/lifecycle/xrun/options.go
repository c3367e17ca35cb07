package xrun

import (
	"os"
	"syscall"

	"github.com/omeyang/xtask/pkg/observability/xlog"
)

// DefaultSignals 返回默认监听的信号：SIGINT 与 SIGTERM。每次返回新切片。
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// Option Group 选项
type Option func(*options)

type options struct {
	logger  xlog.Logger
	name    string
	signals []os.Signal
	noSig   bool
	sigCh   <-chan os.Signal // 测试注入，非 nil 时替代 signal.Notify
}

func defaultOptions() *options {
	return &options{
		logger: xlog.Nop(),
		name:   "xrun",
	}
}

// WithLogger 设置日志记录器，默认不输出。
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，出现在日志的 group 字段中。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置监听的信号，空列表等价于 [DefaultSignals]。
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *options) {
		o.signals = copied
	}
}

// WithoutSignalHandler 不监听信号，由调用方自行处理。
func WithoutSignalHandler() Option {
	return func(o *options) {
		o.noSig = true
	}
}

func withSignalChan(c <-chan os.Signal) Option {
	return func(o *options) {
		o.sigCh = c
	}
}
