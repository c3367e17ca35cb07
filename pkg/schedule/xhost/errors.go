package xhost

import "errors"

var (
	// ErrNilBody 表示提交的任务体为 nil。
	ErrNilBody = errors.New("xhost: body cannot be nil")

	// ErrInvalidMode 表示执行模式无效。
	ErrInvalidMode = errors.New("xhost: invalid mode")

	// ErrInvalidDelay 表示延迟为负数。
	ErrInvalidDelay = errors.New("xhost: delay must not be negative")

	// ErrInvalidPeriod 表示周期不是正数。
	ErrInvalidPeriod = errors.New("xhost: period must be positive")

	// ErrHostStopped 表示宿主已停止，不再接受提交。
	ErrHostStopped = errors.New("xhost: host is stopped")

	// ErrManualTick 表示手动模式下调用了 Start。
	ErrManualTick = errors.New("xhost: host is in manual tick mode")

	// ErrNotManual 表示非手动模式下调用了 Step/Advance。
	ErrNotManual = errors.New("xhost: host is not in manual tick mode")

	// ErrInvalidOption 表示 TickHost 配置无效。
	ErrInvalidOption = errors.New("xhost: invalid option")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xhost: nil context")
)
