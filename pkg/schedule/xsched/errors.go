package xsched

import "errors"

var (
	// ErrHostNotSet 表示默认宿主尚未设置。
	ErrHostNotSet = errors.New("xsched: host not set")

	// ErrHostAlreadySet 表示宿主已经设置过，不允许重复设置。
	ErrHostAlreadySet = errors.New("xsched: host already set")

	// ErrNilHost 表示传入的宿主为 nil。
	ErrNilHost = errors.New("xsched: host cannot be nil")

	// ErrNilTask 表示未设置任务体。
	ErrNilTask = errors.New("xsched: task body not set")

	// ErrNegativeDelay 表示延迟为负数。
	ErrNegativeDelay = errors.New("xsched: delay must not be negative")

	// ErrNonPositivePeriod 表示周期任务的周期不是正数（换算为 tick 后）。
	ErrNonPositivePeriod = errors.New("xsched: period must be positive")

	// ErrNilCondition 表示 RunIf 传入的条件为 nil。
	ErrNilCondition = errors.New("xsched: condition cannot be nil")

	// ErrInvalidCronSpec 表示 cron 表达式为空或无法解析。
	ErrInvalidCronSpec = errors.New("xsched: invalid cron spec")

	// ErrInvalidMode 表示执行模式无效。
	ErrInvalidMode = errors.New("xsched: invalid mode")
)
