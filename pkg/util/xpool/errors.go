package xpool

import "errors"

var (
	// ErrNilHandler 表示未提供任务处理函数。
	ErrNilHandler = errors.New("xpool: nil handler")

	// ErrPoolStopped 表示 pool 已关闭，Submit 被拒绝。
	ErrPoolStopped = errors.New("xpool: submit after shutdown")

	// ErrQueueFull 表示队列已满，本次提交被丢弃。
	ErrQueueFull = errors.New("xpool: queue full")

	// ErrInvalidWorkers 表示 worker 数不是正数。
	ErrInvalidWorkers = errors.New("xpool: workers must be positive")

	// ErrInvalidQueueSize 表示队列容量不是正数。
	ErrInvalidQueueSize = errors.New("xpool: queue size must be positive")

	// ErrNilContext 表示 Shutdown 收到 nil context。
	ErrNilContext = errors.New("xpool: nil context")
)
