package xsched

import "github.com/omeyang/xtask/pkg/schedule/xhost"

// Mode 执行模式，与 [xhost.Mode] 相同。
type Mode = xhost.Mode

const (
	// ModeSync 在宿主主循环上执行。
	ModeSync = xhost.ModeSync
	// ModeAsync 在宿主 worker pool 上执行。
	ModeAsync = xhost.ModeAsync
)

// modes 按 CancelByID 的查找顺序排列
var modes = [...]Mode{ModeAsync, ModeSync}

// Condition 在任务触发时求值，返回 false 时本次不执行任务体。
type Condition func() bool

// Always 返回恒为 true 的条件。
func Always() Condition {
	return func() bool { return true }
}
