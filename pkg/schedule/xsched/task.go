package xsched

import (
	"time"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// Task 已提交任务的句柄。
//
// 底层 [xhost.Handle] 同时被宿主持有；Task 只额外记录不可变的重复周期。
type Task struct {
	handle xhost.Handle
	period xhost.Ticks
}

func newTask(h xhost.Handle, period xhost.Ticks) *Task {
	return &Task{handle: h, period: period}
}

// Cancel 取消任务，委托给宿主句柄。
func (t *Task) Cancel() {
	t.handle.Cancel()
}

// IsCancelled 报告任务是否已被取消。
//
// 有限次数的周期任务在次数耗尽后会自行取消，此时同样返回 true。
func (t *Task) IsCancelled() bool {
	return t.handle.IsCancelled()
}

// RepeatPeriodTicks 返回重复周期（tick），一次性任务为 0。
func (t *Task) RepeatPeriodTicks() xhost.Ticks {
	return t.period
}

// RepeatPeriod 返回重复周期对应的时长。
func (t *Task) RepeatPeriod() time.Duration {
	return t.period.Duration()
}

// IsRepeating 报告任务是否为周期任务。
func (t *Task) IsRepeating() bool {
	return t.period > 0
}

// Handle 返回宿主句柄。
func (t *Task) Handle() xhost.Handle {
	return t.handle
}
