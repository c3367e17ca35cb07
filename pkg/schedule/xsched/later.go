package xsched

import (
	"log/slog"
	"time"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// LaterSpec 延迟任务的定稿配置。
type LaterSpec struct {
	Mode  Mode
	Body  func()
	Delay xhost.Ticks
	ID    string // 为空时不登记
}

// Later 延迟执行一次的任务 builder。
//
// 设置了 unique id 的任务登记在 [Registry.Delayed] 中，可按 id 取消。
type Later struct {
	s     *Scheduler
	body  func()
	delay xhost.Ticks
	id    string
}

// Task 设置任务体。
func (l *Later) Task(body func()) *Later {
	l.body = body
	return l
}

// Delay 设置延迟，设置时即按 [xhost.ToTicks] 换算为 tick。
func (l *Later) Delay(d time.Duration) *Later {
	l.delay = xhost.ToTicks(d)
	return l
}

// DelayTicks 直接以 tick 设置延迟。
func (l *Later) DelayTicks(t xhost.Ticks) *Later {
	l.delay = t
	return l
}

// UniqueID 设置登记用的 id。同一模式下重复登记会覆盖旧任务。
func (l *Later) UniqueID(id string) *Later {
	l.id = id
	return l
}

// AutoID 生成 UUIDv7 作为 id，可通过 [LaterSpec.ID] 读取。
func (l *Later) AutoID() *Later {
	l.id = newAutoID()
	return l
}

// Spec 校验并返回定稿配置。
func (l *Later) Spec() (LaterSpec, error) {
	if l.body == nil {
		return LaterSpec{}, ErrNilTask
	}
	if l.delay < 0 {
		return LaterSpec{}, ErrNegativeDelay
	}
	return LaterSpec{Mode: l.s.mode, Body: l.body, Delay: l.delay, ID: l.id}, nil
}

// Run 等价于 RunIf(Always())。
func (l *Later) Run() (*Task, error) {
	return l.RunIf(Always())
}

// RunIf 提交任务，触发时 cond 为 true 才执行任务体。返回的 Task 重复周期为 0。
func (l *Later) RunIf(cond Condition) (*Task, error) {
	if cond == nil {
		return nil, ErrNilCondition
	}
	spec, err := l.Spec()
	if err != nil {
		return nil, err
	}
	host, err := l.s.host()
	if err != nil {
		return nil, err
	}

	h, err := host.SubmitAfterDelay(spec.Mode, l.s.instrument(KindLater, spec.ID, cond, spec.Body), spec.Delay)
	if err != nil {
		return nil, submitFailed(err)
	}

	task := newTask(h, 0)
	l.s.register(l.s.registry.Delayed(), spec.ID, task)
	l.s.logSubmitted(KindLater, spec.ID, slog.Int64("delay_ticks", int64(spec.Delay)))
	return task, nil
}
