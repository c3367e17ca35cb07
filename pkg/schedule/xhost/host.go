package xhost

import (
	"fmt"
	"strings"
	"time"
)

// TickDuration 是 1 tick 对应的时长，时长到 tick 的换算固定以此为准。
const TickDuration = 50 * time.Millisecond

// Ticks 宿主时间单位数量。
type Ticks int64

// ToTicks 将时长换算为 tick 数，按毫秒截断除法（向零取整）。
//
//	ToTicks(1000 * time.Millisecond) // 20
//	ToTicks(1250 * time.Millisecond) // 25
//	ToTicks(49 * time.Millisecond)   // 0
func ToTicks(d time.Duration) Ticks {
	return Ticks(d.Milliseconds() / TickDuration.Milliseconds())
}

// Duration 返回 tick 数对应的时长。
func (t Ticks) Duration() time.Duration {
	return time.Duration(t) * TickDuration
}

// Mode 执行模式。
type Mode uint8

const (
	// ModeSync 同步模式，任务在宿主主循环上串行执行。
	ModeSync Mode = iota
	// ModeAsync 异步模式，任务在宿主 worker pool 上执行。
	ModeAsync
)

// String 返回模式名称。
func (m Mode) String() string {
	switch m {
	case ModeSync:
		return "sync"
	case ModeAsync:
		return "async"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Valid 报告模式是否为已定义的值。
func (m Mode) Valid() bool {
	return m == ModeSync || m == ModeAsync
}

// ParseMode 解析模式字符串（sync/async，大小写不敏感）。
// 空字符串视为 sync。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sync":
		return ModeSync, nil
	case "async":
		return ModeAsync, nil
	default:
		return ModeSync, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Handle 已提交任务的句柄。
//
// 宿主同样持有该句柄，句柄不归调用方独占。
type Handle interface {
	// Cancel 取消任务。重复调用无副作用。
	Cancel()

	// IsCancelled 报告任务是否已被取消。
	IsCancelled() bool
}

// Host 宿主调度器契约。
//
// # 实现要求
//
//   - 提交是同步、非阻塞的，返回时任务已进入宿主队列
//   - delay 为 0 表示尽快（下一个 tick）执行
//   - 周期任务持续执行直到句柄被取消
//   - 实现必须是并发安全的
type Host interface {
	// SubmitNow 提交立即执行的一次性任务。
	SubmitNow(mode Mode, body func()) (Handle, error)

	// SubmitAfterDelay 提交延迟 delay 个 tick 后执行的一次性任务。
	SubmitAfterDelay(mode Mode, body func(), delay Ticks) (Handle, error)

	// SubmitPeriodic 提交周期任务，首次在 delay 个 tick 后执行，之后每 period 个 tick 执行一次。
	SubmitPeriodic(mode Mode, body func(), delay, period Ticks) (Handle, error)
}
