package xsched

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	standardParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	secondsParser  = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
)

// CronSpec cron 任务的定稿配置。
type CronSpec struct {
	Mode     Mode
	Body     func()
	Expr     string
	Schedule cron.Schedule
	Location *time.Location
	ID       string
}

// Cron 按 cron 表达式触发的任务 builder。
//
// 任务以周期任务的形式提交给宿主，每个检查间隔（[WithCronResolution]，默认 1 秒）
// 检查一次是否到达下一个 cron 触发点。登记在 [Registry.Periodic] 中。
//
//	sched.Cron().Expr("*/5 * * * *").Task(fn).UniqueID("report").Run()
type Cron struct {
	s       *Scheduler
	body    func()
	expr    string
	seconds bool
	loc     *time.Location
	id      string
}

// Task 设置任务体。
func (c *Cron) Task(body func()) *Cron {
	c.body = body
	return c
}

// Expr 设置 cron 表达式，支持标准 5 段格式与 @every、@daily 等描述符。
func (c *Cron) Expr(expr string) *Cron {
	c.expr = expr
	return c
}

// WithSeconds 允许可选的秒字段（6 段格式）。
func (c *Cron) WithSeconds(enable bool) *Cron {
	c.seconds = enable
	return c
}

// Location 设置计算触发点使用的时区，默认 time.Local。
func (c *Cron) Location(loc *time.Location) *Cron {
	c.loc = loc
	return c
}

// UniqueID 设置登记用的 id。
func (c *Cron) UniqueID(id string) *Cron {
	c.id = id
	return c
}

// AutoID 生成 UUIDv7 作为 id。
func (c *Cron) AutoID() *Cron {
	c.id = newAutoID()
	return c
}

// Spec 校验、解析表达式并返回定稿配置。
func (c *Cron) Spec() (CronSpec, error) {
	if c.body == nil {
		return CronSpec{}, ErrNilTask
	}
	expr := strings.TrimSpace(c.expr)
	if expr == "" {
		return CronSpec{}, fmt.Errorf("%w: empty expression", ErrInvalidCronSpec)
	}

	parser := standardParser
	if c.seconds {
		parser = secondsParser
	}
	schedule, err := parser.Parse(expr)
	if err != nil {
		return CronSpec{}, fmt.Errorf("%w: %q: %w", ErrInvalidCronSpec, expr, err)
	}

	loc := c.loc
	if loc == nil {
		loc = time.Local
	}
	return CronSpec{
		Mode:     c.s.mode,
		Body:     c.body,
		Expr:     expr,
		Schedule: schedule,
		Location: loc,
		ID:       c.id,
	}, nil
}

// Run 等价于 RunIf(Always())。
func (c *Cron) Run() (*Task, error) {
	return c.RunIf(Always())
}

// RunIf 提交 cron 任务，到达触发点时 cond 为 true 才执行任务体。
//
// 返回的 Task 重复周期为检查间隔。
func (c *Cron) RunIf(cond Condition) (*Task, error) {
	if cond == nil {
		return nil, ErrNilCondition
	}
	spec, err := c.Spec()
	if err != nil {
		return nil, err
	}
	host, err := c.s.host()
	if err != nil {
		return nil, err
	}

	gate := &cronGate{
		schedule: spec.Schedule,
		loc:      spec.Location,
		now:      c.s.now,
	}
	gate.next = spec.Schedule.Next(c.s.now().In(spec.Location))
	body := gate.wrap(c.s.instrument(KindCron, spec.ID, cond, spec.Body))

	res := c.s.cronResolution
	h, err := host.SubmitPeriodic(spec.Mode, body, res, res)
	if err != nil {
		return nil, submitFailed(err)
	}

	task := newTask(h, res)
	c.s.register(c.s.registry.Periodic(), spec.ID, task)
	c.s.logSubmitted(KindCron, spec.ID,
		slog.String("expr", spec.Expr),
		slog.Time("next", gate.next),
	)
	return task, nil
}

// cronGate 只在到达下一个触发点时放行
type cronGate struct {
	schedule cron.Schedule
	loc      *time.Location
	now      func() time.Time

	mu   sync.Mutex
	next time.Time
}

func (g *cronGate) wrap(body func()) func() {
	return func() {
		if !g.due() {
			return
		}
		body()
	}
}

// due 报告是否已到达触发点，是则推进到下一个触发点
func (g *cronGate) due() bool {
	now := g.now().In(g.loc)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next.IsZero() || now.Before(g.next) {
		return false
	}
	g.next = g.schedule.Next(now)
	return true
}
