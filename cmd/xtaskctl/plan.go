package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/omeyang/xtask/pkg/config/xschedconf"
	"github.com/omeyang/xtask/pkg/schedule/xhost"
	"github.com/omeyang/xtask/pkg/schedule/xsched"
)

// schedulers 每种执行模式一个 Scheduler，共享 holder 与选项
type schedulers map[xhost.Mode]*xsched.Scheduler

func newSchedulers(holder *xsched.Holder, opts ...xsched.Option) schedulers {
	return schedulers{
		xhost.ModeSync:  xsched.FromHolder(holder, xhost.ModeSync, opts...),
		xhost.ModeAsync: xsched.FromHolder(holder, xhost.ModeAsync, opts...),
	}
}

// submitFunc 提交已校验的任务
type submitFunc func() (*xsched.Task, error)

// prepare 按计划配置 builder 并校验，返回提交函数。
func (s schedulers) prepare(job xschedconf.JobPlan, body func()) (submitFunc, error) {
	mode, err := job.ParsedMode()
	if err != nil {
		return nil, err
	}
	sched := s[mode]

	switch job.Kind {
	case xschedconf.KindNow:
		r := sched.Runner().Task(body)
		if _, err := r.Spec(); err != nil {
			return nil, err
		}
		return r.Run, nil

	case xschedconf.KindLater:
		l := sched.Later().Task(body).Delay(job.Delay)
		switch {
		case job.AutoID:
			l.AutoID()
		case job.ID != "":
			l.UniqueID(job.ID)
		}
		if _, err := l.Spec(); err != nil {
			return nil, err
		}
		return l.Run, nil

	case xschedconf.KindRepeat:
		r := sched.Repeater().Task(body).Delay(job.Delay).Repeats(job.Period)
		if job.Forever {
			r.RepeatsForever(true)
		} else {
			r.RepeatsFor(job.Total)
		}
		switch {
		case job.AutoID:
			r.AutoID()
		case job.ID != "":
			r.UniqueID(job.ID)
		}
		if _, err := r.Spec(); err != nil {
			return nil, err
		}
		return r.Run, nil

	case xschedconf.KindCron:
		c := sched.Cron().Task(body).Expr(job.Cron).WithSeconds(job.Seconds)
		switch {
		case job.AutoID:
			c.AutoID()
		case job.ID != "":
			c.UniqueID(job.ID)
		}
		if _, err := c.Spec(); err != nil {
			return nil, err
		}
		return c.Run, nil

	default:
		return nil, fmt.Errorf("unknown kind %q", job.Kind)
	}
}

// syncWriter 串行化并发任务的输出
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// announce 返回打印任务消息的任务体
func (s *syncWriter) announce(job xschedconf.JobPlan) func() {
	label := job.Label()
	msg := job.Message
	if msg == "" {
		msg = "fired"
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.w, "%s %s: %s\n", time.Now().Format(time.TimeOnly), label, msg)
	}
}
