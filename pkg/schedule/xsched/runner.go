package xsched

// RunnerSpec 立即执行任务的定稿配置。
type RunnerSpec struct {
	Mode Mode
	Body func()
}

// Runner 立即执行任务的 builder。
//
//	task, err := sched.Runner().Task(fn).Run()
type Runner struct {
	s    *Scheduler
	body func()
}

// Task 设置任务体。
func (r *Runner) Task(body func()) *Runner {
	r.body = body
	return r
}

// Spec 校验并返回定稿配置。
func (r *Runner) Spec() (RunnerSpec, error) {
	if r.body == nil {
		return RunnerSpec{}, ErrNilTask
	}
	return RunnerSpec{Mode: r.s.mode, Body: r.body}, nil
}

// Run 提交任务，宿主在下一个 tick 执行。返回的 Task 重复周期为 0。
func (r *Runner) Run() (*Task, error) {
	spec, err := r.Spec()
	if err != nil {
		return nil, err
	}
	host, err := r.s.host()
	if err != nil {
		return nil, err
	}

	h, err := host.SubmitNow(spec.Mode, r.s.instrument(KindRunner, "", Always(), spec.Body))
	if err != nil {
		return nil, submitFailed(err)
	}
	r.s.logSubmitted(KindRunner, "")
	return newTask(h, 0), nil
}
