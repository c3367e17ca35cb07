package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xtask/pkg/config/xschedconf"
	"github.com/omeyang/xtask/pkg/lifecycle/xrun"
	"github.com/omeyang/xtask/pkg/observability/xlog"
	"github.com/omeyang/xtask/pkg/schedule/xhost"
	"github.com/omeyang/xtask/pkg/schedule/xsched"
)

const (
	// defaultStopTimeout 停止宿主的等待上限
	defaultStopTimeout = 5 * time.Second
	// defaultPoll 空闲检查与状态上报间隔
	defaultPoll = time.Second
)

// run 的正常结束原因
var (
	errIdle    = errors.New("xtaskctl: host idle")
	errElapsed = errors.New("xtaskctl: run duration elapsed")
)

// usageError 参数错误，映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func createCommands() []*cli.Command {
	return []*cli.Command{
		createTicksCommand(),
		createValidateCommand(),
		createRunCommand(),
	}
}

func createTicksCommand() *cli.Command {
	return &cli.Command{
		Name:      "ticks",
		Usage:     "打印时长换算后的 tick 数",
		ArgsUsage: "<duration...>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdTicks(cmd.Root().Writer, cmd.Args().Slice())
		},
	}
}

func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "校验配置与任务计划",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "plan", Aliases: []string{"p"}, Usage: "任务计划文件", Required: true},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdValidate(cmd.Root().Writer, cmd.String("config"), cmd.String("plan"))
		},
	}
}

func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "按计划提交任务并运行宿主",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "plan", Aliases: []string{"p"}, Usage: "任务计划文件", Required: true},
			&cli.DurationFlag{Name: "for", Usage: "运行时长，0 表示直到收到信号"},
			&cli.BoolFlag{Name: "until-idle", Usage: "宿主队列为空时退出"},
			&cli.DurationFlag{Name: "poll", Usage: "空闲检查与状态上报间隔", Value: defaultPoll},
			&cli.BoolFlag{Name: "watch", Usage: "监视配置文件并热更新日志级别"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdRun(ctx, runOptions{
				out:        cmd.Root().Writer,
				errOut:     cmd.Root().ErrWriter,
				configPath: cmd.String("config"),
				planPath:   cmd.String("plan"),
				duration:   cmd.Duration("for"),
				untilIdle:  cmd.Bool("until-idle"),
				poll:       cmd.Duration("poll"),
				watch:      cmd.Bool("watch"),
			})
		},
	}
}

func cmdTicks(w io.Writer, args []string) error {
	if len(args) == 0 {
		return usagef("ticks 需要至少一个时长参数")
	}
	for _, arg := range args {
		d, err := time.ParseDuration(arg)
		if err != nil {
			return usagef("无效时长 %q: %v", arg, err)
		}
		fmt.Fprintf(w, "%s\t%d\n", d, xhost.ToTicks(d))
	}
	return nil
}

// loadConfig 加载配置，path 为空时返回默认配置
func loadConfig(path string) (xschedconf.Config, error) {
	if path == "" {
		return xschedconf.Default(), nil
	}
	return xschedconf.Load(path)
}

func cmdValidate(w io.Writer, configPath, planPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	plan, err := xschedconf.LoadPlan(planPath)
	if err != nil {
		return err
	}

	reg, err := xsched.NewRegistry(cfg.RegistryOptions(nil)...)
	if err != nil {
		return err
	}
	defer reg.Close()

	// 未设置宿主的 holder：只构建 builder 并校验，不会提交
	pool := newSchedulers(&xsched.Holder{}, cfg.SchedulerOptions(reg, nil)...)
	var errs []error
	for i, job := range plan.Jobs {
		if _, err := pool.prepare(job, func() {}); err != nil {
			errs = append(errs, fmt.Errorf("jobs[%d] %s: %w", i, job.Label(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Fprintf(w, "ok: %d jobs\n", len(plan.Jobs))
	return nil
}

type runOptions struct {
	out        io.Writer
	errOut     io.Writer
	configPath string
	planPath   string
	duration   time.Duration
	untilIdle  bool
	poll       time.Duration
	watch      bool
}

func cmdRun(ctx context.Context, opts runOptions) (err error) {
	if opts.watch && opts.configPath == "" {
		return usagef("--watch 需要同时指定 --config")
	}
	if opts.poll <= 0 {
		return usagef("--poll 必须为正数")
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	plan, err := xschedconf.LoadPlan(opts.planPath)
	if err != nil {
		return err
	}

	builder := cfg.Log.Builder()
	if cfg.Log.File == "" {
		builder = builder.SetOutput(opts.errOut)
	}
	logger, closeLog, err := builder.Build()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeLog()) }()

	metrics := newRunMetrics()
	defer func() { err = errors.Join(err, metrics.shutdown(context.Background())) }()

	host, err := xhost.New(cfg.HostOptions(logger)...)
	if err != nil {
		return err
	}
	finished := false
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), defaultStopTimeout)
		defer cancel()
		err = errors.Join(err, host.Stop(stopCtx))
		if finished && err == nil {
			// 宿主停止后汇总，已排队的异步任务也计入
			attrs := append([]slog.Attr{
				slog.Int64("tick", host.CurrentTick()),
				slog.Int("pending", host.Pending()),
			}, metrics.summary(stopCtx)...)
			logger.Info(context.Background(), "run finished", attrs...)
		}
	}()

	reg, err := xsched.NewRegistry(cfg.RegistryOptions(logger)...)
	if err != nil {
		return err
	}
	defer reg.Close()

	observer, err := metrics.observer()
	if err != nil {
		return err
	}

	holder := &xsched.Holder{}
	if err := holder.Set(host); err != nil {
		return err
	}
	schedOpts := append(cfg.SchedulerOptions(reg, logger), xsched.WithObserver(observer))
	pool := newSchedulers(holder, schedOpts...)

	out := &syncWriter{w: opts.out}
	for i, job := range plan.Jobs {
		submit, err := pool.prepare(job, out.announce(job))
		if err != nil {
			return fmt.Errorf("jobs[%d] %s: %w", i, job.Label(), err)
		}
		if _, err := submit(); err != nil {
			return fmt.Errorf("jobs[%d] %s: %w", i, job.Label(), err)
		}
	}
	if err := host.Start(); err != nil {
		return err
	}
	logger.Info(ctx, "plan submitted", slog.Int("jobs", len(plan.Jobs)))

	services := []xrun.Service{{
		Name: "monitor",
		Run:  xrun.Ticker(opts.poll, false, monitor(host, reg, logger, opts.untilIdle)),
	}}
	if opts.duration > 0 {
		services = append(services, xrun.Service{
			Name: "deadline",
			Run:  xrun.Timer(opts.duration, func(context.Context) error { return errElapsed }),
		})
	}
	if opts.watch {
		w, err := xschedconf.Watch(opts.configPath, func(c xschedconf.Config, err error) {
			if err != nil {
				logger.Warn(context.Background(), "config reload failed", xlog.Err(err))
				return
			}
			level := c.Log.ParsedLevel()
			logger.SetLevel(level)
			logger.Info(context.Background(), "log level updated", slog.String("level", level.String()))
		})
		if err != nil {
			return err
		}
		w.StartAsync()
		services = append(services, xrun.Service{Name: "config-watch", Run: xrun.Until(w.Stop)})
	}

	err = xrun.Run(ctx, []xrun.Option{xrun.WithLogger(logger), xrun.WithName("xtaskctl")}, services...)
	switch {
	case err == nil, errors.Is(err, errIdle), errors.Is(err, errElapsed), errors.Is(err, xrun.ErrSignal):
		finished = true
		return nil
	default:
		return err
	}
}

// monitor 上报宿主状态；untilIdle 时在宿主队列为空后返回 errIdle
func monitor(host *xhost.TickHost, reg *xsched.Registry, logger xlog.Logger, untilIdle bool) func(context.Context) error {
	return func(ctx context.Context) error {
		pending := host.Pending()
		logger.Debug(ctx, "host status",
			slog.Int64("tick", host.CurrentTick()),
			slog.Int("pending", pending),
			slog.Int("delayed", tableLen(reg.Delayed())),
			slog.Int("periodic", tableLen(reg.Periodic())),
		)
		if untilIdle && pending == 0 {
			return errIdle
		}
		return nil
	}
}

func tableLen(t *xsched.JobTable) int {
	return t.Len(xhost.ModeSync) + t.Len(xhost.ModeAsync)
}
