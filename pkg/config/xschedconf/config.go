package xschedconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omeyang/xtask/pkg/observability/xlog"
	"github.com/omeyang/xtask/pkg/schedule/xhost"
	"github.com/omeyang/xtask/pkg/schedule/xsched"
)

// maxMachineID sonyflake 机器 ID 上限
const maxMachineID = 1<<16 - 1

// Config 调度组件配置
type Config struct {
	Host     HostConfig     `koanf:"host"`
	Registry RegistryConfig `koanf:"registry"`
	Cron     CronConfig     `koanf:"cron"`
	Log      LogConfig      `koanf:"log"`
}

// HostConfig 宿主配置，对应 xhost.TickHost 的选项。
type HostConfig struct {
	// TickInterval 主循环推进间隔
	TickInterval time.Duration `koanf:"tick_interval"`
	// AsyncWorkers 异步通道 worker 数
	AsyncWorkers int `koanf:"async_workers"`
	// AsyncQueueSize 异步通道队列容量
	AsyncQueueSize int `koanf:"async_queue_size"`
	// MachineID 句柄 ID 生成器的机器 ID
	MachineID int `koanf:"machine_id"`
}

// RegistryConfig 任务登记表配置
type RegistryConfig struct {
	// CancelOnOverwrite 同名覆盖时是否取消旧任务
	CancelOnOverwrite bool `koanf:"cancel_on_overwrite"`
	// SupersededSize 被覆盖句柄缓存容量，0 表示不缓存
	SupersededSize int `koanf:"superseded_size"`
	// SupersededTTL 被覆盖句柄缓存的过期时间，0 表示不过期
	SupersededTTL time.Duration `koanf:"superseded_ttl"`
}

// CronConfig cron 任务配置
type CronConfig struct {
	// Resolution cron 检查粒度，不小于 1 tick
	Resolution time.Duration `koanf:"resolution"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	AddSource bool   `koanf:"add_source"`

	// File 非空时输出到文件并按大小轮转
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Default 返回默认配置，与各组件自身的默认值一致。
func Default() Config {
	return Config{
		Host: HostConfig{
			TickInterval:   xhost.TickDuration,
			AsyncWorkers:   xhost.DefaultAsyncWorkers,
			AsyncQueueSize: xhost.DefaultAsyncQueueSize,
		},
		Registry: RegistryConfig{
			SupersededSize: xsched.DefaultSupersededSize,
		},
		Cron: CronConfig{
			Resolution: xsched.DefaultCronResolution,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate 校验配置，返回所有问题的合并错误。
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Host.TickInterval <= 0 {
		add("host.tick_interval must be positive, got %s", c.Host.TickInterval)
	}
	if c.Host.AsyncWorkers <= 0 {
		add("host.async_workers must be positive, got %d", c.Host.AsyncWorkers)
	}
	if c.Host.AsyncQueueSize <= 0 {
		add("host.async_queue_size must be positive, got %d", c.Host.AsyncQueueSize)
	}
	if c.Host.MachineID < 0 || c.Host.MachineID > maxMachineID {
		add("host.machine_id out of range: %d", c.Host.MachineID)
	}
	if c.Registry.SupersededSize < 0 {
		add("registry.superseded_size must not be negative, got %d", c.Registry.SupersededSize)
	}
	if c.Registry.SupersededTTL < 0 {
		add("registry.superseded_ttl must not be negative, got %s", c.Registry.SupersededTTL)
	}
	if c.Cron.Resolution < xhost.TickDuration {
		add("cron.resolution must be at least %s, got %s", xhost.TickDuration, c.Cron.Resolution)
	}
	if _, err := xlog.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %v", err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		add("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		add("log rotation values must not be negative")
	}

	return errors.Join(errs...)
}

// HostOptions 转换为 xhost.TickHost 选项。logger 为 nil 时不设置日志。
func (c Config) HostOptions(logger xlog.Logger) []xhost.Option {
	opts := []xhost.Option{
		xhost.WithTickInterval(c.Host.TickInterval),
		xhost.WithAsyncWorkers(c.Host.AsyncWorkers),
		xhost.WithAsyncQueueSize(c.Host.AsyncQueueSize),
		xhost.WithMachineID(c.Host.MachineID),
	}
	if logger != nil {
		opts = append(opts, xhost.WithLogger(logger))
	}
	return opts
}

// RegistryOptions 转换为 xsched.Registry 选项。
func (c Config) RegistryOptions(logger xlog.Logger) []xsched.RegistryOption {
	opts := []xsched.RegistryOption{
		xsched.WithCancelOnOverwrite(c.Registry.CancelOnOverwrite),
		xsched.WithSupersededCache(c.Registry.SupersededSize, c.Registry.SupersededTTL),
	}
	if logger != nil {
		opts = append(opts, xsched.WithRegistryLogger(logger))
	}
	return opts
}

// SchedulerOptions 转换为 xsched.Scheduler 选项。registry 为 nil 时使用默认登记表。
func (c Config) SchedulerOptions(registry *xsched.Registry, logger xlog.Logger) []xsched.Option {
	opts := []xsched.Option{
		xsched.WithCronResolution(c.Cron.Resolution),
	}
	if registry != nil {
		opts = append(opts, xsched.WithRegistry(registry))
	}
	if logger != nil {
		opts = append(opts, xsched.WithLogger(logger))
	}
	return opts
}

// Builder 返回按配置设置好的 xlog.Builder，调用方可继续覆盖输出等设置。
func (c LogConfig) Builder() *xlog.Builder {
	b := xlog.New().
		SetLevelString(c.Level).
		SetFormat(c.Format).
		SetAddSource(c.AddSource)
	if c.File != "" {
		b = b.SetRotation(c.File, xlog.RotationConfig{
			MaxSizeMB:  c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAgeDays: c.MaxAgeDays,
			Compress:   c.Compress,
		})
	}
	return b
}

// ParsedLevel 返回解析后的日志级别，非法值回退为 Info。
func (c LogConfig) ParsedLevel() xlog.Level {
	level, err := xlog.ParseLevel(c.Level)
	if err != nil {
		return xlog.LevelInfo
	}
	return level
}
