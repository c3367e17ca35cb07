package xschedconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// JobKind 计划中的任务类型
type JobKind string

const (
	// KindNow 立即执行一次
	KindNow JobKind = "now"
	// KindLater 延迟执行一次
	KindLater JobKind = "later"
	// KindRepeat 周期执行
	KindRepeat JobKind = "repeat"
	// KindCron 按 cron 表达式执行
	KindCron JobKind = "cron"
)

// Plan 任务计划
type Plan struct {
	Jobs []JobPlan `koanf:"jobs"`
}

// JobPlan 单个任务的计划描述
type JobPlan struct {
	Name    string        `koanf:"name"`
	Kind    JobKind       `koanf:"kind"`
	Mode    string        `koanf:"mode"`
	ID      string        `koanf:"id"`
	AutoID  bool          `koanf:"auto_id"`
	Delay   time.Duration `koanf:"delay"`
	Period  time.Duration `koanf:"period"`
	Total   time.Duration `koanf:"total"`
	Forever bool          `koanf:"forever"`
	Cron    string        `koanf:"cron"`
	Seconds bool          `koanf:"seconds"`
	Message string        `koanf:"message"`
}

// LoadPlan 从文件加载任务计划并做结构校验。
func LoadPlan(path string) (Plan, error) {
	format, data, err := readFile(path)
	if err != nil {
		return Plan{}, err
	}
	return ParsePlan(data, format)
}

// ParsePlan 从字节数据解析任务计划并做结构校验。
func ParsePlan(data []byte, format Format) (Plan, error) {
	var p Plan
	if err := unmarshal(data, format, &p); err != nil {
		return Plan{}, err
	}
	for i := range p.Jobs {
		p.Jobs[i].Kind = JobKind(strings.ToLower(strings.TrimSpace(string(p.Jobs[i].Kind))))
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Validate 做结构校验。cron 表达式本身的语法由提交时的构建器检查。
func (p Plan) Validate() error {
	if len(p.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalidPlan)
	}
	var errs []error
	for i, j := range p.Jobs {
		if err := j.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: jobs[%d] %s: %w", ErrInvalidPlan, i, j.Label(), err))
		}
	}
	return errors.Join(errs...)
}

// Label 返回用于日志的任务名称，依次取 Name、ID、Kind。
func (j JobPlan) Label() string {
	switch {
	case j.Name != "":
		return j.Name
	case j.ID != "":
		return j.ID
	default:
		return string(j.Kind)
	}
}

// ParsedMode 返回解析后的执行模式。
func (j JobPlan) ParsedMode() (xhost.Mode, error) {
	return xhost.ParseMode(j.Mode)
}

func (j JobPlan) validate() error {
	if _, err := j.ParsedMode(); err != nil {
		return err
	}
	if j.ID != "" && j.AutoID {
		return errors.New("id and auto_id are exclusive")
	}

	switch j.Kind {
	case KindNow:
		if j.ID != "" || j.AutoID {
			return errors.New("now jobs cannot carry an id")
		}
	case KindLater:
		if j.Delay < 0 {
			return fmt.Errorf("negative delay %s", j.Delay)
		}
	case KindRepeat:
		if xhost.ToTicks(j.Period) <= 0 {
			return fmt.Errorf("period must be at least %s, got %s", xhost.TickDuration, j.Period)
		}
		if j.Delay < 0 {
			return fmt.Errorf("negative delay %s", j.Delay)
		}
		if !j.Forever && j.Total <= 0 {
			return errors.New("repeat jobs need total or forever")
		}
	case KindCron:
		if strings.TrimSpace(j.Cron) == "" {
			return errors.New("cron expression is empty")
		}
	default:
		return fmt.Errorf("unknown kind %q", j.Kind)
	}
	return nil
}
