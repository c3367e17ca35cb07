package xsched

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/omeyang/xtask/pkg/observability/xlog"
	"github.com/omeyang/xtask/pkg/util/xlru"
)

const (
	// DefaultSupersededSize 被覆盖句柄缓存的默认容量（每张表）。
	DefaultSupersededSize = 128
)

type registryOptions struct {
	cancelOnOverwrite bool
	supersededSize    int
	supersededTTL     time.Duration
	logger            xlog.Logger
}

func defaultRegistryOptions() *registryOptions {
	return &registryOptions{
		supersededSize: DefaultSupersededSize,
		logger:         xlog.Nop(),
	}
}

// RegistryOption Registry 配置选项
type RegistryOption func(*registryOptions)

// WithCancelOnOverwrite 设置同名任务覆盖时是否取消旧任务。
//
// 默认 false：旧任务保持运行，只是无法再通过 id 找到，
// 此时旧句柄会进入被覆盖句柄缓存，可通过 [JobTable.Superseded] 取回。
func WithCancelOnOverwrite(cancel bool) RegistryOption {
	return func(o *registryOptions) {
		o.cancelOnOverwrite = cancel
	}
}

// WithSupersededCache 设置被覆盖句柄缓存的容量与过期时间。
//
// size 为 0 时禁用缓存；ttl 为 0 表示不过期。ttl > 0 时需要调用 [Registry.Close]。
func WithSupersededCache(size int, ttl time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.supersededSize = size
		o.supersededTTL = ttl
	}
}

// WithRegistryLogger 设置注册表日志记录器。
func WithRegistryLogger(logger xlog.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Registry 命名任务注册表，包含延迟任务表与周期任务表，每张表再按执行模式划分。
type Registry struct {
	delayed  *JobTable
	periodic *JobTable
}

// NewRegistry 创建注册表。
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	o := defaultRegistryOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.supersededSize < 0 {
		return nil, fmt.Errorf("xsched: superseded cache size must not be negative: %d", o.supersededSize)
	}

	delayed, err := newJobTable("delayed", o)
	if err != nil {
		return nil, err
	}
	periodic, err := newJobTable("periodic", o)
	if err != nil {
		delayed.close()
		return nil, err
	}
	return &Registry{delayed: delayed, periodic: periodic}, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry 返回进程级默认注册表，供 [Get] 与 [Cancel] 使用。
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry()
		if err != nil {
			panic(err) // 默认配置不会失败
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Delayed 返回延迟任务表。
func (r *Registry) Delayed() *JobTable {
	return r.delayed
}

// Periodic 返回周期任务表（包括 cron 任务）。
func (r *Registry) Periodic() *JobTable {
	return r.periodic
}

// Exists 报告 id 是否存在于任一张表的任一模式中。
func (r *Registry) Exists(id string) bool {
	return r.delayed.Exists(id) || r.periodic.Exists(id)
}

// CancelAll 取消并清空两张表的全部任务。
func (r *Registry) CancelAll() {
	for _, m := range modes {
		r.delayed.CancelAll(m)
		r.periodic.CancelAll(m)
	}
}

// Close 释放被覆盖句柄缓存。不会取消任何任务。
func (r *Registry) Close() {
	r.delayed.close()
	r.periodic.close()
}

// JobTable 按执行模式划分的 id → Task 映射，并发安全。
//
// 句柄的 Cancel 总是在锁外调用。
type JobTable struct {
	name              string
	cancelOnOverwrite bool
	logger            xlog.Logger

	mu    sync.Mutex
	slots map[Mode]map[string]*Task

	superseded *xlru.Cache[supersededKey, []*Task] // 可能为 nil
}

// maxSupersededPerID 每个 (mode, id) 保留的被覆盖句柄上限，超出时丢弃最早的
const maxSupersededPerID = 8

type supersededKey struct {
	mode Mode
	id   string
}

func newJobTable(name string, o *registryOptions) (*JobTable, error) {
	t := &JobTable{
		name:              name,
		cancelOnOverwrite: o.cancelOnOverwrite,
		logger:            o.logger.With(slog.String("table", name)),
		slots:             make(map[Mode]map[string]*Task, len(modes)),
	}
	if o.supersededSize > 0 {
		cache, err := xlru.New[supersededKey, []*Task](xlru.Config{
			Size: o.supersededSize,
			TTL:  o.supersededTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("xsched: superseded cache: %w", err)
		}
		t.superseded = cache
	}
	return t, nil
}

// put 注册任务，同名旧任务按配置处理
func (t *JobTable) put(mode Mode, id string, task *Task) {
	t.mu.Lock()
	slot := t.slots[mode]
	if slot == nil {
		slot = make(map[string]*Task)
		t.slots[mode] = slot
	}
	old, replaced := slot[id]
	slot[id] = task
	replaced = replaced && old != task
	if replaced && !t.cancelOnOverwrite {
		t.keepSuperseded(supersededKey{mode: mode, id: id}, old)
	}
	t.mu.Unlock()

	if !replaced {
		return
	}
	if t.cancelOnOverwrite {
		old.Cancel()
	}
	t.logger.Warn(context.Background(), "job id overwritten",
		slog.String("id", id),
		slog.String("mode", mode.String()),
		slog.Bool("old_cancelled", t.cancelOnOverwrite),
	)
}

// keepSuperseded 追加被覆盖的句柄，调用方持有 t.mu
func (t *JobTable) keepSuperseded(key supersededKey, old *Task) {
	if t.superseded == nil {
		return
	}
	prev, _ := t.superseded.Peek(key)
	history := make([]*Task, 0, len(prev)+1)
	history = append(history, prev...)
	history = append(history, old)
	if len(history) > maxSupersededPerID {
		history = history[len(history)-maxSupersededPerID:]
	}
	t.superseded.Set(key, history)
}

// take 移除并返回任务
func (t *JobTable) take(mode Mode, id string) (*Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.slots[mode][id]
	if ok {
		delete(t.slots[mode], id)
	}
	return task, ok
}

// cancel 取消指定模式下的任务
func (t *JobTable) cancel(mode Mode, id string) bool {
	task, ok := t.take(mode, id)
	if ok {
		task.Cancel()
	}
	return ok
}

// CancelAll 取消并清空指定模式下的全部任务。
func (t *JobTable) CancelAll(mode Mode) {
	t.mu.Lock()
	slot := t.slots[mode]
	delete(t.slots, mode)
	t.mu.Unlock()

	for _, task := range slot {
		task.Cancel()
	}
	if len(slot) > 0 {
		t.logger.Debug(context.Background(), "jobs cancelled",
			slog.String("mode", mode.String()),
			slog.Int("count", len(slot)),
		)
	}
}

// CancelByID 取消并移除 id 对应的任务，先查异步模式再查同步模式，
// 只处理第一个命中的。id 不存在时返回 false。
func (t *JobTable) CancelByID(id string) bool {
	for _, m := range modes {
		if t.cancel(m, id) {
			return true
		}
	}
	return false
}

// Exists 报告 id 是否存在于任一模式中。
func (t *JobTable) Exists(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, slot := range t.slots {
		if _, ok := slot[id]; ok {
			return true
		}
	}
	return false
}

// Get 返回指定模式下 id 对应的任务。
func (t *JobTable) Get(mode Mode, id string) (*Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.slots[mode][id]
	return task, ok
}

// IDs 返回指定模式下已注册的 id（升序）。
func (t *JobTable) IDs(mode Mode) []string {
	t.mu.Lock()
	ids := make([]string, 0, len(t.slots[mode]))
	for id := range t.slots[mode] {
		ids = append(ids, id)
	}
	t.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// Len 返回指定模式下已注册的任务数。
func (t *JobTable) Len(mode Mode) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots[mode])
}

// Superseded 返回最近一次被同名覆盖的旧任务。
//
// 仅在未开启 [WithCancelOnOverwrite] 时记录；缓存禁用、条目过期或被淘汰时返回 false。
func (t *JobTable) Superseded(mode Mode, id string) (*Task, bool) {
	history := t.SupersededAll(mode, id)
	if len(history) == 0 {
		return nil, false
	}
	return history[len(history)-1], true
}

// SupersededAll 返回同名被覆盖的全部旧任务，按覆盖先后排列。
//
// 每个 (mode, id) 最多保留 8 个，更早的会被丢弃。
func (t *JobTable) SupersededAll(mode Mode, id string) []*Task {
	if t.superseded == nil {
		return nil
	}
	t.mu.Lock()
	history, _ := t.superseded.Peek(supersededKey{mode: mode, id: id})
	t.mu.Unlock()
	return append([]*Task(nil), history...)
}

// Name 返回表名（delayed / periodic）。
func (t *JobTable) Name() string {
	return t.name
}

func (t *JobTable) close() {
	if t.superseded != nil {
		t.superseded.Close()
	}
}
