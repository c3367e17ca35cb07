package xlru

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const maxSize = 1 << 24

// Config 缓存配置。
type Config struct {
	// Size 最大条目数。
	Size int

	// TTL 条目过期时间，0 表示永不过期。
	TTL time.Duration
}

// Option 缓存可选配置。
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	onEvicted func(key K, value V)
}

// WithOnEvicted 设置条目被淘汰（容量、过期或 Clear）时的回调。
func WithOnEvicted[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvicted = fn
	}
}

// Cache 带 TTL 的 LRU 缓存，并发安全。
// Close 之后读操作返回零值，写操作静默忽略。
type Cache[K comparable, V any] struct {
	lru       *expirable.LRU[K, V]
	ttl       time.Duration
	closed    atomic.Bool
	closeOnce sync.Once
}

// New 创建缓存。
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	if cfg.Size <= 0 {
		return nil, ErrInvalidSize
	}
	if cfg.Size > maxSize {
		return nil, ErrSizeExceedsMax
	}
	if cfg.TTL < 0 {
		return nil, ErrInvalidTTL
	}

	o := &options[K, V]{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return &Cache[K, V]{
		lru: expirable.NewLRU(cfg.Size, o.onEvicted, cfg.TTL),
		ttl: cfg.TTL,
	}, nil
}

// Get 获取值并刷新 LRU 顺序。
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	if c.closed.Load() {
		return value, false
	}
	return c.lru.Get(key)
}

// Peek 获取值但不刷新 LRU 顺序，已过期条目视为不存在。
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	if c.closed.Load() {
		return value, false
	}
	return c.lru.Peek(key)
}

// Set 写入值，返回是否触发了容量淘汰。
func (c *Cache[K, V]) Set(key K, value V) bool {
	if c.closed.Load() {
		return false
	}
	return c.lru.Add(key, value)
}

// Delete 删除条目，返回键是否存在。
func (c *Cache[K, V]) Delete(key K) bool {
	if c.closed.Load() {
		return false
	}
	return c.lru.Remove(key)
}

// Len 返回条目数，可能包含已过期但尚未清理的条目。
func (c *Cache[K, V]) Len() int {
	if c.closed.Load() {
		return 0
	}
	return c.lru.Len()
}

// Keys 按从旧到新的顺序返回所有键。
func (c *Cache[K, V]) Keys() []K {
	if c.closed.Load() {
		return nil
	}
	return c.lru.Keys()
}

// Close 清空缓存并停止后台清理 goroutine，可重复调用。
func (c *Cache[K, V]) Close() {
	c.closed.Store(true)
	c.closeOnce.Do(func() {
		c.lru.Purge()
		if c.ttl > 0 {
			stopCleanupGoroutine(c.lru)
		}
	})
}

// stopCleanupGoroutine 关闭 expirable.LRU 内部的 done 通道。
//
// golang-lru v2.0.7 在 TTL > 0 时启动的清理 goroutine 没有公开的停止方法。
// 上游结构变化时降级为无操作并返回 false。
func stopCleanupGoroutine(lru any) (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			stopped = false
		}
	}()

	v := reflect.ValueOf(lru)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	done := v.Elem().FieldByName("done")
	if !done.IsValid() || done.IsNil() || done.Type() != reflect.TypeOf(make(chan struct{})) {
		return false
	}

	ch := *(*chan struct{})(unsafe.Pointer(done.UnsafeAddr())) //nolint:gosec // 访问上游未导出字段
	close(ch)
	return true
}
