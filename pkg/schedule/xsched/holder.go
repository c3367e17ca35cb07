package xsched

import (
	"sync"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

// Holder 只能设置一次的宿主容器。
//
// 零值可用。进程级默认实例通过 [SetHost] / [GetHost] 访问，
// 测试中应使用独立的 Holder 值。
type Holder struct {
	mu   sync.RWMutex
	host xhost.Host
}

// Set 设置宿主。重复设置返回 [ErrHostAlreadySet]。
func (h *Holder) Set(host xhost.Host) error {
	if host == nil {
		return ErrNilHost
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.host != nil {
		return ErrHostAlreadySet
	}
	h.host = host
	return nil
}

// Get 返回宿主，未设置时返回 [ErrHostNotSet]。
func (h *Holder) Get() (xhost.Host, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.host == nil {
		return nil, ErrHostNotSet
	}
	return h.host, nil
}

var defaultHolder Holder

// SetHost 设置进程级默认宿主，只能调用一次。
func SetHost(host xhost.Host) error {
	return defaultHolder.Set(host)
}

// GetHost 返回进程级默认宿主。
func GetHost() (xhost.Host, error) {
	return defaultHolder.Get()
}

// hostSource 在提交时解析宿主
type hostSource interface {
	Get() (xhost.Host, error)
}

type staticHost struct {
	host xhost.Host
}

func (s staticHost) Get() (xhost.Host, error) {
	return s.host, nil
}
