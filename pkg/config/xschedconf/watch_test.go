package xschedconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder 记录回调结果
type recorder struct {
	mu   sync.Mutex
	cfgs []Config
	errs []error
}

func (r *recorder) callback(cfg Config, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.errs = append(r.errs, err)
		return
	}
	r.cfgs = append(r.cfgs, cfg)
}

func (r *recorder) last() (Config, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.cfgs) == 0 {
		return Config{}, 0
	}
	return r.cfgs[len(r.cfgs)-1], len(r.cfgs)
}

func (r *recorder) errCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func TestWatch_Validation(t *testing.T) {
	rec := &recorder{}

	_, err := Watch("", rec.callback)
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Watch("xtask.yaml", nil)
	assert.ErrorIs(t, err, ErrNilCallback)

	_, err = Watch("xtask.conf", rec.callback)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Watch(filepath.Join(t.TempDir(), "missing", "xtask.yaml"), rec.callback)
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "xtask.yaml", "log:\n  level: info\n")
	rec := &recorder{}

	w, err := Watch(path, rec.callback, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	require.Eventually(t, func() bool {
		cfg, n := rec.last()
		return n > 0 && cfg.Log.Level == "debug"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatch_InvalidContentReportsError(t *testing.T) {
	path := writeFile(t, "xtask.yaml", "log:\n  level: info\n")
	rec := &recorder{}

	w, err := Watch(path, rec.callback, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))

	require.Eventually(t, func() bool { return rec.errCount() > 0 }, 2*time.Second, 10*time.Millisecond)
	_, n := rec.last()
	assert.Zero(t, n)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "xtask.yaml", "log:\n  level: info\n")
	rec := &recorder{}

	w, err := Watch(path, rec.callback, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { assert.NoError(t, w.Stop()) }()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("x: 1\n"), 0o600))

	time.Sleep(100 * time.Millisecond)
	_, n := rec.last()
	assert.Zero(t, n)
	assert.Zero(t, rec.errCount())
}

func TestWatcher_StopIdempotent(t *testing.T) {
	path := writeFile(t, "xtask.yaml", "")
	w, err := Watch(path, func(Config, error) {})
	require.NoError(t, err)

	require.NoError(t, w.Stop(), "未启动也可以停止")
	require.NoError(t, w.Stop())

	// 停止后启动无效果
	w.StartAsync()
	w.Start()
}

func TestWatcher_StartBlocksUntilStop(t *testing.T) {
	path := writeFile(t, "xtask.yaml", "")
	w, err := Watch(path, func(Config, error) {})
	require.NoError(t, err)

	returned := make(chan struct{})
	go func() {
		w.Start()
		close(returned)
	}()

	// 等待循环进入运行状态
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.running
	}, time.Second, 5*time.Millisecond)

	select {
	case <-returned:
		t.Fatal("Start returned before Stop")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, w.Stop())
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
