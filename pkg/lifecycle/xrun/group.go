package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xtask/pkg/observability/xlog"
)

// Group 基于 errgroup 管理一组服务的并发运行与协调退出。
//
// 任一服务返回错误、调用 Cancel 或父 context 取消时，其余服务的 ctx 都会被取消。
// Go、GoWithName、Cancel 可并发调用；Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *options
	logger   xlog.Logger
}

// NewGroup 创建 Group，返回的 context 在任一服务出错时取消。
// NewGroup 不监听信号，需要信号处理时使用 [Run]。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     o,
		logger:   o.logger.With(slog.String("group", o.name)),
	}, egCtx
}

// Go 启动一个服务。fn 应在 ctx 取消后尽快返回。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 与 Go 相同，额外记录服务的启停日志。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		g.logger.Debug(g.ctx, "service starting", slog.String("service", name))
		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Warn(context.Background(), "service exited with error",
				slog.String("service", name), xlog.Err(err))
		} else {
			g.logger.Debug(context.Background(), "service stopped", slog.String("service", name))
		}
		return err
	})
}

// Wait 等待所有服务退出，返回第一个错误。
//
// 由 Group 取消引起的 context.Canceled 会被过滤；通过 Cancel(cause) 或信号设置的
// 取消原因会被返回，即使所有服务都返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()

	cause := context.Cause(g.causeCtx)
	if g.causeCtx.Err() == nil || errors.Is(cause, context.Canceled) {
		cause = nil
	}

	switch {
	case err == nil:
		return cause
	case errors.Is(err, context.Canceled) && g.causeCtx.Err() != nil:
		return cause
	default:
		return err
	}
}

// Cancel 以 cause 为原因取消所有服务。cause 不应包装 context.Canceled。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回服务使用的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// watchSignals 收到信号后以 [SignalError] 取消 Group；done 关闭时直接返回
func (g *Group) watchSignals(ctx context.Context, done <-chan struct{}) error {
	sigCh := g.opts.sigCh
	if sigCh == nil {
		signals := g.opts.signals
		if len(signals) == 0 {
			signals = DefaultSignals()
		}
		c := make(chan os.Signal, 1)
		signal.Notify(c, signals...)
		defer signal.Stop(c)
		sigCh = c
	}

	select {
	case sig := <-sigCh:
		g.logger.Info(ctx, "received signal", slog.String("signal", sig.String()))
		g.Cancel(&SignalError{Signal: sig})
		return nil
	case <-ctx.Done():
		return nil
	case <-done:
		return nil
	}
}

// Service 具名服务
type Service struct {
	Name string
	Run  func(ctx context.Context) error
}

// Run 运行一组服务直到全部退出，默认监听 [DefaultSignals]。
// 所有服务都正常返回后信号监听随之结束。
//
//	err := xrun.Run(ctx, []xrun.Option{xrun.WithLogger(logger)},
//	    xrun.Service{Name: "monitor", Run: xrun.Ticker(time.Second, false, report)},
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 正常退出
//	}
func Run(ctx context.Context, opts []Option, services ...Service) error {
	g, _ := NewGroup(ctx, opts...)

	var wg sync.WaitGroup
	for _, svc := range services {
		wg.Add(1)
		g.GoWithName(svc.Name, func(ctx context.Context) error {
			defer wg.Done()
			if svc.Run == nil {
				return ErrNilFunc
			}
			return svc.Run(ctx)
		})
	}

	if !g.opts.noSig {
		done := make(chan struct{})
		g.Go(func(context.Context) error {
			wg.Wait()
			close(done)
			return nil
		})
		g.Go(func(ctx context.Context) error {
			return g.watchSignals(ctx, done)
		})
	}
	return g.Wait()
}
