package xrun

import (
	"context"
	"time"
)

// Ticker 返回每隔 interval 调用一次 fn 的服务，immediate 为 true 时启动即调用一次。
// fn 返回错误时服务退出；ctx 取消时返回 nil。
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}
		if immediate && ctx.Err() == nil {
			if err := fn(ctx); err != nil {
				return err
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			}
		}
	}
}

// Timer 返回 delay 后调用一次 fn 的服务。ctx 先取消时不调用 fn，返回 nil。
func Timer(delay time.Duration, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if delay < 0 {
			return ErrInvalidDelay
		}
		if fn == nil {
			return ErrNilFunc
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return fn(ctx)
		}
	}
}

// Until 返回阻塞到 ctx 取消后调用 stop 的服务，用于把 Start/Stop 风格的组件接入 Group。
//
//	g.Go(xrun.Until(func() error { return w.Stop() }))
func Until(stop func() error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if stop == nil {
			return ErrNilFunc
		}
		<-ctx.Done()
		return stop()
	}
}
