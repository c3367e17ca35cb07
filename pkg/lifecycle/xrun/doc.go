// Package xrun 基于 errgroup 管理进程内多个服务的运行与协调退出。
//
// 任一服务出错、收到终止信号或调用 [Group.Cancel] 时，其余服务的 ctx 被取消。
//
//	err := xrun.Run(ctx, []xrun.Option{xrun.WithLogger(logger)},
//	    xrun.Service{Name: "monitor", Run: xrun.Ticker(time.Second, false, report)},
//	    xrun.Service{Name: "deadline", Run: xrun.Timer(time.Minute, func(context.Context) error {
//	        return errDeadline
//	    })},
//	)
//
// 信号退出时返回 *[SignalError]，可用 errors.Is(err, [ErrSignal]) 判断。
package xrun
