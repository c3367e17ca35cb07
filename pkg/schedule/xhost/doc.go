// Package xhost 定义宿主调度器契约，并提供一个基于 tick 循环的参考实现。
//
// # 概述
//
// 宿主调度器是真正执行任务的一方：它拥有 tick 循环、线程模型与任务顺序。
// 上层的 xsched 只负责构建并提交任务，所有调度都委托给 [Host]。
//
// # 核心概念
//
//   - Ticks: 宿主的基本时间单位，1 tick = [TickDuration]（50ms）
//   - Mode: 执行模式，ModeSync 在主循环上执行，ModeAsync 在 worker pool 上执行
//   - Host: 提交接口（立即 / 延迟 / 周期）
//   - Handle: 已提交任务的句柄，支持取消与状态查询
//
// # TickHost
//
// [TickHost] 是独立可用的参考宿主：
//
//   - 主循环按 tick 间隔推进，待执行任务按 (到期 tick, 提交顺序) 排序
//   - 同步任务在主循环 goroutine 上串行执行
//   - 异步任务交给 xpool worker pool 执行
//   - 周期任务执行后按 period 重新排队，直到被取消
//   - 手动模式（[WithManualTick]）下不启动任何 goroutine，由 Step/Advance 驱动，
//     两种模式的任务都在调用方 goroutine 内执行，便于确定性测试
//
// # 快速开始
//
//	host, err := xhost.New(xhost.WithAsyncWorkers(4))
//	if err != nil {
//	    return err
//	}
//	if err := host.Start(); err != nil {
//	    return err
//	}
//	defer host.Stop(context.Background())
//
//	h, _ := host.SubmitPeriodic(xhost.ModeSync, func() {
//	    fmt.Println("tick")
//	}, 0, xhost.ToTicks(time.Second))
//	defer h.Cancel()
package xhost
