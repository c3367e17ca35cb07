// Package xsched 在宿主调度器之上提供流式的任务构建与命名任务注册。
//
// # 概述
//
// xsched 本身不做调度：所有 tick 推进、线程模型与执行顺序都由 [xhost.Host] 负责。
// 它只负责把"立即执行 / 延迟执行 / 周期执行 / cron"这几类需求整理成一次宿主提交，
// 并把带 unique id 的任务登记到注册表，便于之后按 id 取消。
//
// # 核心概念
//
//   - Scheduler: 绑定宿主来源、执行模式与注册表的入口
//   - Runner / Later / Repeater / Cron: 一次性使用的 builder，Spec() 产出不可变的定稿配置
//   - Task: 已提交任务的句柄，记录重复周期
//   - Registry: 延迟任务表 + 周期任务表，每张表按执行模式划分
//   - Canceller: 绑定模式的取消入口，同时作用于两张表
//
// # 快速开始
//
//	host, _ := xhost.New()
//	_ = host.Start()
//	defer host.Stop(context.Background())
//
//	sched, err := xsched.New(host, xsched.ModeSync)
//	if err != nil {
//	    return err
//	}
//
//	// 1 秒后执行一次
//	sched.Later().Task(save).Delay(time.Second).UniqueID("save").Run()
//
//	// 每 250ms 执行一次，共 5 次
//	sched.Repeater().Task(blink).
//	    Repeats(250 * time.Millisecond).
//	    RepeatsFor(1250 * time.Millisecond).
//	    Run()
//
//	// 按 id 取消
//	sched.Canceller().Cancel("save")
//
// # 时间换算
//
// 所有时长在设置时按 [xhost.ToTicks] 截断换算为 tick（1 tick = 50ms），
// 例如 1000ms → 20，250ms → 5，1250ms → 25。
//
// # 同名覆盖
//
// 同一张表、同一模式下用相同 id 再次登记时，新任务替换旧任务。
// 默认不取消旧任务（旧任务继续运行但无法再按 id 找到），旧句柄保存在
// [JobTable.Superseded] 中；使用 [WithCancelOnOverwrite] 可改为覆盖时取消。
//
// # 全局入口
//
// 仍可使用进程级默认宿主与注册表：
//
//	xsched.SetHost(host)
//	xsched.Get(xsched.ModeAsync).Runner().Task(fn).Run()
//	xsched.Cancel().Cancel("save")
package xsched
