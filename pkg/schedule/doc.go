// Package schedule 提供基于 tick 宿主的任务调度子包。
//
// 子包列表：
//   - xhost: 宿主调度器契约与基于 tick 循环的参考实现
//   - xsched: 面向业务的调度入口（立即、延迟、周期、cron）与命名任务注册表
//
// 典型组装：
//
//	host, _ := xhost.New()
//	_ = host.Start()
//	sched, _ := xsched.New(host, xsched.ModeSync)
//	_, _ = sched.Later().Task(fn).Delay(time.Second).UniqueID("reminder").Run()
package schedule
