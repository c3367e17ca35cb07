// Package xschedconf 提供调度组件的文件配置。
//
// 配置基于 koanf 加载，支持 YAML 与 JSON 两种格式，按文件扩展名识别。
// 未出现在文件中的字段保留 [Default] 的默认值。
//
// # 配置示例
//
//	host:
//	  tick_interval: 50ms
//	  async_workers: 4
//	  async_queue_size: 256
//	registry:
//	  cancel_on_overwrite: false
//	  superseded_size: 128
//	cron:
//	  resolution: 1s
//	log:
//	  level: info
//	  format: text
//
// # 适配
//
// [Config.HostOptions]、[Config.RegistryOptions]、[Config.SchedulerOptions]
// 把配置转换为 xhost / xsched 的函数式选项；[LogConfig.Builder] 构建 xlog 的 Builder。
//
// # 热更新
//
// [Watch] 基于 fsnotify 监视配置文件所在目录，变更经防抖后重新加载并回调。
// 通常只对日志级别这类可在运行时调整的字段做热更新。
//
// # 任务计划
//
// [Plan] 描述一组需要提交的任务，供命令行工具使用，格式与配置文件一致。
package xschedconf
