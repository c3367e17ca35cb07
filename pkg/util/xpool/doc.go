// Package xpool 提供通用的 worker pool 实现。
//
// Pool 是一个轻量级的泛型 worker pool，xhost 用它承载异步执行通道。
// 支持以下特性：
//   - 泛型任务类型
//   - 可配置的 worker 数量（[1, 65536]）和队列大小（[1, 16777216]）
//   - 优雅关闭（处理完队列中的任务后退出）
//   - 超时关闭（Shutdown(ctx) 支持 context 超时/取消）
//   - panic 恢复（单个任务失败不影响 pool，含堆栈日志）
//   - 队列满时返回 ErrQueueFull
//
// # 注意事项
//
//   - Submit 是非阻塞的，队列满时返回 ErrQueueFull
//   - New 创建后自动启动 worker，无需手动 Start
//   - Close/Shutdown 不可在 handler 内调用，否则会死锁
//   - panic 的任务不会被重试，仅记录日志后丢弃
//
// # 关闭策略
//
// Close 等价于 Shutdown(context.Background())，无限等待所有任务完成。
// Shutdown(ctx) 在 ctx 到期后立即返回 context 错误，残留的 worker
// 继续处理剩余任务直到耗尽后退出，可通过 Done() 等待。
package xpool
