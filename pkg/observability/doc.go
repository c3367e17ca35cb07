// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持动态级别与文件轮转
//
// 调度任务的指标与追踪由 xsched 的 OTel Observer 直接上报到 OpenTelemetry。
package observability
