// Package xlog 提供基于 log/slog 的结构化日志能力。
//
// # 设计理念
//
//   - 强制 context 传递：所有日志方法的第一个参数是 context.Context
//   - 类型安全：方法签名只接受 slog.Attr
//   - 动态级别：Build 返回的 Logger 同时实现 [Leveler]，运行时可调整级别
//   - 生命周期：Build 返回 cleanup 函数，用于关闭轮转文件
//
// # 快速开始
//
//	logger, cleanup, err := xlog.New().
//	    SetLevelString("debug").
//	    SetFormat("json").
//	    SetRotation("/var/log/app.log", xlog.RotationConfig{MaxSizeMB: 100}).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	logger.Info(ctx, "job fired", slog.String("id", "heartbeat"))
//
// 不需要输出日志的场景（如测试、库默认值）使用 [Nop]。
package xlog
