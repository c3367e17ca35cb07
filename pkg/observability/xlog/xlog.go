package xlog

import (
	"context"
	"log/slog"
)

// Logger 结构化日志接口。
//
// 方法首参为 context，属性只接受 slog.Attr。调度组件的各层都持有 Logger，
// 未配置时使用 [Nop]。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回附加了 attrs 的 Logger，与父级共享级别设置。
	With(attrs ...slog.Attr) Logger
}

// Leveler 运行时调整级别，例如配置热更新时。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 由 [Builder.Build] 返回，同时具备记录与调级能力。
type LoggerWithLevel interface {
	Logger
	Leveler
}
