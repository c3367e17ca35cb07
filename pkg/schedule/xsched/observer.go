package xsched

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Kind 任务类型。
type Kind string

const (
	// KindRunner 立即执行的任务。
	KindRunner Kind = "runner"
	// KindLater 延迟执行一次的任务。
	KindLater Kind = "later"
	// KindRepeater 周期执行的任务。
	KindRepeater Kind = "repeater"
	// KindCron 按 cron 表达式执行的任务。
	KindCron Kind = "cron"
)

// Outcome 单次触发的结果。
type Outcome string

const (
	// OutcomeRan 任务体执行完成。
	OutcomeRan Outcome = "ran"
	// OutcomeSkipped 条件为 false，未执行任务体。
	OutcomeSkipped Outcome = "skipped"
	// OutcomePanicked 条件或任务体 panic。panic 会继续交给宿主处理。
	OutcomePanicked Outcome = "panicked"
)

// Execution 一次触发的观测记录。
type Execution struct {
	Kind     Kind
	Mode     Mode
	ID       string // 未设置 unique id 时为空
	Outcome  Outcome
	Start    time.Time
	Duration time.Duration
}

// Observer 接收每次触发的观测记录。
//
// Observe 在宿主执行任务的 goroutine 上同步调用，实现必须并发安全且足够快。
type Observer interface {
	Observe(ctx context.Context, e Execution)
}

// ObserverFunc 函数适配器。
type ObserverFunc func(ctx context.Context, e Execution)

// Observe 实现 [Observer]。
func (f ObserverFunc) Observe(ctx context.Context, e Execution) {
	f(ctx, e)
}

type noopObserver struct{}

func (noopObserver) Observe(context.Context, Execution) {}

// NoopObserver 返回丢弃所有记录的 Observer。
func NoopObserver() Observer {
	return noopObserver{}
}

const defaultInstrumentationName = "github.com/omeyang/xtask/pkg/schedule/xsched"

// OTel 观测器记录的指标名
const (
	// MetricJobExecutions 触发次数计数器，属性 kind / mode / outcome。
	MetricJobExecutions = "xtask.job.executions"
	// MetricJobDuration 单次触发耗时直方图（秒），属性 kind / mode。
	MetricJobDuration = "xtask.job.duration"
)

type otelConfig struct {
	instrumentationName string
	tracerProvider      trace.TracerProvider
	meterProvider       metric.MeterProvider
}

// ObserverOption OTel Observer 配置选项
type ObserverOption func(*otelConfig)

// WithInstrumentationName 设置 instrumentation 名称。
func WithInstrumentationName(name string) ObserverOption {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider，默认使用全局 provider。
func WithTracerProvider(provider trace.TracerProvider) ObserverOption {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracerProvider = provider
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) ObserverOption {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelObserver 创建基于 OpenTelemetry 的 Observer。
//
// 每次触发记录：
//   - 计数器 xtask.job.executions，属性 kind / mode / outcome
//   - 直方图 xtask.job.duration（秒），属性 kind / mode
//   - 一个名为 "xtask.<kind>" 的 span，起止时间取自 Execution
func NewOTelObserver(opts ...ObserverOption) (Observer, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		tracerProvider:      otel.GetTracerProvider(),
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)
	executions, err := meter.Int64Counter(
		MetricJobExecutions,
		metric.WithDescription("job executions by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xsched: create counter failed: %w", err)
	}
	duration, err := meter.Float64Histogram(
		MetricJobDuration,
		metric.WithDescription("job execution duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("xsched: create histogram failed: %w", err)
	}

	return &otelObserver{
		tracer:     cfg.tracerProvider.Tracer(cfg.instrumentationName),
		executions: executions,
		duration:   duration,
	}, nil
}

type otelObserver struct {
	tracer     trace.Tracer
	executions metric.Int64Counter
	duration   metric.Float64Histogram
}

func (o *otelObserver) Observe(ctx context.Context, e Execution) {
	if ctx == nil {
		ctx = context.Background()
	}

	kind := attribute.String("kind", string(e.Kind))
	mode := attribute.String("mode", e.Mode.String())
	outcome := attribute.String("outcome", string(e.Outcome))

	spanAttrs := []attribute.KeyValue{kind, mode, outcome}
	if e.ID != "" {
		spanAttrs = append(spanAttrs, attribute.String("job.id", e.ID))
	}
	_, span := o.tracer.Start(ctx, "xtask."+string(e.Kind),
		trace.WithTimestamp(e.Start),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(spanAttrs...),
	)
	if e.Outcome == OutcomePanicked {
		span.SetStatus(codes.Error, "job panicked")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.Start.Add(e.Duration)))

	o.executions.Add(ctx, 1, metric.WithAttributes(kind, mode, outcome))
	o.duration.Record(ctx, e.Duration.Seconds(), metric.WithAttributes(kind, mode))
}
