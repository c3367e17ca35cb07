package main

import (
	"context"
	"log/slog"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xtask/pkg/schedule/xsched"
)

// runMetrics 进程内的 OTel meter provider，run 结束时按结果汇总触发次数。
type runMetrics struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

func newRunMetrics() *runMetrics {
	reader := sdkmetric.NewManualReader()
	return &runMetrics{
		reader:   reader,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	}
}

// observer 返回写入本 provider 的观测器
func (m *runMetrics) observer() (xsched.Observer, error) {
	return xsched.NewOTelObserver(xsched.WithMeterProvider(m.provider))
}

// executions 按 outcome 汇总 xtask.job.executions
func (m *runMetrics) executions(ctx context.Context) (map[xsched.Outcome]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	counts := make(map[xsched.Outcome]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, mt := range sm.Metrics {
			if mt.Name != xsched.MetricJobExecutions {
				continue
			}
			sum, ok := mt.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value("outcome")
				counts[xsched.Outcome(outcome.AsString())] += dp.Value
			}
		}
	}
	return counts, nil
}

// summary 汇总结果转为日志属性
func (m *runMetrics) summary(ctx context.Context) []slog.Attr {
	counts, err := m.executions(ctx)
	if err != nil {
		return nil
	}
	return []slog.Attr{
		slog.Int64("ran", counts[xsched.OutcomeRan]),
		slog.Int64("skipped", counts[xsched.OutcomeSkipped]),
		slog.Int64("panicked", counts[xsched.OutcomePanicked]),
	}
}

func (m *runMetrics) shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
