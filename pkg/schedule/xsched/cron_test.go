package xsched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

func TestCron_Spec(t *testing.T) {
	s, _ := newTestScheduler(t, ModeSync)

	tests := []struct {
		name    string
		expr    string
		seconds bool
		wantErr bool
	}{
		{"standard", "*/5 * * * *", false, false},
		{"descriptor", "@hourly", false, false},
		{"every", "@every 10s", false, false},
		{"seconds field", "*/10 * * * * *", true, false},
		{"seconds optional", "0 12 * * *", true, false},
		{"seconds without option", "*/10 * * * * *", false, true},
		{"garbage", "not a cron", false, true},
		{"empty", "   ", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := s.Cron().Task(func() {}).Expr(tt.expr).WithSeconds(tt.seconds).Spec()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCronSpec)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, spec.Schedule)
			assert.Equal(t, time.Local, spec.Location)
		})
	}

	_, err := s.Cron().Expr("@daily").Spec()
	assert.ErrorIs(t, err, ErrNilTask)
}

func TestCron_FiresOnSchedule(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 1, 0, 0, 30, 0, time.UTC))
	s, host := newTestScheduler(t, ModeSync,
		WithClock(clock.Now),
		WithCronResolution(50*time.Millisecond),
	)

	var runs counter
	task, err := s.Cron().
		Expr("* * * * *").
		Location(time.UTC).
		Task(runs.inc).
		UniqueID("minutely").
		Run()
	require.NoError(t, err)
	assert.Equal(t, xhost.Ticks(1), task.RepeatPeriodTicks())
	assert.True(t, s.Registry().Periodic().Exists("minutely"))

	require.NoError(t, host.Step())
	assert.Zero(t, runs.get(), "before the first minute boundary")

	clock.Set(time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC))
	require.NoError(t, host.Step())
	assert.Equal(t, 1, runs.get())

	require.NoError(t, host.Step())
	assert.Equal(t, 1, runs.get(), "same boundary fires once")

	clock.Add(70 * time.Second)
	require.NoError(t, host.Step())
	assert.Equal(t, 2, runs.get())

	// 错过的多个触发点合并为一次
	clock.Add(5 * time.Minute)
	require.NoError(t, host.Advance(3))
	assert.Equal(t, 3, runs.get())

	assert.True(t, s.Canceller().Cancel("minutely"))
	clock.Add(time.Hour)
	require.NoError(t, host.Advance(3))
	assert.Equal(t, 3, runs.get())
}

func TestCron_RunIf(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s, host := newTestScheduler(t, ModeAsync,
		WithClock(clock.Now),
		WithCronResolution(time.Millisecond), // 按 1 tick 处理
	)

	var runs counter
	_, err := s.Cron().
		Expr("*/10 * * * * *").
		WithSeconds(true).
		Location(time.UTC).
		Task(runs.inc).
		RunIf(func() bool { return clock.Now().Second() != 20 })
	require.NoError(t, err)

	for range 4 {
		clock.Add(10 * time.Second)
		require.NoError(t, host.Step())
	}
	// 10s, 20s(跳过), 30s, 40s
	assert.Equal(t, 3, runs.get())
}

func TestCron_SubmitArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	host.EXPECT().
		SubmitPeriodic(ModeSync, gomock.Any(), xhost.Ticks(20), xhost.Ticks(20)).
		Return(NewMockHandle(ctrl), nil)

	s, err := New(host, ModeSync, WithRegistry(newTestRegistry(t)))
	require.NoError(t, err)

	task, err := s.Cron().Expr("@every 1m").Task(func() {}).AutoID().Run()
	require.NoError(t, err)
	assert.Equal(t, DefaultCronResolution, task.RepeatPeriod())
	assert.Equal(t, 1, s.Registry().Periodic().Len(ModeSync))
}

func TestCron_InvalidSubmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, err := New(NewMockHost(ctrl), ModeSync, WithRegistry(newTestRegistry(t)))
	require.NoError(t, err)

	_, err = s.Cron().Expr("61 * * * *").Task(func() {}).Run()
	assert.ErrorIs(t, err, ErrInvalidCronSpec)

	_, err = s.Cron().Expr("@daily").Task(func() {}).RunIf(nil)
	assert.ErrorIs(t, err, ErrNilCondition)
}
