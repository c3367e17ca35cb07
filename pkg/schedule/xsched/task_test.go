package xsched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

func TestTask_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	handle := NewMockHandle(ctrl)

	task := newTask(handle, 5)

	handle.EXPECT().IsCancelled().Return(false)
	assert.False(t, task.IsCancelled())

	handle.EXPECT().Cancel()
	task.Cancel()

	handle.EXPECT().IsCancelled().Return(true)
	assert.True(t, task.IsCancelled())

	assert.Same(t, handle, task.Handle())
}

func TestTask_RepeatPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := []struct {
		name      string
		period    xhost.Ticks
		repeating bool
		duration  time.Duration
	}{
		{"one shot", 0, false, 0},
		{"quarter second", 5, true, 250 * time.Millisecond},
		{"one second", 20, true, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask(NewMockHandle(ctrl), tt.period)
			assert.Equal(t, tt.period, task.RepeatPeriodTicks())
			assert.Equal(t, tt.duration, task.RepeatPeriod())
			assert.Equal(t, tt.repeating, task.IsRepeating())
		})
	}
}
