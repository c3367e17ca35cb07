package xsched

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRunner_Run(t *testing.T) {
	for _, mode := range []Mode{ModeSync, ModeAsync} {
		t.Run(mode.String(), func(t *testing.T) {
			s, host := newTestScheduler(t, mode)

			var runs counter
			task, err := s.Runner().Task(runs.inc).Run()
			require.NoError(t, err)
			assert.Zero(t, task.RepeatPeriodTicks())
			assert.False(t, task.IsRepeating())

			require.NoError(t, host.Advance(3))
			assert.Equal(t, 1, runs.get())
		})
	}
}

func TestRunner_NoBodySubmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl) // 无任何期望：任何提交都会让测试失败

	s, err := New(host, ModeSync, WithRegistry(newTestRegistry(t)))
	require.NoError(t, err)

	_, err = s.Runner().Run()
	assert.ErrorIs(t, err, ErrNilTask)

	_, err = s.Runner().Spec()
	assert.ErrorIs(t, err, ErrNilTask)
}

func TestRunner_SubmitError(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := NewMockHost(ctrl)
	hostErr := errors.New("queue closed")

	host.EXPECT().SubmitNow(ModeAsync, gomock.Any()).Return(nil, hostErr)

	s, err := New(host, ModeAsync, WithRegistry(newTestRegistry(t)))
	require.NoError(t, err)

	task, err := s.Runner().Task(func() {}).Run()
	assert.Nil(t, task)
	assert.ErrorIs(t, err, hostErr)
	assert.Contains(t, err.Error(), "xsched: submit failed")
}

func TestRunner_Spec(t *testing.T) {
	s, _ := newTestScheduler(t, ModeAsync)
	spec, err := s.Runner().Task(func() {}).Spec()
	require.NoError(t, err)
	assert.Equal(t, ModeAsync, spec.Mode)
	assert.NotNil(t, spec.Body)
}
