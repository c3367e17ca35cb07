package xhost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTicks(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want Ticks
	}{
		{"zero", 0, 0},
		{"one second", 1000 * time.Millisecond, 20},
		{"quarter second", 250 * time.Millisecond, 5},
		{"one and quarter", 1250 * time.Millisecond, 25},
		{"below one tick", 49 * time.Millisecond, 0},
		{"truncates", 99 * time.Millisecond, 1},
		{"sub millisecond ignored", 50*time.Millisecond + 999*time.Microsecond, 1},
		{"negative truncates toward zero", -120 * time.Millisecond, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToTicks(tt.in))
		})
	}

	// 1250ms 总时长 / 250ms 周期 = 5 次
	assert.Equal(t, Ticks(5), ToTicks(1250*time.Millisecond)/ToTicks(250*time.Millisecond))
}

func TestTicks_Duration(t *testing.T) {
	assert.Equal(t, time.Second, Ticks(20).Duration())
	assert.Equal(t, time.Duration(0), Ticks(0).Duration())
}

func TestMode(t *testing.T) {
	assert.Equal(t, "sync", ModeSync.String())
	assert.Equal(t, "async", ModeAsync.String())
	assert.Equal(t, "mode(7)", Mode(7).String())

	assert.True(t, ModeSync.Valid())
	assert.True(t, ModeAsync.Valid())
	assert.False(t, Mode(2).Valid())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":       ModeSync,
		"sync":   ModeSync,
		"SYNC":   ModeSync,
		" async": ModeAsync,
		"Async":  ModeAsync,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("parallel")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
