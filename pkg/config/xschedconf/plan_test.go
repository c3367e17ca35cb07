package xschedconf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xtask/pkg/schedule/xhost"
)

const samplePlan = `
jobs:
  - name: hello
    kind: now
    message: hello
  - name: reminder
    kind: Later
    mode: async
    id: reminder
    delay: 2s
  - name: heartbeat
    kind: repeat
    period: 250ms
    total: 1250ms
  - name: forever
    kind: repeat
    period: 1s
    forever: true
    auto_id: true
  - name: minutely
    kind: cron
    cron: "*/5 * * * * *"
    seconds: true
`

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan([]byte(samplePlan), FormatYAML)
	require.NoError(t, err)
	require.Len(t, p.Jobs, 5)

	assert.Equal(t, KindNow, p.Jobs[0].Kind)
	assert.Equal(t, "hello", p.Jobs[0].Message)

	later := p.Jobs[1]
	assert.Equal(t, KindLater, later.Kind, "kind 大小写不敏感")
	assert.Equal(t, 2*time.Second, later.Delay)
	mode, err := later.ParsedMode()
	require.NoError(t, err)
	assert.Equal(t, xhost.ModeAsync, mode)

	assert.Equal(t, 1250*time.Millisecond, p.Jobs[2].Total)
	assert.True(t, p.Jobs[3].Forever)
	assert.True(t, p.Jobs[3].AutoID)
	assert.True(t, p.Jobs[4].Seconds)
}

func TestParsePlan_JSON(t *testing.T) {
	p, err := ParsePlan([]byte(`{"jobs":[{"kind":"later","delay":"100ms","id":"x"}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "x", p.Jobs[0].Label())
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name string
		job  JobPlan
		msg  string
	}{
		{"unknown kind", JobPlan{Kind: "weekly"}, "unknown kind"},
		{"bad mode", JobPlan{Kind: KindNow, Mode: "parallel"}, "invalid mode"},
		{"now with id", JobPlan{Kind: KindNow, ID: "a"}, "cannot carry an id"},
		{"id and auto", JobPlan{Kind: KindLater, ID: "a", AutoID: true}, "exclusive"},
		{"negative delay", JobPlan{Kind: KindLater, Delay: -time.Second}, "negative delay"},
		{"sub tick period", JobPlan{Kind: KindRepeat, Period: 10 * time.Millisecond, Forever: true}, "period"},
		{"no total", JobPlan{Kind: KindRepeat, Period: time.Second}, "total or forever"},
		{"empty cron", JobPlan{Kind: KindCron, Cron: " "}, "cron expression is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Plan{Jobs: []JobPlan{tt.job}}.Validate()
			require.ErrorIs(t, err, ErrInvalidPlan)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestPlan_ValidateEmpty(t *testing.T) {
	assert.ErrorIs(t, Plan{}.Validate(), ErrInvalidPlan)
}

func TestJobPlan_Label(t *testing.T) {
	assert.Equal(t, "n", JobPlan{Name: "n", ID: "i", Kind: KindNow}.Label())
	assert.Equal(t, "i", JobPlan{ID: "i", Kind: KindNow}.Label())
	assert.Equal(t, "cron", JobPlan{Kind: KindCron}.Label())
}

func TestLoadPlan(t *testing.T) {
	path := writeFile(t, "plan.yaml", samplePlan)
	p, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Len(t, p.Jobs, 5)

	_, err = LoadPlan(writeFile(t, "plan.yaml", "jobs: []\n"))
	assert.ErrorIs(t, err, ErrInvalidPlan)
}
